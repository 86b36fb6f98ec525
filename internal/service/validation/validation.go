// Package validation holds the two inbound validation paths: struct-tag
// validation for the auth flows and a declarative JSON schema for game
// payloads. The split (and the 422 vs 400 status it produces) is observable
// API behavior and is kept deliberately.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"gamecatalog/internal/service/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

var authValidator = validator.New()

// ValidateAuthPayload runs the validate tags of a register or login request
// and returns itemized field errors, or nil when the payload is valid.
func ValidateAuthPayload(payload interface{}) []response.FieldError {
	err := authValidator.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{{Field: "", Message: "invalid payload"}}
	}

	details := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, response.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: authMessage(fe),
		})
	}
	return details
}

func authMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

const gameSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "genre", "rating", "price"],
	"properties": {
		"name":  {"type": "string", "minLength": 1, "maxLength": 255},
		"genre": {"type": "string", "minLength": 1, "maxLength": 100},
		"rating": {"type": "number", "minimum": 0, "maximum": 10, "multipleOf": 0.1},
		"price":  {"type": "number", "minimum": 0, "maximum": 9999.99, "multipleOf": 0.01},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"releaseDate": {"type": ["string", "null"], "format": "date"},
		"platform": {
			"type": ["array", "null"],
			"maxItems": 10,
			"items": {"type": "string", "minLength": 1, "maxLength": 50}
		}
	}
}`

var gameSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(gameSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("game schema does not compile: %v", err))
	}
	return schema
}()

// ValidateGamePayload validates a raw game payload against the schema.
// Fields the schema does not know are ignored here and dropped when the
// body is decoded into domain.GameInput.
func ValidateGamePayload(body []byte) []response.FieldError {
	result, err := gameSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return []response.FieldError{{Field: "body", Message: "must be valid JSON"}}
	}
	if result.Valid() {
		return nil
	}

	details := make([]response.FieldError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		details = append(details, response.FieldError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	return details
}

func ValidateUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Sort allow-list. The resolved column name is the only identifier text
// that ever reaches query text, so every caller must go through here.
var sortColumns = map[string]string{
	"name":       "name",
	"genre":      "genre",
	"rating":     "rating",
	"price":      "price",
	"created_at": "created_at",
}

func SortColumn(requested string) string {
	if col, ok := sortColumns[requested]; ok {
		return col
	}
	return "name"
}

func SortOrder(requested string) string {
	if strings.EqualFold(requested, "desc") {
		return "desc"
	}
	return "asc"
}
