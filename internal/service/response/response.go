// Package response renders the uniform envelope returned by every endpoint:
// {success, data?, error?, message?, meta?, details?}.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPagination computes list metadata from the full filtered count, not
// from the size of the returned page.
func NewPagination(page, limit int, totalItems int64) *Pagination {
	if limit < 1 {
		limit = 1
	}
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return &Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
	Meta    *Pagination `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}, message string, meta *Pagination) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(successEnvelope{
		Success: true,
		Data:    data,
		Message: message,
		Meta:    meta,
	})
}

func WriteError(w http.ResponseWriter, status int, message string, details []FieldError) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(errorEnvelope{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// ReadBody drains the request body, mapping the body-cap error to a 413
// envelope and any other read failure to a 400. A false return means the
// error response has already been written.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			_ = WriteError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return nil, false
		}
		_ = WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return nil, false
	}
	return body, true
}
