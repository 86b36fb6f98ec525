package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gamecatalog/domain"
	"gamecatalog/internal/auth/usecase"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"
	"gamecatalog/internal/service/response"
	"gamecatalog/internal/service/validation"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type AuthHandler struct {
	usecase  usecase.AuthUsecase
	jwtToken middleware.JwtTokenService
}

func NewAuthHandler(usecase usecase.AuthUsecase, jwtToken middleware.JwtTokenService) *AuthHandler {
	return &AuthHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received RegisterUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	body, ok := response.ReadBody(w, r)
	if !ok {
		return
	}

	var req domain.RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.AccessLogger.Error("Failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		_ = response.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	req.Email = usecase.NormalizeEmail(sanitizer.Sanitize(req.Email))
	// Trim before validation so a whitespace-only name fails the required
	// rule instead of being stored as an empty string.
	req.Name = strings.TrimSpace(sanitizer.Sanitize(req.Name))

	if details := validation.ValidateAuthPayload(req); details != nil {
		_ = response.WriteError(w, http.StatusUnprocessableEntity, "validation failed", details)
		return
	}

	user, err := h.usecase.RegisterUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	token, err := h.jwtToken.Create(user.ID, user.Email)
	if err != nil {
		logger.AccessLogger.Error("Failed to create JWT token",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, err, requestID)
		return
	}

	respBody := map[string]interface{}{
		"token": token,
		"user":  user,
	}
	_ = response.WriteSuccess(w, http.StatusCreated, respBody, "user registered", nil)

	logger.AccessLogger.Info("Completed RegisterUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusCreated),
	)
}

func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received LoginUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	body, ok := response.ReadBody(w, r)
	if !ok {
		return
	}

	var creds domain.LoginRequest
	if err := json.Unmarshal(body, &creds); err != nil {
		logger.AccessLogger.Error("Failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		_ = response.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	creds.Email = usecase.NormalizeEmail(sanitizer.Sanitize(creds.Email))

	if details := validation.ValidateAuthPayload(creds); details != nil {
		_ = response.WriteError(w, http.StatusUnprocessableEntity, "validation failed", details)
		return
	}

	user, err := h.usecase.LoginUser(ctx, creds.Email, creds.Password)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	token, err := h.jwtToken.Create(user.ID, user.Email)
	if err != nil {
		logger.AccessLogger.Error("Failed to create JWT token",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, err, requestID)
		return
	}

	respBody := map[string]interface{}{
		"token": token,
		"user":  user,
	}
	_ = response.WriteSuccess(w, http.StatusOK, respBody, "login successful", nil)

	logger.AccessLogger.Info("Completed LoginUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

// handleError maps domain errors to envelope responses. Store error detail
// stays in the logs and is never echoed to the client.
func (h *AuthHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	switch {
	case errors.Is(err, domain.ErrEmailExists):
		_ = response.WriteError(w, http.StatusConflict, "email already exists", nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		_ = response.WriteError(w, http.StatusUnauthorized, "invalid email or password", nil)
	default:
		_ = response.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
