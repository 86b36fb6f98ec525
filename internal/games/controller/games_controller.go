package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gamecatalog/domain"
	"gamecatalog/internal/games/usecase"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"
	"gamecatalog/internal/service/response"
	"gamecatalog/internal/service/validation"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type GamesHandler struct {
	usecase usecase.GamesUsecase
}

func NewGamesHandler(usecase usecase.GamesUsecase) *GamesHandler {
	return &GamesHandler{
		usecase: usecase,
	}
}

func (h *GamesHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ListGames request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		_ = response.WriteError(w, http.StatusUnauthorized, "access token required", nil)
		return
	}

	params := parseListParams(r)
	games, total, err := h.usecase.ListGames(ctx, params)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	meta := response.NewPagination(params.Page, params.Limit, total)
	_ = response.WriteSuccess(w, http.StatusOK, games, "", meta)

	logger.AccessLogger.Info("Completed ListGames request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *GamesHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetGame request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		_ = response.WriteError(w, http.StatusUnauthorized, "access token required", nil)
		return
	}

	id := mux.Vars(r)["id"]
	if !validation.ValidateUUID(id) {
		_ = response.WriteError(w, http.StatusBadRequest, "invalid game id", nil)
		return
	}

	game, err := h.usecase.GetGame(ctx, id)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	_ = response.WriteSuccess(w, http.StatusOK, game, "", nil)
}

func (h *GamesHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received CreateGame request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		_ = response.WriteError(w, http.StatusUnauthorized, "access token required", nil)
		return
	}

	input, ok := h.decodeGamePayload(w, r)
	if !ok {
		return
	}

	game, err := h.usecase.CreateGame(ctx, identity.UserID, *input)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	_ = response.WriteSuccess(w, http.StatusCreated, game, "game created", nil)

	logger.AccessLogger.Info("Completed CreateGame request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusCreated),
	)
}

func (h *GamesHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received UpdateGame request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		_ = response.WriteError(w, http.StatusUnauthorized, "access token required", nil)
		return
	}

	id := mux.Vars(r)["id"]
	if !validation.ValidateUUID(id) {
		_ = response.WriteError(w, http.StatusBadRequest, "invalid game id", nil)
		return
	}

	input, ok := h.decodeGamePayload(w, r)
	if !ok {
		return
	}

	game, err := h.usecase.UpdateGame(ctx, identity.UserID, id, *input)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	_ = response.WriteSuccess(w, http.StatusOK, game, "game updated", nil)
}

func (h *GamesHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received DeleteGame request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		_ = response.WriteError(w, http.StatusUnauthorized, "access token required", nil)
		return
	}

	id := mux.Vars(r)["id"]
	if !validation.ValidateUUID(id) {
		_ = response.WriteError(w, http.StatusBadRequest, "invalid game id", nil)
		return
	}

	if err := h.usecase.DeleteGame(ctx, id); err != nil {
		h.handleError(w, err, requestID)
		return
	}
	_ = response.WriteSuccess(w, http.StatusOK, nil, "game deleted", nil)
}

// decodeGamePayload reads, schema-validates and decodes a game payload.
// Fields the schema does not know are dropped silently by the decode.
func (h *GamesHandler) decodeGamePayload(w http.ResponseWriter, r *http.Request) (*domain.GameInput, bool) {
	body, ok := response.ReadBody(w, r)
	if !ok {
		return nil, false
	}

	if details := validation.ValidateGamePayload(body); details != nil {
		_ = response.WriteError(w, http.StatusBadRequest, "validation failed", details)
		return nil, false
	}

	var input domain.GameInput
	if err := json.Unmarshal(body, &input); err != nil {
		_ = response.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return nil, false
	}
	return &input, true
}

func parseListParams(r *http.Request) domain.ListGamesParams {
	q := r.URL.Query()
	params := domain.ListGamesParams{
		Page:      1,
		Limit:     10,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Search:    q.Get("search"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit >= 1 && limit <= 100 {
		params.Limit = limit
	}
	return params
}

// handleError maps domain errors to envelope responses; raw store errors
// never reach the client.
func (h *GamesHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		_ = response.WriteError(w, http.StatusNotFound, "game not found", nil)
	case errors.Is(err, domain.ErrGameExists):
		_ = response.WriteError(w, http.StatusConflict, "game already exists", nil)
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrGenreRequired),
		errors.Is(err, domain.ErrInvalidReleaseDate):
		_ = response.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		_ = response.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
