package controller

import (
	"net/http"
	"time"

	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"
	"gamecatalog/internal/service/response"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler takes a nil db in memory mode.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{
		db: db,
	}
}

// HealthCheck reports a store round trip and its latency.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	if h.db == nil {
		_ = response.WriteSuccess(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"storage": "memory",
		}, "", nil)
		return
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		logger.DBLogger.Error("health: no sql db", zap.String("request_id", requestID), zap.Error(err))
		_ = response.WriteError(w, http.StatusInternalServerError, "store unreachable", nil)
		return
	}

	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.DBLogger.Error("health: ping failed", zap.String("request_id", requestID), zap.Error(err))
		_ = response.WriteError(w, http.StatusInternalServerError, "store unreachable", nil)
		return
	}
	latency := time.Since(start)

	_ = response.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"storage":   "postgres",
		"latencyMs": float64(latency.Microseconds()) / 1000.0,
	}, "", nil)
}
