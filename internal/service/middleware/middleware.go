package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"gamecatalog/internal/service/config"
	"gamecatalog/internal/service/dsn"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const requestTimeout = 30 * time.Second

func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, requestTimeout)
}

type key int

const RequestIDKey key = 0

func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// SecurityHeadersMiddleware attaches the fixed transport-security policy to
// every response.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware gates cross-origin requests against an explicit allow-list.
// Requests without an Origin header (same-origin, curl) pass through.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[origin]; !ok {
					_ = response.WriteError(w, http.StatusForbidden, "origin not allowed", nil)
					return
				}
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

const (
	RateLimitWindow = 15 * time.Minute
	GlobalRateLimit = 100 // requests per window per client address
	WriteRateLimit  = 20  // non-GET requests per window under /games
)

// RateLimiter tracks one token-bucket limiter per client address, shaped to
// a window's budget: the bucket holds the full budget and refills over the
// window, which approximates a sliding window.
type RateLimiter struct {
	limit   int
	window  time.Duration
	clients sync.Map
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{limit: limit, window: window}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	if limiter, ok := rl.clients.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := rl.clients.LoadOrStore(ip, rate.NewLimiter(rate.Limit(float64(rl.limit)/rl.window.Seconds()), rl.limit))
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiter) allow(w http.ResponseWriter, r *http.Request) bool {
	limiter := rl.limiterFor(ClientIP(r))

	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
	if !limiter.Allow() {
		w.Header().Set("X-RateLimit-Remaining", "0")
		_ = response.WriteError(w, http.StatusTooManyRequests, "too many requests", nil)
		return false
	}
	remaining := int(limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	return true
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WriteMiddleware consumes the write budget only for mutating methods; reads
// pass untouched. It stacks with the global limiter.
func (rl *RateLimiter) WriteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if !rl.allow(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

const maxBodyBytes = 10 << 20 // 10MB

func BodyLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// AccessLogMiddleware records method, path, client address and user agent.
// Credential-bearing headers never reach a log sink: anything logged from
// the header set goes through ScrubHeaders first.
func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.AccessLogger.Info("request",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", ClientIP(r)),
			zap.String("user_agent", r.UserAgent()),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.Any("headers", ScrubHeaders(r.Header)),
		)
	})
}

// ScrubHeaders clones headers with credential values replaced.
func ScrubHeaders(h http.Header) map[string]string {
	scrubbed := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		switch http.CanonicalHeaderKey(name) {
		case "Authorization", "Cookie", "Set-Cookie":
			scrubbed[name] = "[REDACTED]"
		default:
			scrubbed[name] = values[0]
		}
	}
	return scrubbed
}

// RecoverMiddleware is the top-level catch-all: no failure escapes as a bare
// transport error.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.AccessLogger.Error("panic recovered",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				_ = response.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// DbConnect opens the store with a small, fail-fast pool.
func DbConnect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn.FromConfig(cfg)), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB from GORM: %w", err)
	}

	const maxOpenConns = 10
	const maxIdleConns = 5
	const connMaxLifetime = 30 * time.Minute
	const connMaxIdleTime = 30 * time.Second

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
