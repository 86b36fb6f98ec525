package router

import (
	"fmt"
	"net/http"

	auth "gamecatalog/internal/auth/controller"
	games "gamecatalog/internal/games/controller"
	health "gamecatalog/internal/health/controller"
	"gamecatalog/internal/service/config"
	"gamecatalog/internal/service/middleware"
	"gamecatalog/internal/service/response"

	"github.com/gorilla/mux"
)

// SetUpRoutes wires the endpoint table onto one pipeline. Middleware order:
// recover → request id → security headers → CORS → global rate limit →
// body cap → access log → dispatch; the write limiter and auth gate apply
// to the games subrouter only. The pipeline wraps the router from outside
// because mux skips router.Use middleware for the NotFoundHandler and
// MethodNotAllowedHandler; 404/405 responses must carry the same headers,
// rate-limit accounting and access log entries as matched routes.
func SetUpRoutes(
	cfg *config.Config,
	authHandler *auth.AuthHandler,
	gamesHandler *games.GamesHandler,
	healthHandler *health.HealthHandler,
	jwtToken middleware.JwtTokenService,
	globalLimiter *middleware.RateLimiter,
	writeLimiter *middleware.RateLimiter,
) http.Handler {
	router := mux.NewRouter()
	api := "/api/" + cfg.APIVersion

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = response.WriteError(w, http.StatusNotFound,
			fmt.Sprintf("route %s %s not found", r.Method, r.URL.Path), nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = response.WriteError(w, http.StatusMethodNotAllowed,
			fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path), nil)
	})

	router.HandleFunc(api+"/auth/register", authHandler.RegisterUser).Methods("POST")
	router.HandleFunc(api+"/auth/login", authHandler.LoginUser).Methods("POST")
	router.HandleFunc(api+"/health", healthHandler.HealthCheck).Methods("GET")

	gamesRouter := router.PathPrefix(api + "/games").Subrouter()
	gamesRouter.Use(writeLimiter.WriteMiddleware)
	gamesRouter.Use(middleware.AuthMiddleware(jwtToken))
	gamesRouter.HandleFunc("", gamesHandler.ListGames).Methods("GET")
	gamesRouter.HandleFunc("", gamesHandler.CreateGame).Methods("POST")
	gamesRouter.HandleFunc("/{id}", gamesHandler.GetGame).Methods("GET")
	gamesRouter.HandleFunc("/{id}", gamesHandler.UpdateGame).Methods("PUT")
	gamesRouter.HandleFunc("/{id}", gamesHandler.DeleteGame).Methods("DELETE")

	var handler http.Handler = router
	handler = middleware.AccessLogMiddleware(handler)
	handler = middleware.BodyLimitMiddleware(handler)
	handler = globalLimiter.Middleware(handler)
	handler = middleware.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoverMiddleware(handler)
	return handler
}
