package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authController "gamecatalog/internal/auth/controller"
	authRepository "gamecatalog/internal/auth/repository"
	authUsecase "gamecatalog/internal/auth/usecase"

	gamesController "gamecatalog/internal/games/controller"
	gamesRepository "gamecatalog/internal/games/repository"
	gamesUsecase "gamecatalog/internal/games/usecase"

	healthController "gamecatalog/internal/health/controller"

	"gamecatalog/domain"
	"gamecatalog/internal/service/config"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"
	"gamecatalog/internal/service/router"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLoggers(); err != nil {
		log.Fatalf("Failed to initialize loggers: %v", err)
	}
	defer func() {
		_ = logger.SyncLoggers()
	}()

	jwtToken, err := middleware.NewJwtToken(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create JWT token service: %v", err)
	}

	var db *gorm.DB
	var authRepo domain.AuthRepository
	var gamesRepo domain.GameRepository

	switch cfg.Storage {
	case config.StorageMemory:
		authRepo = authRepository.NewMemoryAuthRepository()
		gamesRepo = gamesRepository.NewMemoryGameRepository()
	default:
		db, err = middleware.DbConnect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		authRepo = authRepository.NewAuthRepository(db)
		gamesRepo = gamesRepository.NewGamesRepository(db)
	}

	authHandler := authController.NewAuthHandler(authUsecase.NewAuthUsecase(authRepo), jwtToken)
	gamesHandler := gamesController.NewGamesHandler(gamesUsecase.NewGamesUsecase(gamesRepo))
	healthHandler := healthController.NewHealthHandler(db)

	globalLimiter := middleware.NewRateLimiter(middleware.GlobalRateLimit, middleware.RateLimitWindow)
	writeLimiter := middleware.NewRateLimiter(middleware.WriteRateLimit, middleware.RateLimitWindow)

	mainRouter := router.SetUpRoutes(cfg, authHandler, gamesHandler, healthHandler, jwtToken, globalLimiter, writeLimiter)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mainRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	log.Println("Server gracefully stopped")
}
