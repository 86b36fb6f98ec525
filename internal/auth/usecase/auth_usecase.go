package usecase

import (
	"context"
	"errors"
	"strings"

	"gamecatalog/domain"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"

	"go.uber.org/zap"
)

type AuthUsecase interface {
	RegisterUser(ctx context.Context, email string, password string, name string) (*domain.User, error)
	LoginUser(ctx context.Context, email string, password string) (*domain.User, error)
}

type authUsecase struct {
	authRepository domain.AuthRepository
}

func NewAuthUsecase(authRepository domain.AuthRepository) AuthUsecase {
	return &authUsecase{
		authRepository: authRepository,
	}
}

// RegisterUser stores a new user with a bcrypt digest. Emails are
// case-normalized so uniqueness is case-insensitive.
func (uc *authUsecase) RegisterUser(ctx context.Context, email string, password string, name string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	hash, err := middleware.HashPassword(password)
	if err != nil {
		logger.AccessLogger.Error("Failed to hash password", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	}
	if err := uc.authRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginUser verifies credentials. An unknown email and a wrong password are
// indistinguishable to the caller.
func (uc *authUsecase) LoginUser(ctx context.Context, email string, password string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	user, err := uc.authRepository.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.AccessLogger.Warn("login for unknown email", zap.String("request_id", requestID))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !middleware.CheckPassword(user.PasswordHash, password) {
		logger.AccessLogger.Warn("password mismatch", zap.String("request_id", requestID))
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
