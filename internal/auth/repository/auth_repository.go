package repository

import (
	"context"
	"errors"

	"gamecatalog/domain"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) domain.AuthRepository {
	return &authRepository{
		db: db,
	}
}

func (r *authRepository) CreateUser(ctx context.Context, user *domain.User) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateUser called", zap.String("request_id", requestID), zap.String("email", user.Email))

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.DBLogger.Warn("email already registered", zap.String("request_id", requestID), zap.String("email", user.Email))
			return domain.ErrEmailExists
		}
		logger.DBLogger.Error("Error creating user", zap.String("request_id", requestID), zap.Error(err))
		return err
	}

	logger.DBLogger.Info("Successfully created user", zap.String("request_id", requestID), zap.String("user_id", user.ID))
	return nil
}

func (r *authRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetUserByEmail called", zap.String("request_id", requestID))

	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		logger.DBLogger.Error("Error getting user", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}
	return &user, nil
}
