package usecase

import (
	"context"
	"errors"
	"testing"

	"gamecatalog/domain"
	"gamecatalog/internal/auth/mocks"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterUser(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success - Password Hashed And Email Normalized", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		uc := NewAuthUsecase(mockRepo)

		mockRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "a@b.com" &&
				u.Name == "A" &&
				u.PasswordHash != "secret1" &&
				middleware.CheckPassword(u.PasswordHash, "secret1")
		})).Return(nil)

		user, err := uc.RegisterUser(ctx, " A@B.com ", "secret1", " A ")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Email Propagates", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		uc := NewAuthUsecase(mockRepo)

		mockRepo.On("CreateUser", ctx, mock.Anything).Return(domain.ErrEmailExists)

		_, err := uc.RegisterUser(ctx, "a@b.com", "secret1", "A")
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})
}

func TestLoginUser(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	hash, err := middleware.HashPassword("secret1")
	require.NoError(t, err)
	stored := &domain.User{ID: "user-uuid", Email: "a@b.com", PasswordHash: hash}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		uc := NewAuthUsecase(mockRepo)

		mockRepo.On("GetUserByEmail", ctx, "a@b.com").Return(stored, nil)

		user, err := uc.LoginUser(ctx, "A@B.COM", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "user-uuid", user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		uc := NewAuthUsecase(mockRepo)

		mockRepo.On("GetUserByEmail", ctx, "a@b.com").Return(stored, nil)

		_, err := uc.LoginUser(ctx, "a@b.com", "wrong12")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Failure - Unknown Email Looks Like Bad Credentials", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		uc := NewAuthUsecase(mockRepo)

		mockRepo.On("GetUserByEmail", ctx, "ghost@b.com").Return(nil, domain.ErrUserNotFound)

		_, err := uc.LoginUser(ctx, "ghost@b.com", "secret1")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Failure - Store Error Passes Through", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		uc := NewAuthUsecase(mockRepo)

		storeErr := errors.New("connection refused")
		mockRepo.On("GetUserByEmail", ctx, "a@b.com").Return(nil, storeErr)

		_, err := uc.LoginUser(ctx, "a@b.com", "secret1")
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
