package repository

import (
	"context"
	"testing"

	"gamecatalog/domain"
	"gamecatalog/internal/service/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestCreateUser(t *testing.T) {
	logger.DBLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewAuthRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		user := &domain.User{Email: "a@b.com", PasswordHash: "digest", Name: "A"}
		err := repo.CreateUser(ctx, user)
		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewAuthRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreateUser(ctx, &domain.User{Email: "a@b.com", PasswordHash: "digest", Name: "A"})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})
}

func TestGetUserByEmail(t *testing.T) {
	logger.DBLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewAuthRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name"}).
			AddRow("user-uuid", "a@b.com", "digest", "A")
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(rows)

		user, err := repo.GetUserByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, "user-uuid", user.ID)
		assert.Equal(t, "digest", user.PasswordHash)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewAuthRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetUserByEmail(ctx, "ghost@b.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestMemoryAuthRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuthRepository()

	t.Run("Create And Fetch", func(t *testing.T) {
		user := &domain.User{Email: "a@b.com", PasswordHash: "digest", Name: "A"}
		require.NoError(t, repo.CreateUser(ctx, user))
		assert.NotEmpty(t, user.ID)

		fetched, err := repo.GetUserByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, fetched.ID)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		err := repo.CreateUser(ctx, &domain.User{Email: "a@b.com", PasswordHash: "other", Name: "B"})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		_, err := repo.GetUserByEmail(ctx, "ghost@b.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
