package repository

import (
	"context"
	"errors"
	"fmt"

	"gamecatalog/domain"
	"gamecatalog/internal/service/logger"
	"gamecatalog/internal/service/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gamesRepository struct {
	db *gorm.DB
}

func NewGamesRepository(db *gorm.DB) domain.GameRepository {
	return &gamesRepository{
		db: db,
	}
}

// ListGames runs the page query and the count query concurrently; the two
// are independent reads with no ordering dependency. params.SortBy and
// params.SortOrder must come from the sort allow-list — they are the only
// caller-influenced text interpolated into the query.
func (r *gamesRepository) ListGames(ctx context.Context, params domain.ListGamesParams) ([]domain.Game, int64, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ListGames called",
		zap.String("request_id", requestID),
		zap.Int("page", params.Page),
		zap.Int("limit", params.Limit),
	)

	filtered := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&domain.Game{})
		if params.Search != "" {
			pattern := "%" + params.Search + "%"
			tx = tx.Where("name ILIKE ? OR genre ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
		}
		return tx
	}

	games := make([]domain.Game, 0)
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		offset := (params.Page - 1) * params.Limit
		return filtered(r.db.WithContext(gctx)).
			Order(fmt.Sprintf("%s %s", params.SortBy, params.SortOrder)).
			Offset(offset).
			Limit(params.Limit).
			Find(&games).Error
	})
	g.Go(func() error {
		return filtered(r.db.WithContext(gctx)).Count(&total).Error
	})

	if err := g.Wait(); err != nil {
		logger.DBLogger.Error("Failed to list games", zap.String("request_id", requestID), zap.Error(err))
		return nil, 0, err
	}
	return games, total, nil
}

func (r *gamesRepository) GetGameByID(ctx context.Context, id string) (*domain.Game, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetGameByID called", zap.String("request_id", requestID), zap.String("game_id", id))

	var game domain.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		logger.DBLogger.Error("Failed to get game", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}
	return &game, nil
}

func (r *gamesRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateGame called", zap.String("request_id", requestID), zap.String("name", game.Name))

	if game.ID == "" {
		game.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.DBLogger.Warn("duplicate game name", zap.String("request_id", requestID), zap.String("name", game.Name))
			return domain.ErrGameExists
		}
		logger.DBLogger.Error("Failed to create game", zap.String("request_id", requestID), zap.Error(err))
		return err
	}

	logger.DBLogger.Info("Successfully created game", zap.String("request_id", requestID), zap.String("game_id", game.ID))
	return nil
}

// UpdateGame overwrites every mutable column in a single statement; the
// RETURNING clause scans the written row back into game, so no separate
// read can race a concurrent writer. Zero rows returned means the record
// does not exist.
func (r *gamesRepository) UpdateGame(ctx context.Context, game *domain.Game) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("UpdateGame called", zap.String("request_id", requestID), zap.String("game_id", game.ID))

	result := r.db.WithContext(ctx).Model(game).Clauses(clause.Returning{}).Updates(map[string]interface{}{
		"name":         game.Name,
		"genre":        game.Genre,
		"rating":       game.Rating,
		"price":        game.Price,
		"description":  game.Description,
		"release_date": game.ReleaseDate,
		"platform":     game.Platform,
		"updated_by":   game.UpdatedBy,
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			logger.DBLogger.Warn("duplicate game name", zap.String("request_id", requestID), zap.String("name", game.Name))
			return domain.ErrGameExists
		}
		logger.DBLogger.Error("Failed to update game", zap.String("request_id", requestID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *gamesRepository) DeleteGame(ctx context.Context, id string) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("DeleteGame called", zap.String("request_id", requestID), zap.String("game_id", id))

	result := r.db.WithContext(ctx).Delete(&domain.Game{}, "id = ?", id)
	if result.Error != nil {
		logger.DBLogger.Error("Failed to delete game", zap.String("request_id", requestID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrGameNotFound
	}

	logger.DBLogger.Info("Successfully deleted game", zap.String("request_id", requestID), zap.String("game_id", id))
	return nil
}
