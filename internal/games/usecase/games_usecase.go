package usecase

import (
	"context"
	"strings"
	"time"

	"gamecatalog/domain"
	"gamecatalog/internal/service/validation"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
)

type GamesUsecase interface {
	ListGames(ctx context.Context, params domain.ListGamesParams) ([]domain.Game, int64, error)
	GetGame(ctx context.Context, id string) (*domain.Game, error)
	CreateGame(ctx context.Context, userID string, input domain.GameInput) (*domain.Game, error)
	UpdateGame(ctx context.Context, userID string, id string, input domain.GameInput) (*domain.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type gamesUsecase struct {
	gameRepository domain.GameRepository
	sanitizer      *bluemonday.Policy
}

func NewGamesUsecase(gameRepository domain.GameRepository) GamesUsecase {
	return &gamesUsecase{
		gameRepository: gameRepository,
		sanitizer:      bluemonday.UGCPolicy(),
	}
}

func (uc *gamesUsecase) ListGames(ctx context.Context, params domain.ListGamesParams) ([]domain.Game, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 10
	}
	// Allow-list gate: these two values are interpolated into ORDER BY text
	// by the repository, so they must be resolved here.
	params.SortBy = validation.SortColumn(params.SortBy)
	params.SortOrder = validation.SortOrder(params.SortOrder)
	params.Search = strings.TrimSpace(params.Search)

	return uc.gameRepository.ListGames(ctx, params)
}

func (uc *gamesUsecase) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	return uc.gameRepository.GetGameByID(ctx, id)
}

func (uc *gamesUsecase) CreateGame(ctx context.Context, userID string, input domain.GameInput) (*domain.Game, error) {
	game, err := uc.buildGame(userID, input)
	if err != nil {
		return nil, err
	}
	game.CreatedBy = userID

	if err := uc.gameRepository.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// UpdateGame is a full-record replace: every mutable column is overwritten
// from the input. The repository writes the stored row back into game, so
// the returned record is the one the update produced.
func (uc *gamesUsecase) UpdateGame(ctx context.Context, userID string, id string, input domain.GameInput) (*domain.Game, error) {
	game, err := uc.buildGame(userID, input)
	if err != nil {
		return nil, err
	}
	game.ID = id

	if err := uc.gameRepository.UpdateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (uc *gamesUsecase) DeleteGame(ctx context.Context, id string) error {
	return uc.gameRepository.DeleteGame(ctx, id)
}

// buildGame sanitizes and normalizes an input into the canonical Game.
// Bounds and types were already checked by the payload schema; what is left
// here is trimming and the release-date parse.
func (uc *gamesUsecase) buildGame(userID string, input domain.GameInput) (*domain.Game, error) {
	name := strings.TrimSpace(uc.sanitizer.Sanitize(input.Name))
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	genre := strings.TrimSpace(uc.sanitizer.Sanitize(input.Genre))
	if genre == "" {
		return nil, domain.ErrGenreRequired
	}

	game := &domain.Game{
		Name:      name,
		Genre:     genre,
		Rating:    input.Rating,
		Price:     input.Price,
		UpdatedBy: userID,
	}

	if input.Description != nil {
		desc := strings.TrimSpace(uc.sanitizer.Sanitize(*input.Description))
		if desc != "" {
			game.Description = &desc
		}
	}

	if input.ReleaseDate != nil && *input.ReleaseDate != "" {
		released, err := time.Parse("2006-01-02", *input.ReleaseDate)
		if err != nil {
			return nil, domain.ErrInvalidReleaseDate
		}
		game.ReleaseDate = &released
	}

	if len(input.Platform) > 0 {
		platforms := make([]string, 0, len(input.Platform))
		for _, p := range input.Platform {
			if p = strings.TrimSpace(uc.sanitizer.Sanitize(p)); p != "" {
				platforms = append(platforms, p)
			}
		}
		game.Platform = datatypes.NewJSONSlice(platforms)
	}

	return game, nil
}
