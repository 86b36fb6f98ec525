package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gamecatalog/domain"

	"github.com/google/uuid"
)

// memoryGameRepository is the non-persistent demo backing. It holds the
// same canonical domain.Game records the postgres repository does and
// mirrors its conflict and not-found semantics.
type memoryGameRepository struct {
	mu    sync.RWMutex
	games map[string]domain.Game
}

func NewMemoryGameRepository() domain.GameRepository {
	return &memoryGameRepository{
		games: make(map[string]domain.Game),
	}
}

func (r *memoryGameRepository) ListGames(_ context.Context, params domain.ListGamesParams) ([]domain.Game, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Game, 0, len(r.games))
	search := strings.ToLower(params.Search)
	for _, game := range r.games {
		if search != "" && !matchesSearch(game, search) {
			continue
		}
		matched = append(matched, game)
	}

	sortGames(matched, params.SortBy, params.SortOrder)

	total := int64(len(matched))
	start := (params.Page - 1) * params.Limit
	if start >= len(matched) {
		return []domain.Game{}, total, nil
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matchesSearch(game domain.Game, search string) bool {
	if strings.Contains(strings.ToLower(game.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(game.Genre), search) {
		return true
	}
	return game.Description != nil && strings.Contains(strings.ToLower(*game.Description), search)
}

func sortGames(games []domain.Game, sortBy, sortOrder string) {
	less := func(a, b domain.Game) bool {
		switch sortBy {
		case "genre":
			return a.Genre < b.Genre
		case "rating":
			return a.Rating < b.Rating
		case "price":
			return a.Price < b.Price
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Name < b.Name
		}
	}
	sort.SliceStable(games, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(games[j], games[i])
		}
		return less(games[i], games[j])
	})
}

func (r *memoryGameRepository) GetGameByID(_ context.Context, id string) (*domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return &game, nil
}

func (r *memoryGameRepository) CreateGame(_ context.Context, game *domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(game.Name, "") {
		return domain.ErrGameExists
	}

	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	now := time.Now()
	game.CreatedAt = now
	game.UpdatedAt = now

	r.games[game.ID] = *game
	return nil
}

func (r *memoryGameRepository) UpdateGame(_ context.Context, game *domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.games[game.ID]
	if !ok {
		return domain.ErrGameNotFound
	}
	if r.nameTaken(game.Name, game.ID) {
		return domain.ErrGameExists
	}

	game.CreatedBy = current.CreatedBy
	game.CreatedAt = current.CreatedAt
	game.UpdatedAt = time.Now()
	// updated_at must strictly advance even on a coarse clock
	if !game.UpdatedAt.After(current.UpdatedAt) {
		game.UpdatedAt = current.UpdatedAt.Add(time.Nanosecond)
	}

	r.games[game.ID] = *game
	return nil
}

func (r *memoryGameRepository) DeleteGame(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return domain.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *memoryGameRepository) nameTaken(name, excludeID string) bool {
	for id, game := range r.games {
		if id != excludeID && strings.EqualFold(game.Name, name) {
			return true
		}
	}
	return false
}
