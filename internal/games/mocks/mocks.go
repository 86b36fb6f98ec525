package mocks

import (
	"context"

	"gamecatalog/domain"

	"github.com/stretchr/testify/mock"
)

type MockGamesUsecase struct {
	mock.Mock
}

func (m *MockGamesUsecase) ListGames(ctx context.Context, params domain.ListGamesParams) ([]domain.Game, int64, error) {
	args := m.Called(ctx, params)
	var games []domain.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]domain.Game)
	}
	return games, args.Get(1).(int64), args.Error(2)
}

func (m *MockGamesUsecase) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGamesUsecase) CreateGame(ctx context.Context, userID string, input domain.GameInput) (*domain.Game, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGamesUsecase) UpdateGame(ctx context.Context, userID string, id string, input domain.GameInput) (*domain.Game, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGamesUsecase) DeleteGame(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) ListGames(ctx context.Context, params domain.ListGamesParams) ([]domain.Game, int64, error) {
	args := m.Called(ctx, params)
	var games []domain.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]domain.Game)
	}
	return games, args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) GetGameByID(ctx context.Context, id string) (*domain.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGameRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) UpdateGame(ctx context.Context, game *domain.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) DeleteGame(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
