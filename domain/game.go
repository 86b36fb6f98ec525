package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID          string                      `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Name        string                      `gorm:"type:varchar(255);unique;not null;column:name" json:"name"`
	Genre       string                      `gorm:"type:varchar(100);not null;column:genre" json:"genre"`
	Rating      float64                     `gorm:"type:numeric(3,1);not null;column:rating;check:rating >= 0 AND rating <= 10" json:"rating"`
	Price       float64                     `gorm:"type:numeric(6,2);not null;column:price;check:price >= 0 AND price <= 9999.99" json:"price"`
	Description *string                     `gorm:"type:varchar(1000);column:description" json:"description"`
	ReleaseDate *time.Time                  `gorm:"type:date;column:release_date" json:"releaseDate"`
	Platform    datatypes.JSONSlice[string] `gorm:"column:platform" json:"platform"`
	CreatedBy   string                      `gorm:"type:uuid;not null;column:created_by" json:"createdBy"`
	UpdatedBy   string                      `gorm:"type:uuid;not null;column:updated_by" json:"updatedBy"`
	Creator     User                        `gorm:"foreignkey:CreatedBy;references:ID" json:"-"`
	Updater     User                        `gorm:"foreignkey:UpdatedBy;references:ID" json:"-"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// GameInput is the client payload for create and full-replace update.
// Unknown fields are dropped by json decoding; bounds are enforced by the
// payload schema before an input reaches a usecase.
type GameInput struct {
	Name        string   `json:"name"`
	Genre       string   `json:"genre"`
	Rating      float64  `json:"rating"`
	Price       float64  `json:"price"`
	Description *string  `json:"description"`
	ReleaseDate *string  `json:"releaseDate"`
	Platform    []string `json:"platform"`
}

// ListGamesParams carries normalized list query parameters. SortBy and
// SortOrder must already be resolved against the sort allow-list before a
// repository interpolates them into query text.
type ListGamesParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

type GameRepository interface {
	ListGames(ctx context.Context, params ListGamesParams) ([]Game, int64, error)
	GetGameByID(ctx context.Context, id string) (*Game, error)
	CreateGame(ctx context.Context, game *Game) error
	// UpdateGame overwrites the mutable columns and writes the stored row
	// back into game.
	UpdateGame(ctx context.Context, game *Game) error
	DeleteGame(ctx context.Context, id string) error
}
