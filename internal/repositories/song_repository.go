package repositories

import (
	"context"

	"setlist/internal/models"
)

// SongRepository defines the interface for song data access.
type SongRepository interface {
	GetAll(ctx context.Context) ([]models.Song, error)
	GetByID(ctx context.Context, id string) (*models.Song, error)
	Create(ctx context.Context, song *models.Song) error
	Update(ctx context.Context, song *models.Song) error
	// Delete removes the song together with its ratings and playlist memberships.
	Delete(ctx context.Context, id string) error
}
