package repositories

import (
	"context"

	"setlist/internal/models"
)

// ArtistRepository defines the interface for artist profile data access.
type ArtistRepository interface {
	Create(ctx context.Context, artist *models.Artist) error
	GetByID(ctx context.Context, id string) (*models.Artist, error)
	GetByUserID(ctx context.Context, userID string) (*models.Artist, error)
}
