package repositories

import (
	"context"

	"setlist/internal/models"
)

// RatingRepository defines the interface for rating data access.
type RatingRepository interface {
	GetAll(ctx context.Context) ([]models.Rating, error)
	GetByID(ctx context.Context, id string) (*models.Rating, error)
	ListBySong(ctx context.Context, songID string) ([]models.Rating, error)
	Create(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id string) error
}
