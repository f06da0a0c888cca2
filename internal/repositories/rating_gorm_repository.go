package repositories

import (
	"context"
	"errors"
	"fmt"

	"setlist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{db: db}
}

// GetAll retrieves every rating.
func (r *GORMRatingRepository) GetAll(ctx context.Context) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.db.WithContext(ctx).Order("id").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to get all ratings: %w", err)
	}
	return ratings, nil
}

// GetByID retrieves a rating by its ID.
func (r *GORMRatingRepository) GetByID(ctx context.Context, id string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating by ID %s: %w", id, err)
	}
	return &rating, nil
}

// ListBySong returns every rating of a song.
func (r *GORMRatingRepository) ListBySong(ctx context.Context, songID string) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.db.WithContext(ctx).Where("song_id = ?", songID).Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings of song %s: %w", songID, err)
	}
	return ratings, nil
}

// Create creates a new rating in the database.
func (r *GORMRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// Delete deletes a rating by its ID.
func (r *GORMRatingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Rating{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("rating %s: %w", id, ErrNotFound)
	}
	return nil
}
