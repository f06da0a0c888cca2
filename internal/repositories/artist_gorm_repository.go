package repositories

import (
	"context"
	"errors"
	"fmt"

	"setlist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMArtistRepository is a GORM implementation of ArtistRepository.
type GORMArtistRepository struct {
	db *gorm.DB
}

// NewGORMArtistRepository creates a new instance of GORMArtistRepository.
func NewGORMArtistRepository(db *gorm.DB) *GORMArtistRepository {
	return &GORMArtistRepository{db: db}
}

// Create creates a new artist profile. A second profile for the same user
// fails with ErrDuplicate.
func (r *GORMArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	if artist.ID == "" {
		artist.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(artist).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("artist for user %s: %w", artist.UserID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

// GetByID retrieves an artist profile by its ID.
func (r *GORMArtistRepository) GetByID(ctx context.Context, id string) (*models.Artist, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUserID retrieves the artist profile of a user.
func (r *GORMArtistRepository) GetByUserID(ctx context.Context, userID string) (*models.Artist, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *GORMArtistRepository) first(ctx context.Context, cond string, arg string) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).First(&artist, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("artist %s: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get artist %s: %w", arg, err)
	}
	return &artist, nil
}
