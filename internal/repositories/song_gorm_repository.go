package repositories

import (
	"context"
	"errors"
	"fmt"

	"setlist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSongRepository is a GORM implementation of SongRepository.
type GORMSongRepository struct {
	db *gorm.DB
}

// NewGORMSongRepository creates a new instance of GORMSongRepository.
func NewGORMSongRepository(db *gorm.DB) *GORMSongRepository {
	return &GORMSongRepository{
		db: db,
	}
}

// GetAll retrieves all songs from the database.
func (r *GORMSongRepository) GetAll(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := r.db.WithContext(ctx).Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to get all songs: %w", err)
	}
	return songs, nil
}

// GetByID retrieves a single song by its ID from the database.
func (r *GORMSongRepository) GetByID(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	if err := r.db.WithContext(ctx).First(&song, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("song %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get song by ID %s: %w", id, err)
	}
	return &song, nil
}

// Create creates a new song in the database.
func (r *GORMSongRepository) Create(ctx context.Context, song *models.Song) error {
	if song.ID == "" {
		song.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(song).Error; err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing song.
func (r *GORMSongRepository) Update(ctx context.Context, song *models.Song) error {
	// A map is used so zero values (empty genre, zero length) are written too.
	res := r.db.WithContext(ctx).Model(&models.Song{}).Where("id = ?", song.ID).Updates(map[string]interface{}{
		"title":     song.Title,
		"artist_id": song.ArtistID,
		"album_id":  song.AlbumID,
		"genre":     song.Genre,
		"length":    song.Length,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update song: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("song %s: %w", song.ID, ErrNotFound)
	}
	if err := r.db.WithContext(ctx).First(song, "id = ?", song.ID).Error; err != nil {
		return fmt.Errorf("failed to reload song %s: %w", song.ID, err)
	}
	return nil
}

// Delete deletes a song, its ratings and its playlist memberships in one transaction.
func (r *GORMSongRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("song_id = ?", id).Delete(&models.PlaylistSong{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist memberships of song %s: %w", id, err)
		}
		if err := tx.Where("song_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("failed to delete ratings of song %s: %w", id, err)
		}
		res := tx.Delete(&models.Song{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete song: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("song %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
