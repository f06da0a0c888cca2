package repositories

import (
	"context"
	"errors"
	"fmt"

	"setlist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPlaylistRepository is a GORM implementation of PlaylistRepository.
type GORMPlaylistRepository struct {
	db *gorm.DB
}

// NewGORMPlaylistRepository creates a new instance of GORMPlaylistRepository.
func NewGORMPlaylistRepository(db *gorm.DB) *GORMPlaylistRepository {
	return &GORMPlaylistRepository{
		db: db,
	}
}

// GetByID retrieves a single playlist by its ID from the database.
func (r *GORMPlaylistRepository) GetByID(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("playlist %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get playlist by ID %s: %w", id, err)
	}
	return &playlist, nil
}

// Create creates a new playlist in the database.
func (r *GORMPlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

// Update writes the playlist title. The owner column is never touched.
func (r *GORMPlaylistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	res := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("id = ?", playlist.ID).Update("title", playlist.Title)
	if res.Error != nil {
		return fmt.Errorf("failed to update playlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("playlist %s: %w", playlist.ID, ErrNotFound)
	}
	if err := r.db.WithContext(ctx).First(playlist, "id = ?", playlist.ID).Error; err != nil {
		return fmt.Errorf("failed to reload playlist %s: %w", playlist.ID, err)
	}
	return nil
}

// Delete deletes a playlist and its memberships in one transaction.
func (r *GORMPlaylistRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistSong{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships of playlist %s: %w", id, err)
		}
		res := tx.Delete(&models.Playlist{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete playlist: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("playlist %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ListSongs returns the songs that belong to the playlist.
func (r *GORMPlaylistRepository) ListSongs(ctx context.Context, playlistID string) ([]models.Song, error) {
	songs := []models.Song{}
	err := r.db.WithContext(ctx).
		Joins("JOIN playlist_songs ON playlist_songs.song_id = songs.id").
		Where("playlist_songs.playlist_id = ?", playlistID).
		Order("songs.title, songs.id").
		Find(&songs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list songs of playlist %s: %w", playlistID, err)
	}
	return songs, nil
}

// HasSong reports whether songID is a member of the playlist.
func (r *GORMPlaylistRepository) HasSong(ctx context.Context, playlistID, songID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PlaylistSong{}).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership of song %s in playlist %s: %w", songID, playlistID, err)
	}
	return count > 0, nil
}

// AddSong inserts the membership, ignoring a row that already exists.
func (r *GORMPlaylistRepository) AddSong(ctx context.Context, playlistID, songID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PlaylistSong{PlaylistID: playlistID, SongID: songID})
	if res.Error != nil {
		return false, fmt.Errorf("failed to add song %s to playlist %s: %w", songID, playlistID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RemoveSong deletes the membership if present.
func (r *GORMPlaylistRepository) RemoveSong(ctx context.Context, playlistID, songID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Delete(&models.PlaylistSong{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove song %s from playlist %s: %w", songID, playlistID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
