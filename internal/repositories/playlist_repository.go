package repositories

import (
	"context"

	"setlist/internal/models"
)

// PlaylistRepository defines the interface for playlist and membership data access.
type PlaylistRepository interface {
	GetByID(ctx context.Context, id string) (*models.Playlist, error)
	Create(ctx context.Context, playlist *models.Playlist) error
	Update(ctx context.Context, playlist *models.Playlist) error
	// Delete removes the playlist together with its memberships.
	Delete(ctx context.Context, id string) error

	ListSongs(ctx context.Context, playlistID string) ([]models.Song, error)
	HasSong(ctx context.Context, playlistID, songID string) (bool, error)
	// AddSong inserts the membership and reports whether a row was written.
	AddSong(ctx context.Context, playlistID, songID string) (bool, error)
	// RemoveSong deletes the membership and reports whether a row was removed.
	RemoveSong(ctx context.Context, playlistID, songID string) (bool, error)
}
