package models

import "time"

// Playlist is an owned, unordered set of songs.
type Playlist struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlaylistSong links one playlist to one song. The composite key makes
// membership a set.
type PlaylistSong struct {
	PlaylistID string    `json:"playlist_id" gorm:"primaryKey;type:varchar(36)"`
	SongID     string    `json:"song_id" gorm:"primaryKey;type:varchar(36);index"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlaylistView is a playlist with its songs and its owner's username.
type PlaylistView struct {
	PlaylistID string `json:"playlist_id"`
	Title      string `json:"title"`
	Songs      []Song `json:"songs"`
	User       string `json:"user"`
}
