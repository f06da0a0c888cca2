package models

import "time"

// Artist is the public profile of a publishing user. A user has at most one.
type Artist struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Genre     string    `json:"genre" gorm:"type:varchar(100)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtistAttributes is the body of a new artist profile. An empty UserID means
// the caller's own profile.
type ArtistAttributes struct {
	Name   string `json:"name" validate:"required,max=255"`
	Genre  string `json:"genre" validate:"omitempty,max=100"`
	UserID string `json:"user_id" validate:"omitempty,max=36"`
}

// SongArtist is the artist embedded in a song view: the publishing user and
// their profile, which is nil until one is created.
type SongArtist struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Profile  *Artist `json:"profile"`
}
