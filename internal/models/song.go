package models

import "time"

// Song represents a track in the catalog.
type Song struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	ArtistID  string    `json:"artist_id" gorm:"type:varchar(36);index;not null"`
	AlbumID   string    `json:"album_id" gorm:"type:varchar(36);index"`
	Genre     string    `json:"genre" gorm:"type:varchar(100)"`
	Length    int       `json:"length"` // seconds
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SongAttributes are the mutable fields of a song, replaced as a whole on update.
type SongAttributes struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	ArtistID string `json:"artist_id" validate:"required"`
	AlbumID  string `json:"album_id" validate:"omitempty,max=36"`
	Genre    string `json:"genre" validate:"omitempty,max=100"`
	Length   int    `json:"length" validate:"gte=0"`
}

// Apply copies the attributes onto s.
func (a SongAttributes) Apply(s *Song) {
	s.Title = a.Title
	s.ArtistID = a.ArtistID
	s.AlbumID = a.AlbumID
	s.Genre = a.Genre
	s.Length = a.Length
}

// SongDocument is the denormalized form of a song stored in the search index.
type SongDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ArtistID string `json:"artist_id"`
	AlbumID  string `json:"album_id"`
	Genre    string `json:"genre"`
	Length   int    `json:"length"`
}

// Document builds the search document for s.
func (s *Song) Document() SongDocument {
	return SongDocument{
		ID:       s.ID,
		Title:    s.Title,
		ArtistID: s.ArtistID,
		AlbumID:  s.AlbumID,
		Genre:    s.Genre,
		Length:   s.Length,
	}
}

// SongView is a song as returned by GetSong.
type SongView struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Artist  *SongArtist   `json:"artist"`
	AlbumID string        `json:"album_id"`
	Genre   string        `json:"genre"`
	Length  int           `json:"length"`
	Ratings RatingSummary `json:"ratings"`
}
