package models

import "time"

// Bounds of a rating score.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a single user's score for a song.
type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SongID    string    `json:"song_id" gorm:"type:varchar(36);index;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingDocument is the form of a rating stored in the ratings index.
type RatingDocument struct {
	ID     string `json:"id"`
	SongID string `json:"song_id"`
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
}

// Document builds the search document for r.
func (r *Rating) Document() RatingDocument {
	return RatingDocument{ID: r.ID, SongID: r.SongID, UserID: r.UserID, Rating: r.Rating}
}

// RatingSummary aggregates the ratings of a song.
type RatingSummary struct {
	Total int     `json:"total"`
	Avg   float64 `json:"avg"`
}

// SummarizeRatings returns the count and mean of ratings. The mean of no
// ratings is 0.
func SummarizeRatings(ratings []Rating) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return RatingSummary{
		Total: len(ratings),
		Avg:   float64(sum) / float64(len(ratings)),
	}
}
