package services

import (
	"context"
	"encoding/json"
	"fmt"

	"setlist/internal/models"
	"setlist/pkg/search"
)

// IndexNames names the indices songs and ratings are mirrored into.
type IndexNames struct {
	Songs   string
	Ratings string
}

// DefaultIndexNames are used when no names are configured.
var DefaultIndexNames = IndexNames{Songs: "songs", Ratings: "ratings"}

// SongIndexMapping declares reference fields as keywords so term filters match whole ids.
const SongIndexMapping = `{
  "mappings": {
    "properties": {
      "id":        {"type": "keyword"},
      "title":     {"type": "text"},
      "artist_id": {"type": "keyword"},
      "album_id":  {"type": "keyword"},
      "genre":     {"type": "keyword"},
      "length":    {"type": "integer"}
    }
  }
}`

// RatingIndexMapping is the mapping of the ratings index.
const RatingIndexMapping = `{
  "mappings": {
    "properties": {
      "id":      {"type": "keyword"},
      "song_id": {"type": "keyword"},
      "user_id": {"type": "keyword"},
      "rating":  {"type": "integer"}
    }
  }
}`

// Mirror keeps the search index in step with committed catalog rows.
type Mirror struct {
	index search.Index
	names IndexNames
}

// NewMirror creates a Mirror writing to index.
func NewMirror(index search.Index, names IndexNames) *Mirror {
	if names.Songs == "" {
		names.Songs = DefaultIndexNames.Songs
	}
	if names.Ratings == "" {
		names.Ratings = DefaultIndexNames.Ratings
	}
	return &Mirror{index: index, names: names}
}

// PutSong stores the full song document.
func (m *Mirror) PutSong(ctx context.Context, song *models.Song) error {
	if err := m.index.Index(ctx, m.names.Songs, song.ID, song.Document()); err != nil {
		return fmt.Errorf("failed to index song %s: %w", song.ID, err)
	}
	return nil
}

// RefreshSong re-mirrors the full song document, creating it if missing.
func (m *Mirror) RefreshSong(ctx context.Context, song *models.Song) error {
	if err := m.index.Update(ctx, m.names.Songs, song.ID, song.Document()); err != nil {
		return fmt.Errorf("failed to update indexed song %s: %w", song.ID, err)
	}
	return nil
}

// RemoveSong deletes the song's ratings and then the song document.
func (m *Mirror) RemoveSong(ctx context.Context, songID string) error {
	if err := m.index.DeleteByQuery(ctx, m.names.Ratings, search.Term{Field: "song_id", Value: songID}); err != nil {
		return fmt.Errorf("failed to delete indexed ratings of song %s: %w", songID, err)
	}
	if err := m.index.Delete(ctx, m.names.Songs, songID); err != nil {
		return fmt.Errorf("failed to delete indexed song %s: %w", songID, err)
	}
	return nil
}

// PutRating stores the rating document.
func (m *Mirror) PutRating(ctx context.Context, rating *models.Rating) error {
	if err := m.index.Index(ctx, m.names.Ratings, rating.ID, rating.Document()); err != nil {
		return fmt.Errorf("failed to index rating %s: %w", rating.ID, err)
	}
	return nil
}

// RemoveRating deletes the rating document.
func (m *Mirror) RemoveRating(ctx context.Context, ratingID string) error {
	if err := m.index.Delete(ctx, m.names.Ratings, ratingID); err != nil {
		return fmt.Errorf("failed to delete indexed rating %s: %w", ratingID, err)
	}
	return nil
}

// SearchSongs queries the songs index.
func (m *Mirror) SearchSongs(ctx context.Context, q search.Query) ([]models.SongDocument, error) {
	hits, err := m.index.Search(ctx, m.names.Songs, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	docs := make([]models.SongDocument, 0, len(hits))
	for _, raw := range hits {
		var doc models.SongDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode song document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
