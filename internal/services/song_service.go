package services

import (
	"context"
	"errors"

	"setlist/internal/apperror"
	"setlist/internal/models"
	"setlist/internal/repositories"
	"setlist/pkg/logger"
	"setlist/pkg/search"

	"go.uber.org/zap"
)

// SongSearch filters a song search.
type SongSearch struct {
	Text     string
	Genre    string
	ArtistID string
	Size     int
}

// SongService handles business logic related to songs. Every committed write
// is mirrored into the search index afterwards; the two writes are not atomic.
type SongService struct {
	songRepo   repositories.SongRepository
	ratingRepo repositories.RatingRepository
	userRepo   repositories.UserRepository
	artistRepo repositories.ArtistRepository
	mirror     *Mirror
	events     EventPublisher
	log        *zap.Logger
}

// NewSongService creates a new SongService. events may be nil.
func NewSongService(songRepo repositories.SongRepository, ratingRepo repositories.RatingRepository, userRepo repositories.UserRepository, artistRepo repositories.ArtistRepository, mirror *Mirror, events EventPublisher, log *zap.Logger) *SongService {
	return &SongService{
		songRepo:   songRepo,
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		artistRepo: artistRepo,
		mirror:     mirror,
		events:     events,
		log:        logger.OrNop(log),
	}
}

// CreateSong persists a song and indexes it.
func (s *SongService) CreateSong(ctx context.Context, attrs models.SongAttributes, caller *models.User) (*models.Song, error) {
	if !caller.Role.CanPublish() {
		return nil, apperror.Forbidden()
	}

	song := &models.Song{}
	attrs.Apply(song)
	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := s.mirror.PutSong(ctx, song); err != nil {
		s.log.Error("song committed but not indexed", zap.String("song_id", song.ID), zap.Error(err))
		return nil, apperror.Internal(err)
	}

	publishEvent(s.events, s.log, EventSongCreated, song.ID)
	return song, nil
}

// GetSong returns the song with its artist and rating summary.
func (s *SongService) GetSong(ctx context.Context, id string) (*models.SongView, error) {
	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "song")
	}

	ratings, err := s.ratingRepo.ListBySong(ctx, song.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	artist, err := s.songArtist(ctx, song.ArtistID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &models.SongView{
		ID:      song.ID,
		Title:   song.Title,
		Artist:  artist,
		AlbumID: song.AlbumID,
		Genre:   song.Genre,
		Length:  song.Length,
		Ratings: models.SummarizeRatings(ratings),
	}, nil
}

// UpdateSong replaces every mutable field of a song the caller manages and
// re-mirrors the full document.
func (s *SongService) UpdateSong(ctx context.Context, id string, attrs models.SongAttributes, caller *models.User) (*models.Song, error) {
	song, err := s.managedSong(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	attrs.Apply(song)
	if err := s.songRepo.Update(ctx, song); err != nil {
		return nil, storeError(err, "song")
	}

	if err := s.mirror.RefreshSong(ctx, song); err != nil {
		s.log.Error("song updated but index is stale", zap.String("song_id", song.ID), zap.Error(err))
		return nil, apperror.Internal(err)
	}

	publishEvent(s.events, s.log, EventSongUpdated, song.ID)
	return song, nil
}

// DeleteSong removes a song the caller manages, then its ratings and its
// document from the index.
func (s *SongService) DeleteSong(ctx context.Context, id string, caller *models.User) error {
	if _, err := s.managedSong(ctx, id, caller); err != nil {
		return err
	}

	if err := s.songRepo.Delete(ctx, id); err != nil {
		return storeError(err, "song")
	}

	if err := s.mirror.RemoveSong(ctx, id); err != nil {
		s.log.Error("song deleted but still indexed", zap.String("song_id", id), zap.Error(err))
		return apperror.Internal(err)
	}

	publishEvent(s.events, s.log, EventSongDeleted, id)
	return nil
}

// SearchSongs queries the search mirror.
func (s *SongService) SearchSongs(ctx context.Context, q SongSearch) ([]models.SongDocument, error) {
	query := search.Query{Text: q.Text, Fields: []string{"title", "genre"}, Size: q.Size}
	if q.Genre != "" {
		query.Terms = append(query.Terms, search.Term{Field: "genre", Value: q.Genre})
	}
	if q.ArtistID != "" {
		query.Terms = append(query.Terms, search.Term{Field: "artist_id", Value: q.ArtistID})
	}

	docs, err := s.mirror.SearchSongs(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return docs, nil
}

// Reindex writes every stored song into the index and returns how many were written.
func (s *SongService) Reindex(ctx context.Context) (int, error) {
	songs, err := s.songRepo.GetAll(ctx)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	for i := range songs {
		if err := s.mirror.PutSong(ctx, &songs[i]); err != nil {
			return i, apperror.Internal(err)
		}
	}
	return len(songs), nil
}

// songArtist loads the publishing user and their profile. A missing user
// yields nil since the reference is not enforced.
func (s *SongService) songArtist(ctx context.Context, userID string) (*models.SongArtist, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	artist := &models.SongArtist{ID: user.ID, Username: user.Username}
	profile, err := s.artistRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		artist.Profile = profile
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}
	return artist, nil
}

// managedSong loads the song and checks that caller is its artist or an admin.
func (s *SongService) managedSong(ctx context.Context, id string, caller *models.User) (*models.Song, error) {
	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "song")
	}
	if song.ArtistID != caller.ID && !caller.Role.IsAdmin() {
		return nil, apperror.Forbidden()
	}
	return song, nil
}
