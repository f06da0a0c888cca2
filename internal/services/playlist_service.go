package services

import (
	"context"

	"setlist/internal/apperror"
	"setlist/internal/models"
	"setlist/internal/repositories"
	"setlist/pkg/logger"

	"go.uber.org/zap"
)

// Membership is the outcome of an add or remove call. Changed is false when
// the call was a no-op because the song was already (or never) a member.
type Membership struct {
	Playlist *models.PlaylistView
	Changed  bool
}

// PlaylistService handles business logic related to playlists.
type PlaylistService struct {
	playlistRepo repositories.PlaylistRepository
	songRepo     repositories.SongRepository
	userRepo     repositories.UserRepository
	log          *zap.Logger
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(playlistRepo repositories.PlaylistRepository, songRepo repositories.SongRepository, userRepo repositories.UserRepository, log *zap.Logger) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		songRepo:     songRepo,
		userRepo:     userRepo,
		log:          logger.OrNop(log),
	}
}

// CreatePlaylist creates an empty playlist owned by caller.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, title string, caller *models.User) (*models.Playlist, error) {
	playlist := &models.Playlist{Title: title, UserID: caller.ID}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, apperror.Internal(err)
	}
	return playlist, nil
}

// GetPlaylist returns the playlist with its songs and owner.
func (s *PlaylistService) GetPlaylist(ctx context.Context, id string) (*models.PlaylistView, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return s.view(ctx, playlist)
}

// UpdatePlaylist replaces the title of a playlist owned by caller.
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, id, title string, caller *models.User) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	playlist.Title = title
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

// DeletePlaylist removes a playlist owned by caller and all its memberships.
func (s *PlaylistService) DeletePlaylist(ctx context.Context, id string, caller *models.User) error {
	if _, err := s.ownedPlaylist(ctx, id, caller); err != nil {
		return err
	}
	if err := s.playlistRepo.Delete(ctx, id); err != nil {
		return storeError(err, "playlist")
	}
	return nil
}

// AddSongToPlaylist makes songID a member of the playlist. Adding a song that
// is already a member returns the current state unchanged.
func (s *PlaylistService) AddSongToPlaylist(ctx context.Context, playlistID, songID string, caller *models.User) (*Membership, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, caller)
	if err != nil {
		return nil, err
	}
	if _, err := s.songRepo.GetByID(ctx, songID); err != nil {
		return nil, storeError(err, "song")
	}

	member, err := s.playlistRepo.HasSong(ctx, playlistID, songID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	changed := false
	if !member {
		// A concurrent add of the same pair is absorbed by the insert.
		changed, err = s.playlistRepo.AddSong(ctx, playlistID, songID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if changed {
			s.log.Debug("song added to playlist", zap.String("playlist_id", playlistID), zap.String("song_id", songID))
		}
	}

	view, err := s.view(ctx, playlist)
	if err != nil {
		return nil, err
	}
	return &Membership{Playlist: view, Changed: changed}, nil
}

// RemoveSongFromPlaylist drops songID from the playlist. Removing a song that
// is not a member returns the current state unchanged.
func (s *PlaylistService) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string, caller *models.User) (*Membership, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, caller)
	if err != nil {
		return nil, err
	}
	if _, err := s.songRepo.GetByID(ctx, songID); err != nil {
		return nil, storeError(err, "song")
	}

	member, err := s.playlistRepo.HasSong(ctx, playlistID, songID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	changed := false
	if member {
		changed, err = s.playlistRepo.RemoveSong(ctx, playlistID, songID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if changed {
			s.log.Debug("song removed from playlist", zap.String("playlist_id", playlistID), zap.String("song_id", songID))
		}
	}

	view, err := s.view(ctx, playlist)
	if err != nil {
		return nil, err
	}
	return &Membership{Playlist: view, Changed: changed}, nil
}

// ownedPlaylist loads the playlist and checks that caller owns it.
func (s *PlaylistService) ownedPlaylist(ctx context.Context, id string, caller *models.User) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	if playlist.UserID != caller.ID {
		return nil, apperror.Forbidden()
	}
	return playlist, nil
}

func (s *PlaylistService) view(ctx context.Context, playlist *models.Playlist) (*models.PlaylistView, error) {
	songs, err := s.playlistRepo.ListSongs(ctx, playlist.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	owner, err := s.userRepo.GetByID(ctx, playlist.UserID)
	if err != nil {
		// Every playlist has an owner; a missing one is a store inconsistency.
		return nil, apperror.Internal(err)
	}
	return &models.PlaylistView{
		PlaylistID: playlist.ID,
		Title:      playlist.Title,
		Songs:      songs,
		User:       owner.Username,
	}, nil
}
