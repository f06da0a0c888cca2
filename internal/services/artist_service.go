package services

import (
	"context"
	"errors"

	"setlist/internal/apperror"
	"setlist/internal/models"
	"setlist/internal/repositories"
	"setlist/pkg/logger"

	"go.uber.org/zap"
)

// ArtistService handles business logic related to artist profiles.
type ArtistService struct {
	artistRepo repositories.ArtistRepository
	userRepo   repositories.UserRepository
	log        *zap.Logger
}

// NewArtistService creates a new ArtistService.
func NewArtistService(artistRepo repositories.ArtistRepository, userRepo repositories.UserRepository, log *zap.Logger) *ArtistService {
	return &ArtistService{
		artistRepo: artistRepo,
		userRepo:   userRepo,
		log:        logger.OrNop(log),
	}
}

// CreateArtist creates the artist profile of attrs.UserID, or of caller when
// it is empty. Only an admin may create a profile for someone else.
func (s *ArtistService) CreateArtist(ctx context.Context, attrs models.ArtistAttributes, caller *models.User) (*models.Artist, error) {
	if !caller.Role.CanPublish() {
		return nil, apperror.Forbidden()
	}

	userID := attrs.UserID
	if userID == "" {
		userID = caller.ID
	}
	if userID != caller.ID {
		if !caller.Role.IsAdmin() {
			return nil, apperror.Forbidden()
		}
		target, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, storeError(err, "user")
		}
		if !target.Role.CanPublish() {
			return nil, apperror.Invalid("user cannot publish songs")
		}
	}

	artist := &models.Artist{Name: attrs.Name, Genre: attrs.Genre, UserID: userID}
	if err := s.artistRepo.Create(ctx, artist); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict("artist profile already exists")
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("artist profile created", zap.String("artist_id", artist.ID), zap.String("user_id", userID))
	return artist, nil
}

// GetArtist returns the artist profile with the given id.
func (s *ArtistService) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	artist, err := s.artistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "artist")
	}
	return artist, nil
}
