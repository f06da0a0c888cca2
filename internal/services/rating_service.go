package services

import (
	"context"
	"fmt"

	"setlist/internal/apperror"
	"setlist/internal/models"
	"setlist/internal/repositories"
	"setlist/pkg/logger"

	"go.uber.org/zap"
)

// RatingService handles business logic related to ratings.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	songRepo   repositories.SongRepository
	mirror     *Mirror
	log        *zap.Logger
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repositories.RatingRepository, songRepo repositories.SongRepository, mirror *Mirror, log *zap.Logger) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		songRepo:   songRepo,
		mirror:     mirror,
		log:        logger.OrNop(log),
	}
}

// CreateRating records caller's rating of a song and indexes it.
func (s *RatingService) CreateRating(ctx context.Context, songID string, value int, caller *models.User) (*models.Rating, error) {
	if value < models.MinRating || value > models.MaxRating {
		return nil, apperror.Invalid(fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating))
	}
	if _, err := s.songRepo.GetByID(ctx, songID); err != nil {
		return nil, storeError(err, "song")
	}

	rating := &models.Rating{SongID: songID, UserID: caller.ID, Rating: value}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := s.mirror.PutRating(ctx, rating); err != nil {
		s.log.Error("rating committed but not indexed", zap.String("rating_id", rating.ID), zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return rating, nil
}

// DeleteRating removes a rating owned by caller, or any rating for an admin.
func (s *RatingService) DeleteRating(ctx context.Context, id string, caller *models.User) error {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return storeError(err, "rating")
	}
	if rating.UserID != caller.ID && !caller.Role.IsAdmin() {
		return apperror.Forbidden()
	}

	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		return storeError(err, "rating")
	}

	if err := s.mirror.RemoveRating(ctx, id); err != nil {
		s.log.Error("rating deleted but still indexed", zap.String("rating_id", id), zap.Error(err))
		return apperror.Internal(err)
	}
	return nil
}

// Reindex writes every stored rating into the index and returns how many were written.
func (s *RatingService) Reindex(ctx context.Context) (int, error) {
	ratings, err := s.ratingRepo.GetAll(ctx)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	for i := range ratings {
		if err := s.mirror.PutRating(ctx, &ratings[i]); err != nil {
			return i, apperror.Internal(err)
		}
	}
	return len(ratings), nil
}
