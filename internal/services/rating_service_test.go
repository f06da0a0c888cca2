package services_test

import (
	"context"
	"testing"

	"setlist/internal/apperror"
	"setlist/internal/models"
	"setlist/internal/services"
	"setlist/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRatingService_CreateRating(t *testing.T) {
	ctx := context.Background()
	ratings := new(MockRatingRepository)
	songs := new(MockSongRepository)
	index := search.NewMemoryIndex()
	service := services.NewRatingService(ratings, songs, services.NewMirror(index, services.DefaultIndexNames), nil)

	songs.On("GetByID", mock.Anything, "s1").Return(&models.Song{ID: "s1"}, nil)
	ratings.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Rating) bool {
		return r.SongID == "s1" && r.UserID == owner.ID && r.Rating == 4
	})).Run(func(args mock.Arguments) { args.Get(1).(*models.Rating).ID = "r1" }).Return(nil).Once()

	rating, err := service.CreateRating(ctx, "s1", 4, owner)
	require.NoError(t, err)
	assert.Equal(t, "r1", rating.ID)

	doc, ok := index.Get("ratings", "r1")
	require.True(t, ok)
	assert.Equal(t, "s1", doc["song_id"])
	assert.EqualValues(t, 4, doc["rating"])

	songs.On("GetByID", mock.Anything, "missing").Return(nil, notFound("missing")).Once()
	_, err = service.CreateRating(ctx, "missing", 4, owner)
	assert.Equal(t, "song not found", apperror.PublicMessage(err))

	ratings.AssertExpectations(t)
}

func TestRatingService_CreateRatingOutOfRange(t *testing.T) {
	ratings := new(MockRatingRepository)
	service := services.NewRatingService(ratings, new(MockSongRepository), services.NewMirror(search.NewMemoryIndex(), services.DefaultIndexNames), nil)

	for _, value := range []int{0, 6, -1} {
		_, err := service.CreateRating(context.Background(), "s1", value, owner)
		assert.True(t, apperror.Is(err, apperror.KindInvalid), "value %d", value)
	}
	ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_DeleteRating(t *testing.T) {
	ctx := context.Background()
	ratings := new(MockRatingRepository)
	index := search.NewMemoryIndex()
	service := services.NewRatingService(ratings, new(MockSongRepository), services.NewMirror(index, services.DefaultIndexNames), nil)

	require.NoError(t, index.Index(ctx, "ratings", "r1", models.RatingDocument{ID: "r1", SongID: "s1", UserID: owner.ID, Rating: 2}))
	ratings.On("GetByID", mock.Anything, "r1").Return(&models.Rating{ID: "r1", SongID: "s1", UserID: owner.ID, Rating: 2}, nil)

	err := service.DeleteRating(ctx, "r1", stranger)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	ratings.On("Delete", mock.Anything, "r1").Return(nil).Once()
	require.NoError(t, service.DeleteRating(ctx, "r1", admin))
	assert.Equal(t, 0, index.Count("ratings"))

	ratings.On("GetByID", mock.Anything, "missing").Return(nil, notFound("missing")).Once()
	err = service.DeleteRating(ctx, "missing", owner)
	assert.Equal(t, "rating not found", apperror.PublicMessage(err))

	ratings.AssertExpectations(t)
}

func TestRatingService_Reindex(t *testing.T) {
	ratings := new(MockRatingRepository)
	index := search.NewMemoryIndex()
	service := services.NewRatingService(ratings, new(MockSongRepository), services.NewMirror(index, services.DefaultIndexNames), nil)

	ratings.On("GetAll", mock.Anything).Return([]models.Rating{
		{ID: "r1", SongID: "s1", UserID: owner.ID, Rating: 4},
		{ID: "r2", SongID: "s1", UserID: stranger.ID, Rating: 2},
	}, nil).Once()

	n, err := service.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, index.Count("ratings"))

	doc, ok := index.Get("ratings", "r2")
	require.True(t, ok)
	assert.Equal(t, "s1", doc["song_id"])
	ratings.AssertExpectations(t)
}
