package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"setlist/internal/database"
	"setlist/internal/models"
	"setlist/internal/repositories"
	"setlist/internal/services"
	"setlist/pkg/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRebuildIndexLoadsStoredCatalog(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	songs := repositories.NewGORMSongRepository(db)
	ratings := repositories.NewGORMRatingRepository(db)
	blueTrain := &models.Song{Title: "Blue Train", ArtistID: "a1", Genre: "jazz", Length: 643}
	naima := &models.Song{Title: "Naima", ArtistID: "a1", Genre: "jazz"}
	require.NoError(t, songs.Create(ctx, blueTrain))
	require.NoError(t, songs.Create(ctx, naima))
	require.NoError(t, ratings.Create(ctx, &models.Rating{SongID: blueTrain.ID, UserID: "u1", Rating: 5}))

	// A fresh index, as after a restart, knows nothing until rebuilt
	index := search.NewMemoryIndex()
	hits, err := index.Search(ctx, "songs", search.Query{Text: "train", Fields: []string{"title"}})
	require.NoError(t, err)
	assert.Empty(t, hits)

	core, logs := observer.New(zap.InfoLevel)
	nSongs, nRatings, err := rebuildIndex(ctx, db, index, services.DefaultIndexNames, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 2, nSongs)
	assert.Equal(t, 1, nRatings)
	assert.Equal(t, 1, logs.FilterMessage("reindex finished").Len())

	hits, err = index.Search(ctx, "songs", search.Query{Text: "train", Fields: []string{"title"}})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	var doc models.SongDocument
	require.NoError(t, json.Unmarshal(hits[0], &doc))
	assert.Equal(t, blueTrain.ID, doc.ID)

	rated, err := index.Search(ctx, "ratings", search.Query{Terms: []search.Term{{Field: "song_id", Value: blueTrain.ID}}})
	require.NoError(t, err)
	assert.Len(t, rated, 1)
}
