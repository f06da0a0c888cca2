package search_test

import (
	"context"
	"encoding/json"
	"testing"

	"setlist/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type songDoc struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Genre  string `json:"genre"`
	Length int    `json:"length"`
}

func TestMemoryIndexLifecycle(t *testing.T) {
	ctx := context.Background()
	idx := search.NewMemoryIndex()

	require.NoError(t, idx.Index(ctx, "songs", "s1", songDoc{ID: "s1", Title: "Blue Train", Genre: "jazz", Length: 640}))
	doc, ok := idx.Get("songs", "s1")
	require.True(t, ok)
	assert.Equal(t, "Blue Train", doc["title"])

	// Update merges fields instead of replacing the document
	require.NoError(t, idx.Update(ctx, "songs", "s1", map[string]interface{}{"title": "Blue Train (Remastered)"}))
	doc, _ = idx.Get("songs", "s1")
	assert.Equal(t, "Blue Train (Remastered)", doc["title"])
	assert.Equal(t, "jazz", doc["genre"])

	// Update of a missing document creates it
	require.NoError(t, idx.Update(ctx, "songs", "s2", songDoc{ID: "s2", Title: "So What"}))
	assert.Equal(t, 2, idx.Count("songs"))

	require.NoError(t, idx.Delete(ctx, "songs", "s1"))
	_, ok = idx.Get("songs", "s1")
	assert.False(t, ok)

	// Deleting twice is not an error
	assert.NoError(t, idx.Delete(ctx, "songs", "s1"))
}

func TestMemoryIndexDeleteByQuery(t *testing.T) {
	ctx := context.Background()
	idx := search.NewMemoryIndex()

	require.NoError(t, idx.Index(ctx, "ratings", "r1", map[string]interface{}{"song_id": "s1", "rating": 3}))
	require.NoError(t, idx.Index(ctx, "ratings", "r2", map[string]interface{}{"song_id": "s1", "rating": 5}))
	require.NoError(t, idx.Index(ctx, "ratings", "r3", map[string]interface{}{"song_id": "s2", "rating": 4}))

	require.NoError(t, idx.DeleteByQuery(ctx, "ratings", search.Term{Field: "song_id", Value: "s1"}))

	assert.Equal(t, 1, idx.Count("ratings"))
	_, ok := idx.Get("ratings", "r3")
	assert.True(t, ok)
}

func TestMemoryIndexSearch(t *testing.T) {
	ctx := context.Background()
	idx := search.NewMemoryIndex()

	require.NoError(t, idx.Index(ctx, "songs", "a", songDoc{ID: "a", Title: "Night Drive", Genre: "synthwave"}))
	require.NoError(t, idx.Index(ctx, "songs", "b", songDoc{ID: "b", Title: "Morning Drive", Genre: "folk"}))
	require.NoError(t, idx.Index(ctx, "songs", "c", songDoc{ID: "c", Title: "Harbor", Genre: "folk"}))

	hits, err := idx.Search(ctx, "songs", search.Query{Text: "drive", Fields: []string{"title"}})
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = idx.Search(ctx, "songs", search.Query{
		Text:   "drive",
		Fields: []string{"title"},
		Terms:  []search.Term{{Field: "genre", Value: "folk"}},
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	var got songDoc
	require.NoError(t, json.Unmarshal(hits[0], &got))
	assert.Equal(t, "b", got.ID)

	hits, err = idx.Search(ctx, "songs", search.Query{Size: 1})
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = idx.Search(ctx, "missing", search.Query{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}
