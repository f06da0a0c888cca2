package search_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"setlist/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// fakeCluster answers like an Elasticsearch node and records what it receives.
type fakeCluster struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	status, respBody := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	if respBody == "" {
		respBody = `{}`
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, respBody)
}

func (f *fakeCluster) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newElastic(t *testing.T, cluster *fakeCluster) *search.ElasticIndex {
	t.Helper()
	srv := httptest.NewServer(cluster)
	t.Cleanup(srv.Close)
	idx, err := search.NewElasticIndex([]string{srv.URL})
	require.NoError(t, err)
	return idx
}

func TestElasticIndexDocument(t *testing.T) {
	cluster := &fakeCluster{}
	idx := newElastic(t, cluster)

	err := idx.Index(context.Background(), "songs", "s1", map[string]interface{}{"id": "s1", "title": "Blue Train"})
	require.NoError(t, err)

	req := cluster.last()
	assert.Equal(t, "/songs/_doc/s1", req.Path)
	assert.JSONEq(t, `{"id":"s1","title":"Blue Train"}`, req.Body)
}

func TestElasticUpdateUpserts(t *testing.T) {
	cluster := &fakeCluster{}
	idx := newElastic(t, cluster)

	require.NoError(t, idx.Update(context.Background(), "songs", "s1", map[string]interface{}{"title": "So What"}))

	req := cluster.last()
	assert.Equal(t, "/songs/_update/s1", req.Path)
	assert.JSONEq(t, `{"doc":{"title":"So What"},"doc_as_upsert":true}`, req.Body)
}

func TestElasticDeleteIgnoresMissing(t *testing.T) {
	cluster := &fakeCluster{status: http.StatusNotFound, body: `{"result":"not_found"}`}
	idx := newElastic(t, cluster)

	require.NoError(t, idx.Delete(context.Background(), "songs", "gone"))
	req := cluster.last()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/songs/_doc/gone", req.Path)
}

func TestElasticDeleteByQuery(t *testing.T) {
	cluster := &fakeCluster{body: `{"deleted":2}`}
	idx := newElastic(t, cluster)

	err := idx.DeleteByQuery(context.Background(), "ratings", search.Term{Field: "song_id", Value: "s1"})
	require.NoError(t, err)

	req := cluster.last()
	assert.Equal(t, "/ratings/_delete_by_query", req.Path)
	assert.JSONEq(t, `{"query":{"term":{"song_id":"s1"}}}`, req.Body)
}

func TestElasticSearchParsesHits(t *testing.T) {
	cluster := &fakeCluster{body: `{"hits":{"hits":[{"_id":"s1","_source":{"id":"s1","title":"Night Drive"}}]}}`}
	idx := newElastic(t, cluster)

	hits, err := idx.Search(context.Background(), "songs", search.Query{
		Text:   "drive",
		Fields: []string{"title"},
		Terms:  []search.Term{{Field: "genre", Value: "synthwave"}},
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(hits[0], &doc))
	assert.Equal(t, "Night Drive", doc["title"])

	req := cluster.last()
	assert.Equal(t, "/songs/_search", req.Path)
	assert.Contains(t, req.Body, `"multi_match"`)
	assert.Contains(t, req.Body, `"genre":"synthwave"`)
}

func TestElasticErrorStatus(t *testing.T) {
	cluster := &fakeCluster{status: http.StatusBadRequest, body: `{"error":"mapper_parsing_exception"}`}
	idx := newElastic(t, cluster)

	err := idx.Index(context.Background(), "songs", "s1", map[string]interface{}{"id": "s1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}
