package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticIndex is an Index backed by Elasticsearch.
type ElasticIndex struct {
	client *elasticsearch.Client
}

// NewElasticIndex creates a client for the given node addresses.
func NewElasticIndex(addresses []string) (*ElasticIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ElasticIndex{client: client}, nil
}

// Ping checks that the cluster answers.
func (e *ElasticIndex) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return checkResponse("ping", res, false)
}

// EnsureIndex creates index with mapping unless it already exists.
func (e *ElasticIndex) EnsureIndex(ctx context.Context, index, mapping string) error {
	res, err := e.client.Indices.Exists([]string{index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = e.client.Indices.Create(index,
		e.client.Indices.Create.WithContext(ctx),
		e.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return checkResponse("create index "+index, res, false)
}

// Index stores doc under id.
func (e *ElasticIndex) Index(ctx context.Context, index, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", id, err)
	}
	res, err := e.client.Index(index, bytes.NewReader(body),
		e.client.Index.WithDocumentID(id),
		e.client.Index.WithContext(ctx),
		e.client.Index.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return checkResponse("index "+index+"/"+id, res, false)
}

// Update merges partial into the document with id.
func (e *ElasticIndex) Update(ctx context.Context, index, id string, partial interface{}) error {
	body, err := json.Marshal(map[string]interface{}{"doc": partial, "doc_as_upsert": true})
	if err != nil {
		return fmt.Errorf("failed to marshal update for %s: %w", id, err)
	}
	res, err := e.client.Update(index, id, bytes.NewReader(body),
		e.client.Update.WithContext(ctx),
		e.client.Update.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return checkResponse("update "+index+"/"+id, res, false)
}

// Delete removes the document with id.
func (e *ElasticIndex) Delete(ctx context.Context, index, id string) error {
	res, err := e.client.Delete(index, id,
		e.client.Delete.WithContext(ctx),
		e.client.Delete.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return checkResponse("delete "+index+"/"+id, res, true)
}

// DeleteByQuery removes every document whose field equals the term value.
func (e *ElasticIndex) DeleteByQuery(ctx context.Context, index string, term Term) error {
	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"term": map[string]interface{}{term.Field: term.Value}},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal delete query: %w", err)
	}
	res, err := e.client.DeleteByQuery([]string{index}, bytes.NewReader(body),
		e.client.DeleteByQuery.WithContext(ctx),
		e.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return checkResponse("delete by query "+index, res, true)
}

// Search runs q against index.
func (e *ElasticIndex) Search(ctx context.Context, index string, q Query) ([]json.RawMessage, error) {
	body, err := json.Marshal(map[string]interface{}{"query": buildQuery(q)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}
	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(index),
		e.client.Search.WithBody(bytes.NewReader(body)),
		e.client.Search.WithSize(q.size()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return []json.RawMessage{}, nil
	}
	if res.IsError() {
		return nil, responseError("search "+index, res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	docs := make([]json.RawMessage, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

func buildQuery(q Query) map[string]interface{} {
	if q.Text == "" && len(q.Terms) == 0 {
		return map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	boolQuery := map[string]interface{}{}
	if q.Text != "" {
		boolQuery["must"] = []interface{}{map[string]interface{}{
			"multi_match": map[string]interface{}{"query": q.Text, "fields": q.Fields},
		}}
	}
	if len(q.Terms) > 0 {
		filters := make([]interface{}, 0, len(q.Terms))
		for _, t := range q.Terms {
			filters = append(filters, map[string]interface{}{"term": map[string]interface{}{t.Field: t.Value}})
		}
		boolQuery["filter"] = filters
	}
	return map[string]interface{}{"bool": boolQuery}
}

func checkResponse(op string, res *esapi.Response, allowNotFound bool) error {
	defer res.Body.Close()
	if allowNotFound && res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return responseError(op, res)
	}
	return nil
}

func responseError(op string, res *esapi.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("elasticsearch %s failed with status %d: %s", op, res.StatusCode, strings.TrimSpace(string(msg)))
}
