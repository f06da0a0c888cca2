// Package search mirrors catalog documents into a secondary document index.
// Writes are not transactional with the relational store; callers sequence
// the two and accept best-effort consistency.
package search

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUnavailable is returned when the index backend cannot be reached.
var ErrUnavailable = errors.New("search index unavailable")

// Term is an exact-match condition on a keyword field.
type Term struct {
	Field string
	Value string
}

// Query selects documents. Text is matched against Fields; every Term must match.
type Query struct {
	Text   string
	Fields []string
	Terms  []Term
	Size   int
}

// Index is the document store behind the search mirror.
type Index interface {
	// Index stores doc under id, replacing any previous document.
	Index(ctx context.Context, index, id string, doc interface{}) error
	// Update merges partial into the document with id, creating it if absent.
	Update(ctx context.Context, index, id string, partial interface{}) error
	// Delete removes the document with id. A missing document is not an error.
	Delete(ctx context.Context, index, id string) error
	// DeleteByQuery removes every document matching term.
	DeleteByQuery(ctx context.Context, index string, term Term) error
	// Search returns the source of every matching document.
	Search(ctx context.Context, index string, q Query) ([]json.RawMessage, error)
}

const defaultSize = 20

func (q Query) size() int {
	if q.Size <= 0 {
		return defaultSize
	}
	return q.Size
}
