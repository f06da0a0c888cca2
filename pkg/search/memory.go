package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryIndex is an in-process Index used when no cluster is configured and in tests.
type MemoryIndex struct {
	mu      sync.RWMutex
	indices map[string]map[string]map[string]interface{}
}

// NewMemoryIndex creates an empty MemoryIndex.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{indices: make(map[string]map[string]map[string]interface{})}
}

// Index stores doc under id.
func (m *MemoryIndex) Index(_ context.Context, index, id string, doc interface{}) error {
	fields, err := toFields(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs(index)[id] = fields
	return nil
}

// Update merges partial into the document with id, creating it if absent.
func (m *MemoryIndex) Update(_ context.Context, index, id string, partial interface{}) error {
	fields, err := toFields(partial)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.docs(index)
	current, ok := docs[id]
	if !ok {
		current = make(map[string]interface{}, len(fields))
		docs[id] = current
	}
	for k, v := range fields {
		current[k] = v
	}
	return nil
}

// Delete removes the document with id.
func (m *MemoryIndex) Delete(_ context.Context, index, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs(index), id)
	return nil
}

// DeleteByQuery removes every document matching term.
func (m *MemoryIndex) DeleteByQuery(_ context.Context, index string, term Term) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.docs(index)
	for id, fields := range docs {
		if matchesTerm(fields, term) {
			delete(docs, id)
		}
	}
	return nil
}

// Search returns matching documents ordered by id.
func (m *MemoryIndex) Search(_ context.Context, index string, q Query) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := m.indices[index]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []json.RawMessage{}
	for _, id := range ids {
		fields := docs[id]
		if !matchesQuery(fields, q) {
			continue
		}
		raw, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("failed to encode document %s: %w", id, err)
		}
		out = append(out, raw)
		if len(out) == q.size() {
			break
		}
	}
	return out, nil
}

// Get returns the stored document, for inspecting the mirror directly.
func (m *MemoryIndex) Get(index, id string) (map[string]interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fields, ok := m.indices[index][id]
	if !ok {
		return nil, false
	}
	cp := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp, true
}

// Count returns the number of documents in index.
func (m *MemoryIndex) Count(index string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.indices[index])
}

func (m *MemoryIndex) docs(index string) map[string]map[string]interface{} {
	docs, ok := m.indices[index]
	if !ok {
		docs = make(map[string]map[string]interface{})
		m.indices[index] = docs
	}
	return docs
}

func toFields(doc interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	return fields, nil
}

func matchesTerm(fields map[string]interface{}, term Term) bool {
	v, ok := fields[term.Field]
	return ok && fmt.Sprint(v) == term.Value
}

func matchesQuery(fields map[string]interface{}, q Query) bool {
	for _, t := range q.Terms {
		if !matchesTerm(fields, t) {
			return false
		}
	}
	if q.Text == "" {
		return true
	}
	needle := strings.ToLower(q.Text)
	for _, f := range q.Fields {
		if s, ok := fields[f].(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
