package store

import (
	"context"
	"sort"
	"sync"

	"github.com/giantswarm/serverconf/internal/document"
)

type memoryRecord struct {
	doc      *document.ServerConfig
	revision int64
}

// Memory keeps documents in process memory.
type Memory struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]memoryRecord)}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, serverName string) (*document.ServerConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[serverName]
	if !ok {
		return nil, ErrNotFound
	}
	doc := rec.doc.Clone()
	doc.Revision = formatRevision(rec.revision)
	return doc, nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, doc *document.ServerConfig) error {
	expected, err := parseRevision(doc.Revision)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.records[doc.ServerName]
	if rec.revision != expected {
		return ErrConflict
	}
	next := rec.revision + 1
	stored := doc.Clone()
	stored.Revision = ""
	m.records[doc.ServerName] = memoryRecord{doc: stored, revision: next}
	doc.Revision = formatRevision(next)
	return nil
}

// List implements Store.
func (m *Memory) List(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
