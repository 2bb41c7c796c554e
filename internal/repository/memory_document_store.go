package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryDocumentStore keeps documents in process memory.
type MemoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	order       map[string][]string
	commits     int
}

// NewMemoryDocumentStore returns an empty store.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		collections: make(map[string]map[string]map[string]any),
		order:       make(map[string][]string),
	}
}

func (s *MemoryDocumentStore) Insert(_ context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]map[string]any)
		s.collections[collection] = docs
	}
	docs[id] = cloneFields(fields)
	s.order[collection] = append(s.order[collection], id)
	return id, nil
}

func (s *MemoryDocumentStore) QueryByField(_ context.Context, collection, field, value string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for _, id := range s.order[collection] {
		fields := s.collections[collection][id]
		if v, ok := fields[field].(string); ok && v == value {
			out = append(out, Document{ID: id, Fields: cloneFields(fields)})
		}
	}
	return out, nil
}

// Get returns a copy of one document.
func (s *MemoryDocumentStore) Get(collection, id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.collections[collection][id]
	if !ok {
		return Document{}, false
	}
	return Document{ID: id, Fields: cloneFields(fields)}, true
}

// Commits reports how many batches have been committed.
func (s *MemoryDocumentStore) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

func (s *MemoryDocumentStore) NewBatch() WriteBatch {
	return &memoryBatch{store: s}
}

func (s *MemoryDocumentStore) Ping(context.Context) error {
	return nil
}

type memoryBatch struct {
	pendingWrites
	store *MemoryDocumentStore
}

// Commit applies every update or none of them.
func (b *memoryBatch) Commit(context.Context) error {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range b.updates {
		if _, ok := s.collections[u.ref.Collection][u.ref.ID]; !ok {
			return fmt.Errorf("update %s/%s: %w", u.ref.Collection, u.ref.ID, ErrDocumentNotFound)
		}
	}
	for _, u := range b.updates {
		doc := s.collections[u.ref.Collection][u.ref.ID]
		for k, v := range u.fields {
			doc[k] = v
		}
	}
	s.commits++
	b.updates = nil
	return nil
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
