package service

import (
	"context"
	"errors"

	"github.com/spec-kit/profile-push-service/internal/domain"
	"github.com/spec-kit/profile-push-service/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// stubStore records calls and returns canned results.
type stubStore struct {
	insertID     string
	insertErr    error
	queryErr     error
	commitErr    error
	inserts      []map[string]any
	insertedInto []string
	queries      int
	batches      []*stubBatch
}

func (s *stubStore) Insert(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.inserts = append(s.inserts, fields)
	s.insertedInto = append(s.insertedInto, collection)
	return s.insertID, s.insertErr
}

func (s *stubStore) QueryByField(context.Context, string, string, string) ([]repository.Document, error) {
	s.queries++
	return nil, s.queryErr
}

func (s *stubStore) NewBatch() repository.WriteBatch {
	b := &stubBatch{err: s.commitErr}
	s.batches = append(s.batches, b)
	return b
}

func (s *stubStore) Ping(context.Context) error { return nil }

type stubBatch struct {
	updates int
	commits int
	err     error
}

func (b *stubBatch) Update(repository.DocumentRef, map[string]any) { b.updates++ }

func (b *stubBatch) Len() int { return b.updates }

func (b *stubBatch) Commit(context.Context) error {
	b.commits++
	return b.err
}

// countingStore wraps a real store and counts batches handed out.
type countingStore struct {
	repository.DocumentStore
	batches   int
	commitErr error
}

func (c *countingStore) NewBatch() repository.WriteBatch {
	c.batches++
	if c.commitErr != nil {
		return &stubBatch{err: c.commitErr}
	}
	return c.DocumentStore.NewBatch()
}

type stubSender struct {
	id   string
	err  error
	sent []domain.PushMessage
}

func (s *stubSender) Send(_ context.Context, msg domain.PushMessage) (string, error) {
	s.sent = append(s.sent, msg)
	return s.id, s.err
}

func strPtr(s string) *string { return &s }
