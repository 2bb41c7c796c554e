package repository

import (
	"context"

	apperrors "github.com/spec-kit/profile-push-service/pkg/util/errorutil"
)

// ErrDocumentNotFound is returned when a batch targets a missing document.
var ErrDocumentNotFound = apperrors.ErrNotFound

// Document is a stored record and its generated identifier.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentRef addresses a single document.
type DocumentRef struct {
	Collection string
	ID         string
}

// DocumentStore is the document database used by the handlers.
type DocumentStore interface {
	// Insert creates a document with a generated id and returns that id.
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
	// QueryByField returns every document whose field equals value.
	QueryByField(ctx context.Context, collection, field, value string) ([]Document, error)
	// NewBatch starts an empty set of pending writes owned by the caller.
	NewBatch() WriteBatch
	Ping(ctx context.Context) error
}

// WriteBatch accumulates field updates and applies them on Commit.
type WriteBatch interface {
	Update(ref DocumentRef, fields map[string]any)
	Len() int
	Commit(ctx context.Context) error
}

type pendingUpdate struct {
	ref    DocumentRef
	fields map[string]any
}

// pendingWrites is shared bookkeeping for batch implementations.
type pendingWrites struct {
	updates []pendingUpdate
}

func (p *pendingWrites) Update(ref DocumentRef, fields map[string]any) {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	p.updates = append(p.updates, pendingUpdate{ref: ref, fields: copied})
}

func (p *pendingWrites) Len() int {
	return len(p.updates)
}

// byCollection groups updates preserving their order within each collection.
func (p *pendingWrites) byCollection() (order []string, grouped map[string][]pendingUpdate) {
	grouped = make(map[string][]pendingUpdate)
	for _, u := range p.updates {
		if _, seen := grouped[u.ref.Collection]; !seen {
			order = append(order, u.ref.Collection)
		}
		grouped[u.ref.Collection] = append(grouped[u.ref.Collection], u)
	}
	return order, grouped
}
