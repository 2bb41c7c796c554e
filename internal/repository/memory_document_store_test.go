package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/profile-push-service/pkg/util/errorutil"
)

func TestMemoryDocumentStore_InsertAndQuery(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()

	id1, err := store.Insert(ctx, "users", map[string]any{"uid": "U1", "name": "Ana"})
	require.NoError(t, err)
	_, err = store.Insert(ctx, "users", map[string]any{"uid": "U2"})
	require.NoError(t, err)
	id3, err := store.Insert(ctx, "users", map[string]any{"uid": "U1", "name": "Ana (tablet)"})
	require.NoError(t, err)

	docs, err := store.QueryByField(ctx, "users", "uid", "U1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, id1, docs[0].ID)
	assert.Equal(t, id3, docs[1].ID)

	none, err := store.QueryByField(ctx, "other", "uid", "U1")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryDocumentStore_InsertCopiesFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	fields := map[string]any{"uid": "U1"}

	id, err := store.Insert(ctx, "users", fields)
	require.NoError(t, err)
	fields["uid"] = "changed"

	doc, ok := store.Get("users", id)
	require.True(t, ok)
	assert.Equal(t, "U1", doc.Fields["uid"])
}

func TestMemoryBatch_CommitAppliesAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	a, _ := store.Insert(ctx, "users", map[string]any{"uid": "U1", "pushToken": "old"})
	b, _ := store.Insert(ctx, "users", map[string]any{"uid": "U1", "pushToken": "old"})

	batch := store.NewBatch()
	batch.Update(DocumentRef{Collection: "users", ID: a}, map[string]any{"pushToken": "new"})
	batch.Update(DocumentRef{Collection: "users", ID: b}, map[string]any{"pushToken": "new"})
	assert.Equal(t, 2, batch.Len())
	require.NoError(t, batch.Commit(ctx))

	for _, id := range []string{a, b} {
		doc, _ := store.Get("users", id)
		assert.Equal(t, "new", doc.Fields["pushToken"])
		assert.Equal(t, "U1", doc.Fields["uid"])
	}
	assert.Equal(t, 1, store.Commits())
	assert.Zero(t, batch.Len())
}

func TestMemoryBatch_CommitIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	a, _ := store.Insert(ctx, "users", map[string]any{"pushToken": "old"})

	batch := store.NewBatch()
	batch.Update(DocumentRef{Collection: "users", ID: a}, map[string]any{"pushToken": "new"})
	batch.Update(DocumentRef{Collection: "users", ID: "missing"}, map[string]any{"pushToken": "new"})

	err := batch.Commit(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	doc, _ := store.Get("users", a)
	assert.Equal(t, "old", doc.Fields["pushToken"])
	assert.Zero(t, store.Commits())
}

func TestPendingWrites_ByCollectionKeepsOrder(t *testing.T) {
	var p pendingWrites
	p.Update(DocumentRef{Collection: "b", ID: "1"}, nil)
	p.Update(DocumentRef{Collection: "a", ID: "2"}, nil)
	p.Update(DocumentRef{Collection: "b", ID: "3"}, nil)

	order, grouped := p.byCollection()
	assert.Equal(t, []string{"b", "a"}, order)
	require.Len(t, grouped["b"], 2)
	assert.Equal(t, "3", grouped["b"][1].ref.ID)
}
