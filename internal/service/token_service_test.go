package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-push-service/internal/repository"
	apperrors "github.com/spec-kit/profile-push-service/pkg/util/errorutil"
)

func seedProfiles(t *testing.T, store repository.DocumentStore, uids ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(uids))
	for _, uid := range uids {
		id, err := store.Insert(context.Background(), "users", map[string]any{"uid": uid, "pushToken": "old"})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestUpdatePushToken_UpdatesEveryMatchInOneCommit(t *testing.T) {
	mem := repository.NewMemoryDocumentStore()
	ids := seedProfiles(t, mem, "U1", "U1", "U2")
	store := &countingStore{DocumentStore: mem}
	svc := NewTokenService(store, "users", zap.NewNop())

	n, err := svc.UpdatePushToken(context.Background(), "U1", "new-token")
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, 1, store.batches)
	assert.Equal(t, 1, mem.Commits())
	for _, id := range ids[:2] {
		doc, _ := mem.Get("users", id)
		assert.Equal(t, "new-token", doc.Fields["pushToken"])
	}
	other, _ := mem.Get("users", ids[2])
	assert.Equal(t, "old", other.Fields["pushToken"])
}

func TestUpdatePushToken_NoMatchesNoWrite(t *testing.T) {
	mem := repository.NewMemoryDocumentStore()
	seedProfiles(t, mem, "U2")
	store := &countingStore{DocumentStore: mem}
	svc := NewTokenService(store, "users", zap.NewNop())

	n, err := svc.UpdatePushToken(context.Background(), "U1", "new-token")
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Zero(t, store.batches)
	assert.Zero(t, mem.Commits())
}

func TestUpdatePushToken_FreshBatchPerCall(t *testing.T) {
	mem := repository.NewMemoryDocumentStore()
	seedProfiles(t, mem, "U1")
	store := &countingStore{DocumentStore: mem}
	svc := NewTokenService(store, "users", zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.UpdatePushToken(context.Background(), "U1", "t")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.batches)
	assert.Equal(t, 3, mem.Commits())
}

func TestUpdatePushToken_ErrorsPropagate(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		svc := NewTokenService(&stubStore{queryErr: errStoreDown}, "users", zap.NewNop())
		_, err := svc.UpdatePushToken(context.Background(), "U1", "t")
		assert.ErrorIs(t, err, errStoreDown)
	})

	t.Run("commit", func(t *testing.T) {
		mem := repository.NewMemoryDocumentStore()
		seedProfiles(t, mem, "U1")
		store := &countingStore{DocumentStore: mem, commitErr: errStoreDown}
		svc := NewTokenService(store, "users", zap.NewNop())

		_, err := svc.UpdatePushToken(context.Background(), "U1", "t")
		assert.ErrorIs(t, err, errStoreDown)
	})

	t.Run("missing identity", func(t *testing.T) {
		store := &stubStore{}
		svc := NewTokenService(store, "users", zap.NewNop())
		_, err := svc.UpdatePushToken(context.Background(), "", "t")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
		assert.Zero(t, store.queries)
	})
}
