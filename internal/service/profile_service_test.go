package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/profile-push-service/internal/domain"
)

func completeProfile() domain.UserProfile {
	return domain.UserProfile{
		Name:      strPtr("Ana"),
		Email:     strPtr("ana@example.com"),
		Phone:     strPtr("+55 11 99999-0000"),
		PushToken: strPtr("T1"),
		UID:       strPtr("U1"),
	}
}

func TestCreateProfile_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		strip func(p *domain.UserProfile)
	}{
		{"name", func(p *domain.UserProfile) { p.Name = nil }},
		{"email", func(p *domain.UserProfile) { p.Email = nil }},
		{"phone", func(p *domain.UserProfile) { p.Phone = nil }},
		{"uid", func(p *domain.UserProfile) { p.UID = nil }},
		{"push token", func(p *domain.UserProfile) { p.PushToken = nil }},
		{"everything", func(p *domain.UserProfile) { *p = domain.UserProfile{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{insertID: "D1"}
			svc := NewProfileService(store, "users", zap.NewNop())
			profile := completeProfile()
			tt.strip(&profile)

			env := svc.CreateProfile(context.Background(), profile)

			assert.Equal(t, domain.StatusError, env.Status)
			assert.Equal(t, MsgProfileIncomplete, env.Message)
			assert.False(t, env.HasPayload())
			assert.Empty(t, store.inserts, "store must not be called")
		})
	}
}

func TestCreateProfile_EmptyStringsArePresent(t *testing.T) {
	store := &stubStore{insertID: "D1"}
	svc := NewProfileService(store, "users", zap.NewNop())
	profile := completeProfile()
	profile.Phone = strPtr("")

	env := svc.CreateProfile(context.Background(), profile)

	assert.Equal(t, domain.StatusSuccess, env.Status)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, "", store.inserts[0][domain.FieldPhone])
}

func TestCreateProfile_Inserted(t *testing.T) {
	store := &stubStore{insertID: "D1"}
	svc := NewProfileService(store, "users", zap.NewNop())

	env := svc.CreateProfile(context.Background(), completeProfile())

	assert.Equal(t, domain.StatusSuccess, env.Status)
	assert.Equal(t, MsgProfileInserted, env.Message)
	assert.Equal(t, domain.DocCreatedPayload{DocID: "D1"}, env.Payload)
	assert.JSONEq(t, `{"status":"SUCCESS","message":"User profile inserted","payload":{"docId":"D1"}}`, env.String())

	require.Len(t, store.inserts, 1)
	assert.Equal(t, []string{"users"}, store.insertedInto)
	assert.Equal(t, map[string]any{
		"name":      "Ana",
		"email":     "ana@example.com",
		"phone":     "+55 11 99999-0000",
		"pushToken": "T1",
		"uid":       "U1",
	}, store.inserts[0])
}

func TestCreateProfile_NoIdentifier(t *testing.T) {
	store := &stubStore{insertID: ""}
	svc := NewProfileService(store, "users", zap.NewNop())

	env := svc.CreateProfile(context.Background(), completeProfile())

	assert.Equal(t, domain.StatusError, env.Status)
	assert.Equal(t, MsgProfileNotInserted, env.Message)
	assert.Equal(t, domain.ErrorDetailPayload{ErrorDetail: "docId"}, env.Payload)
}

func TestCreateProfile_StoreFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	store := &stubStore{insertErr: errStoreDown}
	svc := NewProfileService(store, "users", zap.New(core))

	env := svc.CreateProfile(context.Background(), completeProfile())

	assert.Equal(t, domain.StatusError, env.Status)
	assert.Equal(t, MsgProfileInsertFailed, env.Message)
	assert.True(t, env.NullPayload)
	assert.Nil(t, env.Payload)
	assert.NotContains(t, env.String(), errStoreDown.Error())
	assert.Contains(t, env.String(), `"payload":null`)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "ana@example.com", entry.ContextMap()["email"])
	assert.Equal(t, errStoreDown.Error(), entry.ContextMap()["error"])
}
