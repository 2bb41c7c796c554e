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

func TestRelay_Sent(t *testing.T) {
	sender := &stubSender{id: "M1"}
	svc := NewMessageService(sender, zap.NewNop())

	env := svc.Relay(context.Background(), domain.RelayRequest{Token: strPtr("T1"), TextContent: strPtr("hello")})

	assert.Equal(t, domain.StatusSuccess, env.Status)
	assert.Equal(t, MsgRelaySent, env.Message)
	assert.Equal(t, domain.MessageSentPayload{MessageID: "M1"}, env.Payload)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, domain.PushMessage{Token: "T1", Data: map[string]string{"text": "hello"}}, sender.sent[0])
}

func TestRelay_Incomplete(t *testing.T) {
	tests := []struct {
		name string
		req  domain.RelayRequest
	}{
		{"missing text", domain.RelayRequest{Token: strPtr("T1")}},
		{"missing token", domain.RelayRequest{TextContent: strPtr("hello")}},
		{"missing both", domain.RelayRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &stubSender{id: "M1"}
			svc := NewMessageService(sender, zap.NewNop())

			env := svc.Relay(context.Background(), tt.req)

			assert.Equal(t, domain.StatusError, env.Status)
			assert.Equal(t, MsgRelayIncomplete, env.Message)
			assert.False(t, env.HasPayload())
			assert.Empty(t, sender.sent, "sender must not be called")
		})
	}
}

func TestRelay_SendFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	sender := &stubSender{err: errStoreDown}
	svc := NewMessageService(sender, zap.New(core))

	env := svc.Relay(context.Background(), domain.RelayRequest{Token: strPtr("T1"), TextContent: strPtr("hello")})

	assert.Equal(t, domain.StatusError, env.Status)
	assert.Equal(t, MsgRelayFailed, env.Message)
	assert.True(t, env.NullPayload)
	assert.NotContains(t, env.String(), errStoreDown.Error())
	assert.Equal(t, 1, logs.Len())
}
