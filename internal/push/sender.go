// Package push delivers data messages to device tokens.
package push

import (
	"context"

	"github.com/spec-kit/profile-push-service/internal/domain"
)

// Sender sends one message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg domain.PushMessage) (string, error)
}
