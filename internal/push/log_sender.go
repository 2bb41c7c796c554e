package push

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-push-service/internal/domain"
)

// LogSender stands in for a provider in local runs: it logs the message and
// returns a generated id.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender builds the sender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg domain.PushMessage) (string, error) {
	id := "local-" + uuid.NewString()
	s.logger.Debug("push message",
		zap.String("message_id", id),
		zap.String("token", msg.Token),
		zap.Int("data_keys", len(msg.Data)))
	return id, nil
}
