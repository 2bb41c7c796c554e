package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-push-service/internal/domain"
	"github.com/spec-kit/profile-push-service/internal/push"
)

// Envelope messages for relay-message.
const (
	MsgRelayIncomplete = "Data not provided or incomplete"
	MsgRelaySent       = "Message sent"
	MsgRelayFailed     = "Error sending message — check logs"
)

// MessageService relays text messages to a device token.
type MessageService struct {
	sender   push.Sender
	logger   *zap.Logger
	validate *validator.Validate
}

// NewMessageService builds the service.
func NewMessageService(sender push.Sender, logger *zap.Logger) *MessageService {
	return &MessageService{sender: sender, logger: logger, validate: validator.New()}
}

// Relay sends req as a data message. Send failures are logged and reported
// through the envelope.
func (s *MessageService) Relay(ctx context.Context, req domain.RelayRequest) domain.Envelope {
	env := domain.NewErrorEnvelope(MsgRelayIncomplete)

	if err := s.validate.Struct(req); err != nil {
		return *env
	}

	messageID, err := s.sender.Send(ctx, req.Message())
	if err != nil {
		s.logger.Error("error sending message", zap.Error(err))
		env.FailNull(MsgRelayFailed)
		return *env
	}

	env.Succeed(MsgRelaySent, domain.MessageSentPayload{MessageID: messageID})
	return *env
}
