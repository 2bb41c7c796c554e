package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-push-service/internal/api/dto"
	"github.com/spec-kit/profile-push-service/internal/service"
)

// MessagesHandler exposes the push relay endpoint.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messages *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// Relay handles POST /v1/messages.
func (h *MessagesHandler) Relay(c *fiber.Ctx) error {
	var req dto.RelayMessageRequest
	_ = decodeBody(c, &req)

	env := h.messages.Relay(c.UserContext(), req.RelayRequest())
	return sendEnvelope(c, env)
}
