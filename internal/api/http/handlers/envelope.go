package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-push-service/internal/api/dto"
	"github.com/spec-kit/profile-push-service/internal/domain"
)

// decodeBody reads a JSON body, accepting the callable {"data": ...} wrapper.
func decodeBody(c *fiber.Ctx, dst any) error {
	unmarshal := c.App().Config().JSONDecoder
	return unmarshal(dto.Unwrap(c.Body(), unmarshal), dst)
}

// sendEnvelope writes the serialized envelope with status 200.
func sendEnvelope(c *fiber.Ctx, env domain.Envelope) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(env.String())
}
