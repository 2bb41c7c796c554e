package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-push-service/internal/api/dto"
	"github.com/spec-kit/profile-push-service/internal/auth"
	"github.com/spec-kit/profile-push-service/internal/service"
	apperrors "github.com/spec-kit/profile-push-service/pkg/util/errorutil"
)

// ProfilesHandler exposes profile endpoints.
type ProfilesHandler struct {
	profiles *service.ProfileService
	tokens   *service.TokenService
	validate *validator.Validate
}

// NewProfilesHandler constructs handler.
func NewProfilesHandler(profiles *service.ProfileService, tokens *service.TokenService) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles, tokens: tokens, validate: validator.New()}
}

// Create handles POST /v1/profiles. The reply is always an envelope.
func (h *ProfilesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProfileRequest
	// an unreadable body counts as an empty profile
	_ = decodeBody(c, &req)

	env := h.profiles.CreateProfile(c.UserContext(), req.Profile())
	return sendEnvelope(c, env)
}

// UpdatePushToken handles PUT /v1/profiles/push-token for the caller.
func (h *ProfilesHandler) UpdatePushToken(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdatePushTokenRequest
	if err := decodeBody(c, &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("token required", map[string]any{"field": "token"})
	}

	if _, err := h.tokens.UpdatePushToken(c.UserContext(), principal.UID, *req.Token); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
