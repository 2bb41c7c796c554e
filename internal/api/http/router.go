package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-push-service/internal/api/http/handlers"
	"github.com/spec-kit/profile-push-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Profiles       *handlers.ProfilesHandler
	Messages       *handlers.MessagesHandler
	AuthMiddleware *auth.AuthMiddleware
	// MessageLimiter is optional; nil disables rate limiting.
	MessageLimiter RateLimiter
	Logger         *zap.Logger
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	v1 := app.Group("/v1")
	v1.Post("/profiles", cfg.Profiles.Create)

	v1.Put("/profiles/push-token",
		cfg.AuthMiddleware.Handle, auth.RequireIdentity(), cfg.Profiles.UpdatePushToken)

	relay := []fiber.Handler{}
	if cfg.MessageLimiter != nil {
		relay = append(relay, rateLimitMiddleware(cfg.MessageLimiter, cfg.Logger))
	}
	relay = append(relay, cfg.Messages.Relay)
	v1.Post("/messages", relay...)
}
