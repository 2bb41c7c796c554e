package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/profile-push-service/pkg/util/errorutil"
)

func newProtectedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/me", NewAuthMiddleware(tm).Handle, RequireIdentity(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.UID)
	})
	app.Get("/open", RequireIdentity(), func(c *fiber.Ctx) error { return nil })
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	app := newProtectedApp(tm)
	token, _, err := tm.GenerateToken("U1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid bearer", "/me", "Bearer " + token, http.StatusOK, "U1"},
		{"lowercase scheme", "/me", "bearer " + token, http.StatusOK, "U1"},
		{"missing header", "/me", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", "/me", "Bearer abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"no middleware", "/open", "", http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}
