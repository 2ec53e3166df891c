package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fathima-sithara/social-service/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatedApp(t *testing.T, tokens *utils.TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", JWTAuth(tokens), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	return app
}

func TestJWTAuthAcceptsValidAccessToken(t *testing.T) {
	tokens, err := utils.NewTokenManager("test-secret", 15, 7)
	require.NoError(t, err)
	app := newGatedApp(t, tokens)

	pair, err := tokens.GeneratePair("user-123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTAuthRejectsBadRequests(t *testing.T) {
	tokens, err := utils.NewTokenManager("test-secret", 15, 7)
	require.NoError(t, err)
	other, err := utils.NewTokenManager("other-secret", 15, 7)
	require.NoError(t, err)
	app := newGatedApp(t, tokens)

	pair, err := tokens.GeneratePair("user-123")
	require.NoError(t, err)
	foreign, err := other.GeneratePair("user-123")
	require.NoError(t, err)
	expired, err := utils.NewTokenManager("test-secret", -1, 7)
	require.NoError(t, err)
	expiredPair, err := expired.GeneratePair("user-123")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"no token", "Bearer"},
		{"malformed token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + foreign.AccessToken},
		{"refresh token at access gate", "Bearer " + pair.RefreshToken},
		{"expired token", "Bearer " + expiredPair.AccessToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestUserIDEmptyWhenUnauthenticated(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		assert.Empty(t, UserID(c))
		return c.SendStatus(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
