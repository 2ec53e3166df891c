package middleware

import (
	"strings"

	"github.com/fathima-sithara/social-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// LocalsUserID is the context key the gate stores the verified subject under.
const LocalsUserID = "user_id"

// JWTAuth guards protected routes. It is a pure function of the bearer token
// and the signing secret; the user store is never consulted, so a revoked
// access token stays usable until its short expiry elapses.
func JWTAuth(tokens *utils.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization header"})
		}
		claims, err := tokens.Verify(parts[1], utils.KindAccess)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		c.Locals(LocalsUserID, claims.UserID)
		return c.Next()
	}
}

// UserID returns the subject id the gate attached, empty when unauthenticated.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalsUserID).(string); ok {
		return v
	}
	return ""
}
