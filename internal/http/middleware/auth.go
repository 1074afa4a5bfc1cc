package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDLocalKey stores the authenticated user's id in Fiber's context locals.
const UserIDLocalKey = "user_id"

// RequireAuth verifies the Bearer token on each request and stores the token
// subject in locals under UserIDLocalKey. Tokens must be HS256-signed with
// the given secret; anything else is rejected with 401.
func RequireAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims := jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || claims.Subject == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(UserIDLocalKey, claims.Subject)
		return c.Next()
	}
}

// UserID returns the authenticated user's id set by RequireAuth, or "".
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(UserIDLocalKey).(string)
	return uid
}
