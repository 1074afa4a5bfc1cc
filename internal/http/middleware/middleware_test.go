package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/test", func(c *fiber.Ctx) error {
		c.Locals(UserIDLocalKey, "user-1")
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["ts"])
	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "user-1", logData["user_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
}

func TestRequireAuth(t *testing.T) {
	secret := []byte("test-secret")

	newApp := func() *fiber.App {
		app := fiber.New()
		app.Use(RequireAuth(secret))
		app.Get("/me", func(c *fiber.Ctx) error {
			return c.SendString(UserID(c))
		})
		return app
	}

	signed := func(secret []byte, sub string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		s, err := token.SignedString(secret)
		require.NoError(t, err)
		return s
	}

	t.Run("valid token exposes the subject", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed(secret, "user-1"))

		resp, _ := newApp().Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, "user-1", buf.String())
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)

		resp, _ := newApp().Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed([]byte("other"), "user-1"))

		resp, _ := newApp().Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		s, err := token.SignedString(secret)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s)

		resp, _ := newApp().Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
