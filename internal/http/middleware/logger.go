package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each request as one JSON object per line on stdout. Fields:
// ts, request_id, user_id (when authenticated), method, path, status and
// latency in milliseconds.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.UTC)
}

// LoggerWithWriter is Logger with an explicit sink and timestamp location,
// used by tests.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Read fields after the handler so the final status is captured.
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"ts":         time.Now().In(loc).Format(time.RFC3339Nano),
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    float64(time.Since(start).Microseconds()) / 1000.0,
		}
		if uid, ok := c.Locals(UserIDLocalKey).(string); ok && uid != "" {
			entry["user_id"] = uid
		}
		_ = enc.Encode(entry)

		return err
	}
}
