package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/humanizer"
	"humanizerapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INSUFFICIENT_CREDITS", "NOT_FOUND")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service and upstream sentinel errors to their HTTP
// representation. Unknown errors come back as a plain 500 so internals never
// leak to the client.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTextTooShort):
		return writeError(c, fiber.StatusUnprocessableEntity, "TEXT_TOO_SHORT", "text must be at least 50 characters")
	case errors.Is(err, service.ErrTextRequired):
		return writeError(c, fiber.StatusBadRequest, "TEXT_REQUIRED", "original and humanized text are required")
	case errors.Is(err, service.ErrInsufficientCredits):
		return writeError(c, fiber.StatusPaymentRequired, "INSUFFICIENT_CREDITS", "not enough credits")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email is already registered")
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the 50MB limit")
	case errors.Is(err, service.ErrFileType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "file type is not allowed")
	case errors.Is(err, service.ErrUnknownPlan):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_PLAN", "unknown plan id")
	case errors.Is(err, service.ErrStorageInconsistent):
		return writeError(c, fiber.StatusInternalServerError, "STORAGE_INCONSISTENT", "storage state is inconsistent, contact support")
	case errors.Is(err, humanizer.ErrJobFailed):
		return writeError(c, fiber.StatusBadGateway, "JOB_FAILED", "humanization job failed")
	case errors.Is(err, humanizer.ErrTimedOut):
		return writeError(c, fiber.StatusGatewayTimeout, "TIMED_OUT", "humanization job did not finish in time")
	case errors.Is(err, humanizer.ErrUpstream):
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "humanization service unavailable")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
