package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/humanizer"
	"humanizerapi/internal/service"
)

type humanizeRequest struct {
	Text        string `json:"text"`
	Readability string `json:"readability"`
	Purpose     string `json:"purpose"`
	Strength    string `json:"strength"`
	Model       string `json:"model"`
}

// Humanize runs the full humanize cycle for the authenticated user and
// returns the output with the new balance. A reconciliation failure still
// returns the output: the user gets what they asked for and the response
// marks the call as uncharged.
func Humanize(humanizeSvc service.HumanizeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req humanizeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		opts := humanizer.SubmitRequest{
			Readability: req.Readability,
			Purpose:     req.Purpose,
			Strength:    req.Strength,
			Model:       req.Model,
		}
		res, err := humanizeSvc.Humanize(c.UserContext(), middleware.UserID(c), req.Text, opts)
		if err != nil {
			if errors.Is(err, service.ErrReconciliation) && res != nil {
				return c.JSON(res)
			}
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
