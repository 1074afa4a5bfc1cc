package handler

import (
	"github.com/gofiber/fiber/v2"

	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/service"
)

type purchaseRequest struct {
	PlanID string `json:"plan_id"`
}

// ListPlans returns the purchasable plans. No authentication required.
func ListPlans() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"plans": service.Plans})
	}
}

// PurchasePlan applies a plan purchase to the authenticated user's balance.
func PurchasePlan(billingSvc service.BillingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req purchaseRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := billingSvc.Purchase(c.UserContext(), middleware.UserID(c), req.PlanID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
