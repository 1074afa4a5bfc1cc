package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/model"
	"humanizerapi/internal/service"
)

type saveProjectRequest struct {
	Title         string `json:"title"`
	OriginalText  string `json:"original_text"`
	HumanizedText string `json:"humanized_text"`
}

type saveProjectResponse struct {
	Project *model.Project `json:"project"`
	Balance int            `json:"balance"`
}

// ListProjects returns the authenticated user's projects with limit & offset.
func ListProjects(projectSvc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := projectSvc.List(c.UserContext(), middleware.UserID(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// SaveProject persists an original/humanized pair, charging the save cost.
func SaveProject(projectSvc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		p, balance, err := projectSvc.Save(c.UserContext(), middleware.UserID(c), req.Title, req.OriginalText, req.HumanizedText)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(saveProjectResponse{Project: p, Balance: balance})
	}
}

// DeleteProject removes a project owned by the authenticated user.
func DeleteProject(projectSvc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := projectSvc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
