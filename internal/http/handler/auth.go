package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/service"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and returns a session token. New accounts start
// with the free-tier credit grant.
func Signup(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.Email == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "email and password are required")
		}

		res, err := authSvc.SignUp(c.UserContext(), req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "email and password are required")
			}
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Login verifies credentials and returns a session token.
func Login(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := authSvc.SignIn(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Me returns the authenticated user's profile, including the current credit
// balance.
func Me(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := authSvc.Me(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}
