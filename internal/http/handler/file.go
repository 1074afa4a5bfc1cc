package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/model"
	"humanizerapi/internal/service"
)

type uploadFileResponse struct {
	File    *model.File `json:"file"`
	Balance int         `json:"balance"`
}

// ListFiles returns the authenticated user's files with limit & offset.
func ListFiles(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := fileSvc.List(c.UserContext(), middleware.UserID(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadFile stores an uploaded file (multipart/form-data, field name: file)
// and charges the upload cost.
func UploadFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		stored, balance, err := fileSvc.Upload(c.UserContext(), middleware.UserID(c), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(uploadFileResponse{File: stored, Balance: balance})
	}
}

// FileDownloadURL returns a time-limited download URL for a stored file.
func FileDownloadURL(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := fileSvc.DownloadURL(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteFile removes a stored file and its metadata record.
func DeleteFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := fileSvc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
