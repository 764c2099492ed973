package handlers

import (
	"errors"
	"log/slog"

	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service-layer error categories to HTTP statuses.
// Anything uncategorized is internal: logged for operators, reported
// generically to the caller.
func respondError(c *fiber.Ctx, err error) error {
	var badRequest *services.BadRequestError
	if errors.As(err, &badRequest) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: badRequest.Error(),
		})
	}

	var unauthorized *services.UnauthorizedError
	if errors.As(err, &unauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: unauthorized.Error(),
		})
	}

	slog.Error("internal error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func respondInvalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func respondValidation(c *fiber.Ctx, fields []dto.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Validation error", Errors: fields,
	})
}

func respondUnauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
