package handler

import (
	"errors"

	"go-jossydiva-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Response envelope shared by every endpoint:
// {"success": bool, "data": T, "message"?: string}.

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(201).JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// failFromErr maps service errors to HTTP codes: unknown ids are 404,
// everything the caller can correct is 400.
func failFromErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrMediaNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fail(c, 404, err.Error())
	default:
		return fail(c, 400, err.Error())
	}
}

// getUserID extracts the authenticated user's id set by RequireAuth.
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}
