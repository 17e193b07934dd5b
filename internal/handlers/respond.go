package handlers

import (
	"errors"
	"fmt"

	"greenleaf/internal/repositories"
	"greenleaf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope: successful responses carry
// {"success":true,...}, failures {"success":false,"error":...}.

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// failFromError maps sentinel errors onto HTTP statuses and answers with
// the shared envelope. Unknown errors become a generic 500 so internal
// details never leak to clients.
func failFromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, repositories.ErrOutOfStock):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, "cart is empty")
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidQuantity):
		return fail(c, fiber.StatusBadRequest, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "internal error")
	}
}

// failValidation converts validator errors into a 400 with per-field
// messages.
func failValidation(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fail(c, fiber.StatusBadRequest, "validation failed")
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "validation failed",
		"fields":  fields,
	})
}

// currentUserID pulls the authenticated user's ID out of the request
// context placed there by the session guard.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

func isAdmin(c *fiber.Ctx) bool {
	admin, ok := c.Locals("admin").(bool)
	return ok && admin
}
