package handlers

import (
	"errors"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the service error kinds to HTTP statuses. Anything
// unrecognized is a 500: those are storage or wiring failures, not caller
// mistakes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrProfileAlreadyExists),
		errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrNotApproved):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrNoSuchSession):
		return fiber.StatusGone
	case errors.Is(err, services.ErrCodeMismatch):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrVendorNotFound),
		errors.Is(err, repositories.ErrProductNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// actorFromCtx rebuilds the authenticated caller from the locals set by the
// auth middleware.
func actorFromCtx(c *fiber.Ctx) models.Actor {
	accountID, _ := c.Locals("user_id").(string)
	isAdmin, _ := c.Locals("is_admin").(bool)
	return models.Actor{
		AccountID: accountID,
		IsAdmin:   isAdmin,
	}
}
