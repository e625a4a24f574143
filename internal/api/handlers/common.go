package handlers

import (
	"errors"
	"recipehub/domain"

	"github.com/gofiber/fiber/v2"
)

// optionalUserID returns the authenticated user id when the optional
// auth middleware resolved one, or "" for anonymous requests.
func optionalUserID(c *fiber.Ctx) string {
	if userID, ok := c.Locals("user_id").(string); ok {
		return userID
	}
	return ""
}

// statusForError picks the HTTP status for a service error. Lookups of
// missing path resources map to 404, foreign mutations to 403 and
// everything else stays a recoverable 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotRecipeAuthor):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
