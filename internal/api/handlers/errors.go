package handlers

import (
	"Recipe-Sharing/domain"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps service errors onto HTTP status codes. Anything not
// listed is treated as an internal failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeIDMismatch):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountNotVerified),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrInvalidImageFormat),
		errors.Is(err, domain.ErrParseID),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func parseRecipeID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// parseRecipeRequest reads a recipe payload from JSON, urlencoded or
// multipart bodies. Bracketed form keys such as ingredients[0][name] are
// understood by fiber's body parser.
func parseRecipeRequest(c *fiber.Ctx) (domain.RecipeRequest, error) {
	var req domain.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.RecipeRequest{}, err
	}

	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		req.Image = file
	}
	return req, nil
}
