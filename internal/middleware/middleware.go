package middleware

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/internal/api/presenters"
	"Recipe-Sharing/pkg/jwt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// TokenCookie holds the session token of a signed-in browser.
const TokenCookie = "token"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		WebAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalWebAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// WebAuthMiddleware guards browser pages. Anonymous visitors are sent to the
// login page and come back to the page they asked for afterwards.
func (m *middleware) WebAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !setWebUser(c, jwtService) {
			c.ClearCookie(TokenCookie)
			return c.Redirect("/login?return_url="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// OptionalWebAuthMiddleware fills in the user for public pages when the
// browser carries a valid session, and lets everyone through.
func (m *middleware) OptionalWebAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		setWebUser(c, jwtService)
		return c.Next()
	}
}

func setWebUser(c *fiber.Ctx, jwtService jwt.JWTService) bool {
	token := c.Cookies(TokenCookie)
	if token == "" {
		return false
	}

	userID, role, err := jwtService.GetUserIDByToken(token)
	if err != nil {
		return false
	}

	c.Locals("user_id", userID)
	c.Locals("role", role)
	return true
}
