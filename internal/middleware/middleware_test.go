package middleware

import (
	"Recipe-Sharing/pkg/jwt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/private", handler, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		return c.SendString(userID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("middleware-secret")
	app := newApp(NewMiddleware().AuthMiddleware(jwtService))

	token, err := jwtService.GenerateTokenUser("user-1", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestWebAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("middleware-secret")
	app := newApp(NewMiddleware().WebAuthMiddleware(jwtService))

	req := httptest.NewRequest(http.MethodGet, "/private?page=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?return_url=%2Fprivate%3Fpage%3D2", resp.Header.Get("Location"))

	token, err := jwtService.GenerateTokenUser("user-2", "user")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// a mail verification token is not a session
	verify, err := jwtService.GenerateTokenVerifyEmail("user-2")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: verify})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestOptionalWebAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("middleware-secret")
	app := newApp(NewMiddleware().OptionalWebAuthMiddleware(jwtService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
