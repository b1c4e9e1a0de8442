package handlers_test

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/internal/api/handlers"
	"Recipe-Sharing/internal/api/routes"
	"Recipe-Sharing/internal/middleware"
	"Recipe-Sharing/internal/testutil"
	"Recipe-Sharing/internal/utils"
	"Recipe-Sharing/pkg/jwt"
	"Recipe-Sharing/pkg/recipe"
	"Recipe-Sharing/pkg/user"
	"Recipe-Sharing/web"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStorage struct {
	objects map[string]bool
}

func (m *memoryStorage) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName
	m.objects[key] = true
	return key, nil
}

func (m *memoryStorage) DeleteFile(objectKey string) error {
	delete(m.objects, objectKey)
	return nil
}

func (m *memoryStorage) GetPublicLinkKey(objectKey string) string {
	return "/images/" + objectKey
}

func (m *memoryStorage) GetObjectKeyFromLink(link string) string {
	key, ok := strings.CutPrefix(link, "/images/")
	if !ok {
		return ""
	}
	return key
}

type testApp struct {
	app     *fiber.App
	jwt     jwt.JWTService
	users   user.UserService
	recipes recipe.RecipeService
	storage *memoryStorage
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return buildTestApp(t, false)
}

func buildTestApp(t *testing.T, requireConfirmed bool) *testApp {
	t.Helper()

	utils.InitValidator()
	db := testutil.NewTestDB(t)
	log := zap.NewNop()
	jwtService := jwt.NewJWTServiceWithSecret("handler-test-secret")
	store := &memoryStorage{objects: map[string]bool{}}

	userService := user.NewUserService(user.NewUserRepository(db), jwtService, nil, user.Options{
		AppURL:                  "http://localhost",
		RequireConfirmedAccount: requireConfirmed,
	}, log)
	recipeService := recipe.NewRecipeService(recipe.NewRecipeRepository(db), store, log)

	app := fiber.New(fiber.Config{Views: web.NewEngine()})
	cfg := routes.Config{
		App:               app,
		UserHandler:       handlers.NewUserHandler(userService, utils.Validate),
		RecipeHandler:     handlers.NewRecipeHandler(recipeService, utils.Validate),
		RecipeWebHandler:  handlers.NewRecipeWebHandler(recipeService, utils.Validate, log),
		AccountWebHandler: handlers.NewAccountWebHandler(userService, utils.Validate, log),
		Middleware:        middleware.NewMiddleware(),
		JWTService:        jwtService,
	}
	cfg.Setup()

	return &testApp{
		app:     app,
		jwt:     jwtService,
		users:   userService,
		recipes: recipeService,
		storage: store,
	}
}

// signUp registers a fresh user and returns its id and a session token.
func (a *testApp) signUp(t *testing.T) (string, string) {
	t.Helper()

	password := gofakeit.Password(true, true, true, false, false, 12)
	email := gofakeit.Email()
	res, err := a.users.Register(context.Background(), domain.RegisterRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)

	token, err := a.jwt.GenerateTokenUser(res.ID, domain.RoleUser)
	require.NoError(t, err)
	return res.ID, token
}

func (a *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func jsonRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func formRequest(method, target, token string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}
	return req
}

func pageRequest(target, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}
	return req
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, resp *http.Response, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
