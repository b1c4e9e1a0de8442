package config

import (
	"Recipe-Sharing/internal/api/handlers"
	"Recipe-Sharing/internal/api/presenters"
	"Recipe-Sharing/internal/api/routes"
	"Recipe-Sharing/internal/middleware"
	"Recipe-Sharing/internal/utils"
	"Recipe-Sharing/internal/utils/mailing"
	"Recipe-Sharing/internal/utils/storage"
	"Recipe-Sharing/pkg/jwt"
	"Recipe-Sharing/pkg/recipe"
	"Recipe-Sharing/pkg/user"
	"Recipe-Sharing/web"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewApp builds the fiber application with every handler wired to db. The
// returned closer releases the access log file.
func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, io.Closer, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		Views:        web.NewEngine(),
		ErrorHandler: errorHandler(log),
		BodyLimit:    10 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening access log: %w", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/images")
		},
	}))

	// browser forms carry the token in a hidden _csrf field; the JSON API
	// authenticates with bearer tokens instead of cookies
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:_csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		Expiration:     1 * time.Hour,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Debug("csrf check failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusForbidden).SendString("The form has expired. Go back, reload the page and try again.")
		},
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api") || strings.HasPrefix(c.Path(), "/images")
		},
	}))

	// utils
	imageStorage, err := storage.NewImageStorage()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	if utils.GetConfig("STORAGE_DRIVER") != "s3" {
		app.Static("/images", utils.GetConfig("LOCAL_STORAGE_DIR"))
	}

	var mailer mailing.Mailer
	if utils.GetConfig("SMTP_HOST") != "" {
		mailer = mailing.NewMailer()
	} else {
		log.Warn("SMTP_HOST not set, verification emails are disabled")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService, err := jwt.NewJWTService()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	userService := user.NewUserService(userRepository, jwtService, mailer, user.Options{
		AppURL:                  utils.GetConfig("APP_URL"),
		RequireConfirmedAccount: utils.GetAppConfig().RequireConfirmedAccount,
	}, log)
	recipeService := recipe.NewRecipeService(recipeRepository, imageStorage, log)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	recipeWebHandler := handlers.NewRecipeWebHandler(recipeService, validator, log)
	accountWebHandler := handlers.NewAccountWebHandler(userService, validator, log)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		RecipeWebHandler:  recipeWebHandler,
		AccountWebHandler: accountWebHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, file, nil
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return presenters.ErrorResponse(c, code, fiberutils.StatusMessage(code), err)
	}
}
