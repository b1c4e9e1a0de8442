package routes

import (
	"Recipe-Sharing/internal/api/handlers"
	"Recipe-Sharing/internal/middleware"
	"Recipe-Sharing/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	RecipeWebHandler  handlers.RecipeWebHandler
	AccountWebHandler handlers.AccountWebHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use("/api", c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.GuestRoute()
	c.Account()
	c.Web()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/search", c.RecipeHandler.SearchRecipe)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

// Account wires the identity pages, which are reachable without a session.
func (c *Config) Account() {
	optional := c.Middleware.OptionalWebAuthMiddleware(c.JWTService)

	c.App.Get("/login", optional, c.AccountWebHandler.LoginForm)
	c.App.Post("/login", optional, c.AccountWebHandler.Login)
	c.App.Get("/register", optional, c.AccountWebHandler.RegisterForm)
	c.App.Post("/register", optional, c.AccountWebHandler.Register)
	c.App.Post("/logout", c.AccountWebHandler.Logout)
	c.App.Get("/verify", optional, c.AccountWebHandler.Verify)
}

func (c *Config) Web() {
	auth := c.Middleware.WebAuthMiddleware(c.JWTService)

	c.App.Get("/", auth, c.RecipeWebHandler.Index)
	c.App.Get("/profile", auth, c.AccountWebHandler.Profile)
	c.App.Post("/profile", auth, c.AccountWebHandler.UpdateProfile)

	recipes := c.App.Group("/recipes", auth)
	recipes.Get("/mine", c.RecipeWebHandler.MyRecipes)
	recipes.Get("/search", c.RecipeWebHandler.Search)
	recipes.Get("/new", c.RecipeWebHandler.NewForm)
	recipes.Post("", c.RecipeWebHandler.Create)
	recipes.Get("/:id", c.RecipeWebHandler.Detail)
	recipes.Get("/:id/edit", c.RecipeWebHandler.EditForm)
	recipes.Post("/:id/edit", c.RecipeWebHandler.Edit)
	recipes.Get("/:id/delete", c.RecipeWebHandler.DeleteConfirm)
	recipes.Post("/:id/delete", c.RecipeWebHandler.Delete)
}
