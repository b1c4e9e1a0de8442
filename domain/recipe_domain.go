package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessSearchRecipe    = "success search recipe"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedSearchRecipe    = "failed to search recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrRecipeIDMismatch         = errors.New("recipe id does not match the submitted form")
	ErrInvalidImageFormat       = errors.New("invalid image format")
)

type (
	// RecipeRequest is the single payload shape for both creating and editing
	// a recipe. ID is only meaningful on edit.
	RecipeRequest struct {
		ID           uint              `json:"id" form:"id"`
		Title        string            `json:"title" form:"title" validate:"required,max=100"`
		Description  string            `json:"description" form:"description" validate:"required,max=500"`
		ImageURL     string            `json:"image_url" form:"image_url" validate:"omitempty,url"`
		Ingredients  []IngredientItem  `json:"ingredients" form:"ingredients" validate:"dive"`
		Instructions []InstructionItem `json:"instructions" form:"instructions" validate:"dive"`

		Image *multipart.FileHeader `json:"-" form:"-"`
	}

	IngredientItem struct {
		ID        uint   `json:"id" form:"id"`
		Name      string `json:"name" form:"name" validate:"required_unless=IsDeleted true"`
		Quantity  string `json:"quantity" form:"quantity"`
		IsDeleted bool   `json:"is_deleted" form:"is_deleted"`
	}

	InstructionItem struct {
		ID        uint   `json:"id" form:"id"`
		Step      string `json:"step" form:"step" validate:"required_unless=IsDeleted true"`
		IsDeleted bool   `json:"is_deleted" form:"is_deleted"`
	}

	RecipeFilter struct {
		UserID string
		PaginationRequest
	}

	RecipeSummary struct {
		ID          uint      `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		ImageURL    string    `json:"image_url,omitempty"`
		UserID      string    `json:"user_id"`
		CreatedAt   time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		RecipeSummary
		Ingredients  []Ingredient  `json:"ingredients"`
		Instructions []Instruction `json:"instructions"`
		IsOwner      bool          `json:"is_owner"`
	}

	Ingredient struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity,omitempty"`
	}

	Instruction struct {
		ID          uint   `json:"id"`
		StepNumber  int    `json:"step_number"`
		Description string `json:"description"`
	}

	RecipeListResponse struct {
		Recipes    []RecipeSummary    `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}
)
