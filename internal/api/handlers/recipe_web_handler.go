package handlers

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/pkg/recipe"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type (
	RecipeWebHandler interface {
		Index(c *fiber.Ctx) error
		MyRecipes(c *fiber.Ctx) error
		Search(c *fiber.Ctx) error
		Detail(c *fiber.Ctx) error
		NewForm(c *fiber.Ctx) error
		Create(c *fiber.Ctx) error
		EditForm(c *fiber.Ctx) error
		Edit(c *fiber.Ctx) error
		DeleteConfirm(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
	}

	recipeWebHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
		logger        *zap.Logger
	}
)

func NewRecipeWebHandler(recipeService recipe.RecipeService, validator *validator.Validate, logger *zap.Logger) RecipeWebHandler {
	return &recipeWebHandler{
		recipeService: recipeService,
		validator:     validator,
		logger:        logger.Named("web"),
	}
}

func (h *recipeWebHandler) list(c *fiber.Ctx, heading string, ownerID string) error {
	var filter domain.RecipeFilter
	if err := c.QueryParser(&filter.PaginationRequest); err != nil {
		return renderError(c, domain.ErrParseID)
	}
	filter.UserID = ownerID

	res, err := h.recipeService.ListRecipes(c.Context(), filter)
	if err != nil {
		h.logger.Error("list recipes", zap.Error(err))
		return renderError(c, err)
	}

	return render(c, fiber.StatusOK, "recipes/index", fiber.Map{
		"Title":      heading,
		"Recipes":    res.Recipes,
		"Pagination": res.Pagination,
		"BasePath":   c.Path(),
	})
}

func (h *recipeWebHandler) Index(c *fiber.Ctx) error {
	return h.list(c, "All recipes", "")
}

func (h *recipeWebHandler) MyRecipes(c *fiber.Ctx) error {
	return h.list(c, "My recipes", currentUserID(c))
}

// Search jumps straight to the first recipe whose title contains the query.
// An empty query shows every recipe.
func (h *recipeWebHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return h.list(c, "All recipes", "")
	}

	found, err := h.recipeService.SearchRecipe(c.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return render(c, fiber.StatusNotFound, "recipes/not_found", fiber.Map{
				"Title": "Not found",
				"Query": q,
			})
		}
		h.logger.Error("search recipe", zap.String("query", q), zap.Error(err))
		return renderError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/recipes/%d", found.ID), fiber.StatusSeeOther)
}

func (h *recipeWebHandler) Detail(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return renderError(c, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetRecipe(c.Context(), id, currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}

	return render(c, fiber.StatusOK, "recipes/detail", fiber.Map{
		"Title":  res.Title,
		"Recipe": res,
	})
}

func (h *recipeWebHandler) renderForm(c *fiber.Ctx, status int, form domain.RecipeRequest, action string, errs []string) error {
	title := "New recipe"
	if form.ID != 0 {
		title = "Edit recipe"
	}
	return render(c, status, "recipes/form", fiber.Map{
		"Title":  title,
		"Form":   form,
		"Action": action,
		"IsEdit": form.ID != 0,
		"Errors": errs,
	})
}

func (h *recipeWebHandler) NewForm(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, domain.RecipeRequest{}, "/recipes", nil)
}

func (h *recipeWebHandler) Create(c *fiber.Ctx) error {
	req, err := parseRecipeRequest(c)
	if err != nil {
		return h.renderForm(c, fiber.StatusBadRequest, req, "/recipes", []string{domain.MessageFailedBodyRequest})
	}
	req.ID = 0

	if err := h.validator.Struct(req); err != nil {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, req, "/recipes", formErrors(err))
	}

	if _, err := h.recipeService.CreateRecipe(c.Context(), req, currentUserID(c)); err != nil {
		h.logger.Warn("create recipe", zap.Error(err))
		return h.renderForm(c, statusFromError(err), req, "/recipes", []string{formMessage(err, domain.MessageFailedCreateRecipe)})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *recipeWebHandler) EditForm(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return renderError(c, domain.ErrRecipeNotFound)
	}

	form, err := h.recipeService.GetRecipeForm(c.Context(), id, currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}

	return h.renderForm(c, fiber.StatusOK, form, fmt.Sprintf("/recipes/%d/edit", id), nil)
}

func (h *recipeWebHandler) Edit(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return renderError(c, domain.ErrRecipeNotFound)
	}
	action := fmt.Sprintf("/recipes/%d/edit", id)

	req, err := parseRecipeRequest(c)
	if err != nil {
		return h.renderForm(c, fiber.StatusBadRequest, req, action, []string{domain.MessageFailedBodyRequest})
	}

	if err := h.validator.Struct(req); err != nil {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, req, action, formErrors(err))
	}

	if _, err := h.recipeService.EditRecipe(c.Context(), id, req, currentUserID(c)); err != nil {
		switch statusFromError(err) {
		case fiber.StatusNotFound, fiber.StatusForbidden:
			return renderError(c, err)
		}
		h.logger.Warn("edit recipe", zap.Uint("recipe_id", id), zap.Error(err))
		return h.renderForm(c, statusFromError(err), req, action, []string{formMessage(err, domain.MessageFailedUpdateRecipe)})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *recipeWebHandler) DeleteConfirm(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return renderError(c, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetRecipe(c.Context(), id, currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}
	if !res.IsOwner {
		return renderError(c, domain.ErrUnauthorizedRecipeAccess)
	}

	return render(c, fiber.StatusOK, "recipes/delete", fiber.Map{
		"Title":  "Delete recipe",
		"Recipe": res,
	})
}

func (h *recipeWebHandler) Delete(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return renderError(c, domain.ErrRecipeNotFound)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), id, currentUserID(c)); err != nil {
		return renderError(c, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// formMessage shows domain errors to the user as they are and hides anything
// unexpected behind a generic message.
func formMessage(err error, fallback string) string {
	if statusFromError(err) == fiber.StatusInternalServerError {
		return fallback
	}
	return err.Error()
}
