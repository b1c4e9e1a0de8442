package recipe

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/entities"
	"Recipe-Sharing/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const imageFolder = "recipes"

type (
	RecipeService interface {
		ListRecipes(ctx context.Context, filter domain.RecipeFilter) (domain.RecipeListResponse, error)
		GetRecipe(ctx context.Context, id uint, userID string) (domain.RecipeDetail, error)
		GetRecipeForm(ctx context.Context, id uint, userID string) (domain.RecipeRequest, error)
		SearchRecipe(ctx context.Context, title string) (domain.RecipeSummary, error)
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.RecipeDetail, error)
		EditRecipe(ctx context.Context, id uint, req domain.RecipeRequest, userID string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, id uint, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		storage          storage.ImageStorage
		logger           *zap.Logger
	}
)

func NewRecipeService(recipeRepository RecipeRepository, imageStorage storage.ImageStorage, logger *zap.Logger) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		storage:          imageStorage,
		logger:           logger.Named("recipe"),
	}
}

func (s *recipeService) ListRecipes(ctx context.Context, filter domain.RecipeFilter) (domain.RecipeListResponse, error) {
	page := filter.PaginationRequest.Normalize()

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter.UserID, page.Page, page.Limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	summaries := make([]domain.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, toSummary(r))
	}

	return domain.RecipeListResponse{
		Recipes:    summaries,
		Pagination: domain.NewPaginationResponse(page.Page, page.Limit, count),
	}, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id uint, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, translateError(err)
	}

	return toDetail(recipe, userID), nil
}

func (s *recipeService) GetRecipeForm(ctx context.Context, id uint, userID string) (domain.RecipeRequest, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.RecipeRequest{}, translateError(err)
	}

	if recipe.UserID.String() != userID {
		return domain.RecipeRequest{}, domain.ErrUnauthorizedRecipeAccess
	}

	form := domain.RecipeRequest{
		ID:           recipe.ID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		ImageURL:     recipe.ImageURL,
		Ingredients:  make([]domain.IngredientItem, 0, len(recipe.Ingredients)),
		Instructions: make([]domain.InstructionItem, 0, len(recipe.Instructions)),
	}
	for _, i := range recipe.Ingredients {
		form.Ingredients = append(form.Ingredients, domain.IngredientItem{ID: i.ID, Name: i.Name, Quantity: i.Quantity})
	}
	for _, i := range recipe.Instructions {
		form.Instructions = append(form.Instructions, domain.InstructionItem{ID: i.ID, Step: i.Description})
	}

	return form, nil
}

func (s *recipeService) SearchRecipe(ctx context.Context, title string) (domain.RecipeSummary, error) {
	recipe, err := s.recipeRepository.SearchRecipeByTitle(ctx, title)
	if err != nil {
		return domain.RecipeSummary{}, translateError(err)
	}

	return toSummary(recipe), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.RecipeDetail, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	recipe := entities.Recipe{
		UserID:      userUUID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	for _, item := range req.Ingredients {
		if item.IsDeleted {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, entities.Ingredient{
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	for _, item := range req.Instructions {
		if item.IsDeleted {
			continue
		}
		recipe.Instructions = append(recipe.Instructions, entities.Instruction{
			StepNumber:  len(recipe.Instructions) + 1,
			Description: item.Step,
		})
	}

	var uploadedKey string
	if req.Image != nil {
		uploadedKey, err = s.uploadImage(req.Image)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		recipe.ImageURL = s.storage.GetPublicLinkKey(uploadedKey)
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe); err != nil {
		if uploadedKey != "" {
			s.removeImage(uploadedKey)
		}
		return domain.RecipeDetail{}, err
	}

	s.logger.Info("recipe created",
		zap.Uint("recipe_id", recipe.ID),
		zap.String("user_id", userID),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("instructions", len(recipe.Instructions)),
	)

	return toDetail(&recipe, userID), nil
}

func (s *recipeService) EditRecipe(ctx context.Context, id uint, req domain.RecipeRequest, userID string) (domain.RecipeDetail, error) {
	if req.ID != 0 && req.ID != id {
		return domain.RecipeDetail{}, domain.ErrRecipeIDMismatch
	}

	var (
		edited      *entities.Recipe
		uploadedKey string
		staleKey    string
	)
	err := s.recipeRepository.EditRecipe(ctx, id, func(session EditSession, recipe *entities.Recipe) error {
		if recipe.UserID.String() != userID {
			return domain.ErrUnauthorizedRecipeAccess
		}

		recipe.Title = req.Title
		recipe.Description = req.Description

		previousURL := recipe.ImageURL
		switch {
		case req.Image != nil:
			key, err := s.uploadImage(req.Image)
			if err != nil {
				return err
			}
			uploadedKey = key
			recipe.ImageURL = s.storage.GetPublicLinkKey(key)
		case req.ImageURL != "":
			recipe.ImageURL = req.ImageURL
		}
		if previousURL != "" && recipe.ImageURL != previousURL {
			staleKey = s.storage.GetObjectKeyFromLink(previousURL)
		}

		if skipped := unknownItemIDs(recipe, req.Ingredients, req.Instructions); len(skipped) > 0 {
			s.logger.Debug("skipping unknown recipe items", zap.Uint("recipe_id", id), zap.Uints("item_ids", skipped))
		}
		Reconcile(session, recipe, req.Ingredients, req.Instructions)
		edited = recipe
		return nil
	})
	if err != nil {
		// the stored recipe still points at its previous image
		if uploadedKey != "" {
			s.removeImage(uploadedKey)
		}
		return domain.RecipeDetail{}, translateError(err)
	}

	if staleKey != "" {
		s.removeImage(staleKey)
	}

	s.logger.Info("recipe edited",
		zap.Uint("recipe_id", id),
		zap.String("user_id", userID),
		zap.Int("submitted_ingredients", len(req.Ingredients)),
		zap.Int("submitted_instructions", len(req.Instructions)),
	)

	return toDetail(edited, userID), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return translateError(err)
	}

	if recipe.UserID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
		return translateError(err)
	}

	if recipe.ImageURL != "" {
		if key := s.storage.GetObjectKeyFromLink(recipe.ImageURL); key != "" {
			s.removeImage(key)
		}
	}

	s.logger.Info("recipe deleted", zap.Uint("recipe_id", id), zap.String("user_id", userID))
	return nil
}

// uploadImage stores file under a fresh name so a failed edit never touches
// the image the recipe currently points at.
func (s *recipeService) uploadImage(file *multipart.FileHeader) (string, error) {
	fileName := fmt.Sprintf("recipe-%s", uuid.New().String())
	return s.storage.UploadFile(fileName, file, imageFolder, storage.AllowImage...)
}

func (s *recipeService) removeImage(key string) {
	if err := s.storage.DeleteFile(key); err != nil {
		s.logger.Warn("failed to delete recipe image", zap.String("key", key), zap.Error(err))
	}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecipeNotFound
	}
	return err
}

func toSummary(r *entities.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		UserID:      r.UserID.String(),
		CreatedAt:   r.CreatedAt,
	}
}

func toDetail(r *entities.Recipe, userID string) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		RecipeSummary: toSummary(r),
		Ingredients:   make([]domain.Ingredient, 0, len(r.Ingredients)),
		Instructions:  make([]domain.Instruction, 0, len(r.Instructions)),
		IsOwner:       r.UserID.String() == userID,
	}

	for _, i := range r.Ingredients {
		detail.Ingredients = append(detail.Ingredients, domain.Ingredient{
			ID:       i.ID,
			Name:     i.Name,
			Quantity: i.Quantity,
		})
	}
	for _, i := range r.Instructions {
		detail.Instructions = append(detail.Instructions, domain.Instruction{
			ID:          i.ID,
			StepNumber:  i.StepNumber,
			Description: i.Description,
		})
	}

	return detail
}
