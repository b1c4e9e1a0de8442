package recipe

import (
	"Recipe-Sharing/entities"
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		SearchRecipeByTitle(ctx context.Context, title string) (*entities.Recipe, error)
		EditRecipe(ctx context.Context, id uint, edit func(session EditSession, recipe *entities.Recipe) error) error
		DeleteRecipe(ctx context.Context, id uint) error
	}

	recipeRepository struct {
		db *gorm.DB
	}

	// gormEditSession buffers child removals until commit, which runs inside
	// the edit transaction.
	gormEditSession struct {
		tx             *gorm.DB
		ingredientIDs  []uint
		instructionIDs []uint
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.id ASC")
		}).
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("instructions.step_number ASC, instructions.id ASC")
		})
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := preloadChildren(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func ownedBy(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == "" {
			return db
		}
		return db.Where("user_id = ?", userID)
	}
}

func (r *recipeRepository) GetRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(ownedBy(userID)).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		Offset(offset).
		Limit(limit).
		Order("id ASC").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) SearchRecipeByTitle(ctx context.Context, title string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	pattern := "%" + escapeLike(strings.ToLower(title)) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern).
		Order("id ASC").
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) EditRecipe(ctx context.Context, id uint, edit func(session EditSession, recipe *entities.Recipe) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe entities.Recipe
		if err := preloadChildren(tx).Where("id = ?", id).First(&recipe).Error; err != nil {
			return err
		}

		session := &gormEditSession{tx: tx}
		if err := edit(session, &recipe); err != nil {
			return err
		}

		return session.commit(&recipe)
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Instruction{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *gormEditSession) DeleteIngredient(ingredient entities.Ingredient) {
	s.ingredientIDs = append(s.ingredientIDs, ingredient.ID)
}

func (s *gormEditSession) DeleteInstruction(instruction entities.Instruction) {
	s.instructionIDs = append(s.instructionIDs, instruction.ID)
}

// commit writes the reconciled aggregate: removals first, then the recipe
// row, then every remaining child (inserting the ones without an ID).
func (s *gormEditSession) commit(recipe *entities.Recipe) error {
	if len(s.ingredientIDs) > 0 {
		if err := s.tx.
			Where("id IN ? AND recipe_id = ?", s.ingredientIDs, recipe.ID).
			Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
	}
	if len(s.instructionIDs) > 0 {
		if err := s.tx.
			Where("id IN ? AND recipe_id = ?", s.instructionIDs, recipe.ID).
			Delete(&entities.Instruction{}).Error; err != nil {
			return err
		}
	}

	if err := s.tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
		return err
	}

	for i := range recipe.Ingredients {
		recipe.Ingredients[i].RecipeID = recipe.ID
		if err := s.tx.Save(&recipe.Ingredients[i]).Error; err != nil {
			return err
		}
	}
	for i := range recipe.Instructions {
		recipe.Instructions[i].RecipeID = recipe.ID
		if err := s.tx.Save(&recipe.Instructions[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
