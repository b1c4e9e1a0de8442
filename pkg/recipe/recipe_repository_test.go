package recipe

import (
	"Recipe-Sharing/entities"
	"Recipe-Sharing/internal/testutil"
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRecipe(t *testing.T, repo RecipeRepository, userID uuid.UUID, title string) *entities.Recipe {
	t.Helper()

	r := &entities.Recipe{
		UserID:      userID,
		Title:       title,
		Description: gofakeit.Sentence(8),
		Ingredients: []entities.Ingredient{
			{Name: "Salt", Quantity: "1 tsp"},
			{Name: "Flour", Quantity: "200g"},
		},
		Instructions: []entities.Instruction{
			{StepNumber: 1, Description: "Mix"},
			{StepNumber: 2, Description: "Bake"},
		},
	}
	require.NoError(t, repo.CreateRecipe(context.Background(), r))
	return r
}

func TestRecipeRepository_CreateAndGet(t *testing.T) {
	repo := NewRecipeRepository(testutil.NewTestDB(t))
	owner := uuid.New()

	created := seedRecipe(t, repo, owner, "Bread")
	require.NotZero(t, created.ID)

	got, err := repo.GetRecipeByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", got.Title)
	assert.Equal(t, owner, got.UserID)
	require.Len(t, got.Ingredients, 2)
	require.Len(t, got.Instructions, 2)
	assert.Equal(t, "Mix", got.Instructions[0].Description)
	assert.Equal(t, 2, got.Instructions[1].StepNumber)

	_, err = repo.GetRecipeByID(context.Background(), created.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeRepository_GetRecipes(t *testing.T) {
	repo := NewRecipeRepository(testutil.NewTestDB(t))
	alice, bob := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		seedRecipe(t, repo, alice, gofakeit.Dessert())
	}
	seedRecipe(t, repo, bob, gofakeit.Dinner())

	all, total, err := repo.GetRecipes(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, all, 4)

	mine, total, err := repo.GetRecipes(context.Background(), alice.String(), 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, alice, r.UserID)
	}

	rest, _, err := repo.GetRecipes(context.Background(), alice.String(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestRecipeRepository_SearchRecipeByTitle(t *testing.T) {
	repo := NewRecipeRepository(testutil.NewTestDB(t))
	owner := uuid.New()

	first := seedRecipe(t, repo, owner, "Tomato Soup")
	seedRecipe(t, repo, owner, "Tomato Salad")
	seedRecipe(t, repo, owner, "100% Rye")

	got, err := repo.SearchRecipeByTitle(context.Background(), "tomato")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = repo.SearchRecipeByTitle(context.Background(), "SALAD")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Salad", got.Title)

	got, err = repo.SearchRecipeByTitle(context.Background(), "0%")
	require.NoError(t, err)
	assert.Equal(t, "100% Rye", got.Title)

	_, err = repo.SearchRecipeByTitle(context.Background(), "lasagna")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeRepository_EditRecipe(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	r := seedRecipe(t, repo, uuid.New(), "Cake")
	salt, flour := r.Ingredients[0].ID, r.Ingredients[1].ID
	mix := r.Instructions[0].ID

	err := repo.EditRecipe(context.Background(), r.ID, func(session EditSession, recipe *entities.Recipe) error {
		recipe.Title = "Sponge Cake"
		recipe.Ingredients[0].Name = "Sea Salt"
		session.DeleteIngredient(recipe.Ingredients[1])
		recipe.Ingredients = recipe.Ingredients[:1]
		recipe.Ingredients = append(recipe.Ingredients, entities.Ingredient{Name: "Sugar"})
		session.DeleteInstruction(recipe.Instructions[0])
		recipe.Instructions = recipe.Instructions[1:]
		return nil
	})
	require.NoError(t, err)

	got, err := repo.GetRecipeByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sponge Cake", got.Title)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, salt, got.Ingredients[0].ID)
	assert.Equal(t, "Sea Salt", got.Ingredients[0].Name)
	assert.Equal(t, "Sugar", got.Ingredients[1].Name)
	require.Len(t, got.Instructions, 1)
	assert.Equal(t, "Bake", got.Instructions[0].Description)

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Where("id = ?", flour).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entities.Instruction{}).Where("id = ?", mix).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeRepository_EditRecipeRollsBack(t *testing.T) {
	repo := NewRecipeRepository(testutil.NewTestDB(t))
	r := seedRecipe(t, repo, uuid.New(), "Pie")

	err := repo.EditRecipe(context.Background(), r.ID, func(session EditSession, recipe *entities.Recipe) error {
		recipe.Title = "Changed"
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	got, err := repo.GetRecipeByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pie", got.Title)

	err = repo.EditRecipe(context.Background(), r.ID+1, func(EditSession, *entities.Recipe) error { return nil })
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeRepository_DeleteRecipe(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	r := seedRecipe(t, repo, uuid.New(), "Stew")
	other := seedRecipe(t, repo, uuid.New(), "Curry")

	require.NoError(t, repo.DeleteRecipe(context.Background(), r.ID))

	_, err := repo.GetRecipeByID(context.Background(), r.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Where("recipe_id = ?", r.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entities.Instruction{}).Where("recipe_id = ?", r.ID).Count(&count).Error)
	assert.Zero(t, count)

	kept, err := repo.GetRecipeByID(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Len(t, kept.Ingredients, 2)

	assert.ErrorIs(t, repo.DeleteRecipe(context.Background(), r.ID), gorm.ErrRecordNotFound)
}
