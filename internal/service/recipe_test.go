package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

func TestGetNutritionWithStars(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.AddRecipe(&models.Recipe{ID: 1, Name: "Chocolate Cake"}))
	sugar := 25.0
	require.NoError(t, repo.AddNutrition(&models.Nutrition{RecipeID: 1, Sugar: &sugar}))
	svc := NewRecipeService(repo)

	n, stars, err := svc.GetNutrition(1)
	require.NoError(t, err)
	require.NotNil(t, n)
	require.NotNil(t, stars)
	assert.Equal(t, 2.0, *stars)

	// No nutrition record means no rating, not a zero one.
	n, stars, err = svc.GetNutrition(999)
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.Nil(t, stars)
}

func TestAttachImage(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.AddRecipe(&models.Recipe{ID: 1, Name: "Chocolate Cake"}))
	svc := NewRecipeService(repo)

	require.NoError(t, svc.AttachImage(1, "https://example.com/cake.jpg"))
	recipe, err := repo.GetRecipeByID(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/cake.jpg"}, []string(recipe.Images))

	assert.ErrorIs(t, svc.AttachImage(999, "https://example.com/x.jpg"), ErrRecipeNotFound)
}

func TestGetRecipesClampsInputs(t *testing.T) {
	repo := repository.NewMemoryRepository()
	for i, name := range []string{"Beef Stew", "Apple Pie", "Carrot Soup"} {
		require.NoError(t, repo.AddRecipe(&models.Recipe{ID: i + 1, Name: name}))
	}
	svc := NewRecipeService(repo)

	recipes, err := svc.GetRecipes(-1, -1, "bogus")
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Apple Pie", recipes[0].Name)
}
