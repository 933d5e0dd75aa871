package service

import (
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

// RecipeService handles browse and detail reads over the repository.
type RecipeService struct {
	repo repository.Repository
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(repo repository.Repository) *RecipeService {
	return &RecipeService{repo: repo}
}

// GetRecipes returns one page of recipes. Invalid page, page size and
// sort inputs are clamped to defaults rather than rejected.
func (s *RecipeService) GetRecipes(page, pageSize int, sort string) ([]*models.Recipe, error) {
	return s.repo.GetRecipes(page, pageSize, repository.ParseSortKey(sort))
}

// GetRecipe returns a recipe with its author, category and reviews, or
// nil when it does not exist.
func (s *RecipeService) GetRecipe(id int) (*models.Recipe, error) {
	return s.repo.GetRecipeByID(id)
}

// GetCategories returns all categories keyed by name.
func (s *RecipeService) GetCategories() (map[string]*models.Category, error) {
	return s.repo.GetCategories()
}

// GetAuthors returns all authors keyed by id.
func (s *RecipeService) GetAuthors() (map[int]*models.Author, error) {
	return s.repo.GetAuthors()
}

// GetNutrition returns a recipe's nutrition record and its derived
// health-star rating. Both are nil when the recipe has no nutrition.
func (s *RecipeService) GetNutrition(recipeID int) (*models.Nutrition, *float64, error) {
	n, err := s.repo.GetNutritionByRecipeID(recipeID)
	if err != nil {
		return nil, nil, err
	}
	return n, n.HealthStars(), nil
}

// AttachImage appends an image URL to the recipe's image list.
func (s *RecipeService) AttachImage(recipeID int, url string) error {
	recipe, err := s.repo.GetRecipeByID(recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	recipe.Images = append(recipe.Images, url)
	return s.repo.AddRecipe(recipe)
}
