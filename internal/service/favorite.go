package service

import (
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

// FavoriteService maintains per-user recipe bookmarks. Both user and
// recipe must exist; the repository enforces at most one favourite per
// (username, recipe) pair.
type FavoriteService struct {
	repo repository.Repository
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(repo repository.Repository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// AddFavorite bookmarks a recipe for a user. Adding an existing
// favourite is a no-op. Returns *FavouriteError when the user or
// recipe does not exist.
func (s *FavoriteService) AddFavorite(username string, recipeID int) (*models.Favourite, error) {
	if err := s.requireUserAndRecipe(username, recipeID); err != nil {
		return nil, err
	}
	fav := &models.Favourite{Username: username, RecipeID: recipeID}
	if err := s.repo.AddFavorite(fav); err != nil {
		return nil, err
	}
	return fav, nil
}

// RemoveFavorite drops a user's bookmark of a recipe. Returns
// *FavouriteError when the user or recipe does not exist.
func (s *FavoriteService) RemoveFavorite(username string, recipeID int) error {
	if err := s.requireUserAndRecipe(username, recipeID); err != nil {
		return err
	}
	return s.repo.RemoveFavorite(&models.Favourite{Username: username, RecipeID: recipeID})
}

// IsFavorited reports whether the recipe is in the user's favourites.
func (s *FavoriteService) IsFavorited(username string, recipeID int) (bool, error) {
	favs, err := s.repo.GetUserFavorites(username)
	if err != nil {
		return false, err
	}
	for _, f := range favs {
		if f.RecipeID == recipeID {
			return true, nil
		}
	}
	return false, nil
}

// Favorites lists the user's bookmarked recipes.
func (s *FavoriteService) Favorites(username string) ([]*models.Recipe, error) {
	favs, err := s.repo.GetUserFavorites(username)
	if err != nil {
		return nil, err
	}
	recipes := make([]*models.Recipe, 0, len(favs))
	for _, f := range favs {
		recipe, err := s.repo.GetRecipeByID(f.RecipeID)
		if err != nil {
			return nil, err
		}
		if recipe != nil {
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}

func (s *FavoriteService) requireUserAndRecipe(username string, recipeID int) error {
	user, err := s.repo.GetUser(username)
	if err != nil {
		return err
	}
	recipe, err := s.repo.GetRecipeByID(recipeID)
	if err != nil {
		return err
	}
	if user == nil || recipe == nil {
		return &FavouriteError{Message: "user or recipe not found"}
	}
	return nil
}
