package repository

import (
	"strings"

	"github.com/plateful/backend/internal/models"
)

// DefaultPageSize is used when a caller passes an invalid page size to
// GetRecipes.
const DefaultPageSize = 10

// SortKey selects the ordering of paged recipe listings. Ties are
// always broken by ascending recipe id.
type SortKey string

const (
	SortNameAsc  SortKey = "name_asc"
	SortNameDesc SortKey = "name_desc"
	SortIDAsc    SortKey = "id_asc"
	SortIDDesc   SortKey = "id_desc"
)

// ParseSortKey normalizes a user-supplied sort string. Unknown values
// fall back to name ascending.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "name_asc":
		return SortNameAsc
	case "name_desc", "desc_name":
		return SortNameDesc
	case "id", "id_asc":
		return SortIDAsc
	case "id_desc", "desc_id":
		return SortIDDesc
	default:
		return SortNameAsc
	}
}

// NormalizePage clamps pagination inputs to valid values: page is at
// least 1 and pageSize falls back to DefaultPageSize.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// Repository is the storage contract shared by the in-memory and
// relational backends. Both implementations must be observably
// identical for identical inputs.
//
// Lookup misses are not errors: single-entity getters return (nil, nil)
// when the entity does not exist. Errors are reserved for storage
// failures. Adds are idempotent on the entity's identity: re-adding an
// existing entity updates it in place instead of duplicating it.
type Repository interface {
	// Users
	AddUser(user *models.User) error
	GetUser(username string) (*models.User, error)

	// Reviews. AddReview and RemoveReview keep the owning user's and
	// recipe's collections in sync and recompute the recipe's
	// aggregate rating (running average, nil when no reviews remain)
	// before returning.
	AddReview(review *models.Review) error
	RemoveReview(review *models.Review) error

	// Favourites. At most one favourite exists per (username,
	// recipe_id); AddFavorite is a no-op when the pair already exists.
	AddFavorite(fav *models.Favourite) error
	RemoveFavorite(fav *models.Favourite) error
	GetUserFavorites(username string) ([]*models.Favourite, error)

	// Recipes. Re-adding an existing recipe merges its catalog fields
	// and preserves its owned reviews and derived rating. Getters
	// return recipes with their author and category references
	// resolved when the reference data exists.
	AddRecipe(recipe *models.Recipe) error
	GetRecipeByID(id int) (*models.Recipe, error)
	GetRecipes(page, pageSize int, sort SortKey) ([]*models.Recipe, error)
	GetAllRecipes() ([]*models.Recipe, error)

	// Reference data
	AddAuthor(author *models.Author) error
	GetAuthors() (map[int]*models.Author, error)
	AddCategory(category *models.Category) error
	GetCategories() (map[string]*models.Category, error)
	AddNutrition(nutrition *models.Nutrition) error
	GetNutritionByRecipeID(recipeID int) (*models.Nutrition, error)
}
