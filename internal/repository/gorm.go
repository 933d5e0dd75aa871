package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/backend/internal/models"
)

// GormRepository is the relational Repository implementation. Every
// mutating operation runs in its own transaction, committed on success
// and rolled back on any error; nothing is shared across calls.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a repository on top of an open GORM
// connection (PostgreSQL in production, SQLite in tests).
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) AddUser(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", user.Username).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Update("password_hash", user.PasswordHash).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(user).Error
	})
}

func (r *GormRepository) GetUser(username string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Reviews").Preload("Favourites").
		Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepository) AddReview(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", review.RecipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.RecipeID)
	})
}

func (r *GormRepository) RemoveReview(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND username = ?", review.ID, review.Username).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.RecipeID)
	})
}

// recomputeRating refreshes a recipe's aggregate rating to the running
// average of its current reviews, null when none remain.
func recomputeRating(tx *gorm.DB, recipeID int) error {
	var avg *float64
	err := tx.Model(&models.Review{}).
		Select("AVG(rating)").
		Where("recipe_id = ?", recipeID).
		Scan(&avg).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
		Update("rating", avg).Error
}

func (r *GormRepository) AddFavorite(fav *models.Favourite) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Favourite{}).
			Where("username = ? AND recipe_id = ?", fav.Username, fav.RecipeID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(fav).Error
	})
}

func (r *GormRepository) RemoveFavorite(fav *models.Favourite) error {
	return r.db.Where("username = ? AND recipe_id = ?", fav.Username, fav.RecipeID).
		Delete(&models.Favourite{}).Error
}

func (r *GormRepository) GetUserFavorites(username string) ([]*models.Favourite, error) {
	var favs []*models.Favourite
	err := r.db.Where("username = ?", username).Order("id ASC").Find(&favs).Error
	if err != nil {
		return nil, err
	}
	return favs, nil
}

// AddRecipe upserts the recipe's catalog fields. Re-adding an existing
// id updates in place and leaves the review rows and the derived
// rating untouched.
func (r *GormRepository) AddRecipe(recipe *models.Recipe) error {
	return r.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "author_id", "category_id",
				"ingredients", "ingredient_quantities", "instructions", "images",
				"cook_time_minutes", "prep_time_minutes", "servings", "yield",
				"updated_at",
			}),
		}).
		Create(recipe).Error
}

func (r *GormRepository) GetRecipeByID(id int) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Author").Preload("Category").Preload("Reviews").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *GormRepository) GetRecipes(page, pageSize int, key SortKey) ([]*models.Recipe, error) {
	page, pageSize = NormalizePage(page, pageSize)

	var order string
	switch key {
	case SortNameDesc:
		order = "LOWER(name) DESC, id ASC"
	case SortIDAsc:
		order = "id ASC"
	case SortIDDesc:
		order = "id DESC"
	default:
		order = "LOWER(name) ASC, id ASC"
	}

	var recipes []*models.Recipe
	err := r.db.Preload("Author").Preload("Category").
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (r *GormRepository) GetAllRecipes() ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := r.db.Preload("Author").Preload("Category").Order("id ASC").Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe corpus: %w", err)
	}
	return recipes, nil
}

func (r *GormRepository) AddAuthor(author *models.Author) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(author).Error
}

func (r *GormRepository) GetAuthors() (map[int]*models.Author, error) {
	var authors []*models.Author
	if err := r.db.Find(&authors).Error; err != nil {
		return nil, err
	}
	out := make(map[int]*models.Author, len(authors))
	for _, a := range authors {
		out[a.ID] = a
	}
	return out, nil
}

// AddCategory stores a category. A category's identity is its name;
// re-adding an existing name is a no-op.
func (r *GormRepository) AddCategory(category *models.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(category).Error
	})
}

func (r *GormRepository) GetCategories() (map[string]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	out := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		out[c.Name] = c
	}
	return out, nil
}

func (r *GormRepository) AddNutrition(nutrition *models.Nutrition) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(nutrition).Error
}

func (r *GormRepository) GetNutritionByRecipeID(recipeID int) (*models.Nutrition, error) {
	var nutrition models.Nutrition
	err := r.db.First(&nutrition, "recipe_id = ?", recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &nutrition, nil
}
