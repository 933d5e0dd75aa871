package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/plateful/backend/internal/models"
)

// MemoryRepository is the map-backed Repository implementation. A
// single RWMutex guards every read-modify-write sequence (review
// append, favourite uniqueness check, rating recompute). Getters hand
// out live pointers rather than snapshots: a caller holding a recipe
// across a concurrent write observes last-writer-wins field updates.
type MemoryRepository struct {
	mu           sync.RWMutex
	recipes      []*models.Recipe
	recipeByID   map[int]*models.Recipe
	authors      map[int]*models.Author
	categories   map[string]*models.Category
	nutrition    map[int]*models.Nutrition
	users        map[string]*models.User
	favourites   map[string][]*models.Favourite
	nextReviewID int
	nextFavID    int
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		recipeByID: make(map[int]*models.Recipe),
		authors:    make(map[int]*models.Author),
		categories: make(map[string]*models.Category),
		nutrition:  make(map[int]*models.Nutrition),
		users:      make(map[string]*models.User),
		favourites: make(map[string][]*models.Favourite),
	}
}

func (r *MemoryRepository) AddUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.Username]; ok {
		existing.PasswordHash = user.PasswordHash
		return nil
	}
	r.users[user.Username] = user
	return nil
}

func (r *MemoryRepository) GetUser(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[username], nil
}

func (r *MemoryRepository) AddReview(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe := r.recipeByID[review.RecipeID]
	if recipe == nil {
		return nil
	}
	if review.ID == 0 {
		r.nextReviewID++
		review.ID = r.nextReviewID
	} else if review.ID > r.nextReviewID {
		r.nextReviewID = review.ID
	}

	recipe.Reviews = append(recipe.Reviews, *review)
	if user := r.users[review.Username]; user != nil {
		user.Reviews = append(user.Reviews, *review)
	}
	recipe.Rating = averageRating(recipe.Reviews)
	return nil
}

func (r *MemoryRepository) RemoveReview(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if recipe := r.recipeByID[review.RecipeID]; recipe != nil {
		recipe.Reviews = dropReview(recipe.Reviews, review.ID, review.Username)
		recipe.Rating = averageRating(recipe.Reviews)
	}
	if user := r.users[review.Username]; user != nil {
		user.Reviews = dropReview(user.Reviews, review.ID, review.Username)
	}
	return nil
}

func (r *MemoryRepository) AddFavorite(fav *models.Favourite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.favourites[fav.Username] {
		if existing.RecipeID == fav.RecipeID {
			return nil
		}
	}
	if fav.ID == 0 {
		r.nextFavID++
		fav.ID = r.nextFavID
	}
	r.favourites[fav.Username] = append(r.favourites[fav.Username], fav)
	if user := r.users[fav.Username]; user != nil {
		user.Favourites = append(user.Favourites, *fav)
	}
	return nil
}

func (r *MemoryRepository) RemoveFavorite(fav *models.Favourite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs := r.favourites[fav.Username]
	for i, existing := range favs {
		if existing.RecipeID == fav.RecipeID {
			r.favourites[fav.Username] = append(favs[:i], favs[i+1:]...)
			break
		}
	}
	if user := r.users[fav.Username]; user != nil {
		for i, existing := range user.Favourites {
			if existing.RecipeID == fav.RecipeID {
				user.Favourites = append(user.Favourites[:i], user.Favourites[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (r *MemoryRepository) GetUserFavorites(username string) ([]*models.Favourite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	favs := r.favourites[username]
	out := make([]*models.Favourite, len(favs))
	copy(out, favs)
	return out, nil
}

func (r *MemoryRepository) AddRecipe(recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.recipeByID[recipe.ID]; ok {
		// Merge catalog fields in place, keeping the owned reviews and
		// the derived rating.
		reviews, rating := existing.Reviews, existing.Rating
		*existing = *recipe
		existing.Reviews, existing.Rating = reviews, rating
		r.resolveRelations(existing)
		return nil
	}
	r.resolveRelations(recipe)
	r.recipes = append(r.recipes, recipe)
	r.recipeByID[recipe.ID] = recipe
	return nil
}

// resolveRelations populates nil author/category references from the
// stored reference data, matching what the relational backend's
// Preload produces for the same inputs.
func (r *MemoryRepository) resolveRelations(recipe *models.Recipe) {
	if recipe.Author == nil {
		recipe.Author = r.authors[recipe.AuthorID]
	}
	if recipe.Category == nil {
		for _, c := range r.categories {
			if c.ID == recipe.CategoryID {
				recipe.Category = c
				break
			}
		}
	}
}

func (r *MemoryRepository) GetRecipeByID(id int) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recipeByID[id], nil
}

func (r *MemoryRepository) GetRecipes(page, pageSize int, key SortKey) ([]*models.Recipe, error) {
	page, pageSize = NormalizePage(page, pageSize)

	r.mu.RLock()
	sorted := make([]*models.Recipe, len(r.recipes))
	copy(sorted, r.recipes)
	r.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch key {
		case SortNameDesc:
			if !strings.EqualFold(a.Name, b.Name) {
				return strings.ToLower(a.Name) > strings.ToLower(b.Name)
			}
		case SortIDAsc:
			return a.ID < b.ID
		case SortIDDesc:
			return a.ID > b.ID
		default: // SortNameAsc and fallback
			if !strings.EqualFold(a.Name, b.Name) {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}
		}
		return a.ID < b.ID
	})

	offset := (page - 1) * pageSize
	if offset >= len(sorted) {
		return nil, nil
	}
	end := offset + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (r *MemoryRepository) GetAllRecipes() ([]*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Recipe, len(r.recipes))
	copy(out, r.recipes)
	return out, nil
}

func (r *MemoryRepository) AddAuthor(author *models.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.authors[author.ID]; ok {
		existing.Name = author.Name
		return nil
	}
	r.authors[author.ID] = author
	for _, rec := range r.recipes {
		if rec.AuthorID == author.ID && rec.Author == nil {
			rec.Author = author
		}
	}
	return nil
}

func (r *MemoryRepository) GetAuthors() (map[int]*models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int]*models.Author, len(r.authors))
	for id, a := range r.authors {
		out[id] = a
	}
	return out, nil
}

// AddCategory stores a category. A category's identity is its name;
// re-adding an existing name is a no-op.
func (r *MemoryRepository) AddCategory(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.Name]; !ok {
		r.categories[category.Name] = category
		for _, rec := range r.recipes {
			if rec.CategoryID == category.ID && rec.Category == nil {
				rec.Category = category
			}
		}
	}
	return nil
}

func (r *MemoryRepository) GetCategories() (map[string]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*models.Category, len(r.categories))
	for name, c := range r.categories {
		out[name] = c
	}
	return out, nil
}

func (r *MemoryRepository) AddNutrition(nutrition *models.Nutrition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nutrition[nutrition.RecipeID] = nutrition
	return nil
}

func (r *MemoryRepository) GetNutritionByRecipeID(recipeID int) (*models.Nutrition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nutrition[recipeID], nil
}

func averageRating(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	var sum int
	for _, rv := range reviews {
		sum += rv.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return &avg
}

func dropReview(reviews []models.Review, id int, username string) []models.Review {
	out := reviews[:0]
	for _, rv := range reviews {
		if rv.ID != id || rv.Username != username {
			out = append(out, rv)
		}
	}
	return out
}
