package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

// DefaultSearchPageSize is the page size used when the caller passes
// an invalid one to Search.
const DefaultSearchPageSize = 12

const (
	suggestionsCacheKey = "plateful:search:suggestions"
	suggestionsCacheTTL = 5 * time.Minute
	paginationWindow    = 5
)

// Suggestions are the deduplicated, alphabetically sorted autocomplete
// sets computed over the full corpus, regardless of the current filter
// or page.
type Suggestions struct {
	Names       []string `json:"names"`
	Categories  []string `json:"categories"`
	Authors     []string `json:"authors"`
	Ingredients []string `json:"ingredients"`
}

// Pagination describes the current page and the window of page numbers
// to display. PrevPage and NextPage are zero when there is no such
// page.
type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Pages      []int `json:"pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	PrevPage   int   `json:"prev_page"`
	NextPage   int   `json:"next_page"`
}

// SearchResult is the full return structure of a search: the paginated
// recipe slice, the matched total, per-recipe nutrition and star
// annotations for the visible page, the corpus-wide suggestion sets
// and the pagination window.
type SearchResult struct {
	Recipes      []*models.Recipe          `json:"recipes"`
	TotalRecipes int                       `json:"total_recipes"`
	Nutrition    map[int]*models.Nutrition `json:"nutrition"`
	HealthStars  map[int]*float64          `json:"health_stars"`
	Suggestions  Suggestions               `json:"suggestions"`
	Pagination   Pagination                `json:"pagination"`
}

// SearchService runs the filter/sort/paginate pipeline over the full
// recipe corpus. It is backend-agnostic: any Repository works. The
// optional Redis client caches the corpus-wide suggestion sets; when
// it is nil or unavailable the service recomputes them per call.
type SearchService struct {
	repo  repository.Repository
	cache *redis.Client
}

// NewSearchService creates a SearchService. cache may be nil.
func NewSearchService(repo repository.Repository, cache *redis.Client) *SearchService {
	return &SearchService{repo: repo, cache: cache}
}

// Search filters the corpus by a case-insensitive substring match on
// the chosen dimension (name, category, author or ingredients; any
// other value matches across all four), sorts by the matched
// dimension, and paginates. It never fails on user input: invalid
// pages are clamped and an empty corpus yields an empty result.
func (s *SearchService) Search(ctx context.Context, query, filterBy string, page, pageSize int) (*SearchResult, error) {
	if pageSize < 1 {
		pageSize = DefaultSearchPageSize
	}

	corpus, err := s.repo.GetAllRecipes()
	if err != nil {
		return nil, err
	}

	matched := filterRecipes(corpus, query, filterBy)
	sortRecipes(matched, filterBy)

	pageRecipes, pagination := paginateRecipes(matched, page, pageSize)

	nutrition := make(map[int]*models.Nutrition, len(pageRecipes))
	stars := make(map[int]*float64, len(pageRecipes))
	for _, recipe := range pageRecipes {
		n, err := s.repo.GetNutritionByRecipeID(recipe.ID)
		if err != nil {
			return nil, err
		}
		nutrition[recipe.ID] = n
		stars[recipe.ID] = n.HealthStars()
	}

	return &SearchResult{
		Recipes:      pageRecipes,
		TotalRecipes: len(matched),
		Nutrition:    nutrition,
		HealthStars:  stars,
		Suggestions:  s.suggestions(ctx, corpus),
		Pagination:   pagination,
	}, nil
}

func filterRecipes(recipes []*models.Recipe, query, filterBy string) []*models.Recipe {
	if query == "" {
		return recipes
	}
	q := strings.ToLower(query)

	matchName := func(r *models.Recipe) bool {
		return strings.Contains(strings.ToLower(r.Name), q)
	}
	matchCategory := func(r *models.Recipe) bool {
		return strings.Contains(strings.ToLower(r.CategoryName()), q)
	}
	matchAuthor := func(r *models.Recipe) bool {
		return strings.Contains(strings.ToLower(r.AuthorName()), q)
	}
	matchIngredients := func(r *models.Recipe) bool {
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing), q) {
				return true
			}
		}
		return false
	}

	var match func(*models.Recipe) bool
	switch filterBy {
	case "name":
		match = matchName
	case "category":
		match = matchCategory
	case "author":
		match = matchAuthor
	case "ingredients":
		match = matchIngredients
	default:
		// Multi-field search across every dimension.
		match = func(r *models.Recipe) bool {
			return matchName(r) || matchCategory(r) || matchAuthor(r) || matchIngredients(r)
		}
	}

	var matched []*models.Recipe
	for _, r := range recipes {
		if match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

func sortRecipes(recipes []*models.Recipe, filterBy string) {
	key := func(r *models.Recipe) string {
		switch filterBy {
		case "category":
			return strings.ToLower(r.CategoryName())
		case "author":
			return strings.ToLower(r.AuthorName())
		case "ingredients":
			return strings.ToLower(r.FirstIngredient())
		default:
			return strings.ToLower(r.Name)
		}
	}
	sort.SliceStable(recipes, func(i, j int) bool {
		ki, kj := key(recipes[i]), key(recipes[j])
		if ki != kj {
			return ki < kj
		}
		// Ties resolve by id so the ordering does not depend on the
		// corpus order the backend happened to return.
		return recipes[i].ID < recipes[j].ID
	})
}

func paginateRecipes(recipes []*models.Recipe, page, pageSize int) ([]*models.Recipe, Pagination) {
	total := len(recipes)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	// Display window of at most five pages centered on the current
	// one, shifted back inside [1, totalPages] near either edge.
	startPage := page - paginationWindow/2
	if startPage < 1 {
		startPage = 1
	}
	endPage := startPage + paginationWindow - 1
	if endPage > totalPages {
		endPage = totalPages
		startPage = endPage - paginationWindow + 1
		if startPage < 1 {
			startPage = 1
		}
	}
	pages := make([]int, 0, endPage-startPage+1)
	for p := startPage; p <= endPage; p++ {
		pages = append(pages, p)
	}

	pagination := Pagination{
		Page:       page,
		TotalPages: totalPages,
		Pages:      pages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if pagination.HasPrev {
		pagination.PrevPage = page - 1
	}
	if pagination.HasNext {
		pagination.NextPage = page + 1
	}

	return recipes[start:end], pagination
}

// suggestions returns the corpus-wide autocomplete sets, served from
// Redis when a cache is configured and warm.
func (s *SearchService) suggestions(ctx context.Context, corpus []*models.Recipe) Suggestions {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, suggestionsCacheKey).Bytes()
		if err == nil {
			var cached Suggestions
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	suggestions := buildSuggestions(corpus)

	if s.cache != nil {
		data, err := json.Marshal(suggestions)
		if err == nil {
			if err := s.cache.Set(ctx, suggestionsCacheKey, data, suggestionsCacheTTL).Err(); err != nil {
				log.Printf("[SearchService] failed to cache suggestions: %v", err)
			}
		}
	}
	return suggestions
}

func buildSuggestions(corpus []*models.Recipe) Suggestions {
	names := make(map[string]struct{})
	categories := make(map[string]struct{})
	authors := make(map[string]struct{})
	ingredients := make(map[string]struct{})

	for _, r := range corpus {
		names[r.Name] = struct{}{}
		if c := r.CategoryName(); c != "" {
			categories[c] = struct{}{}
		}
		if a := r.AuthorName(); a != "" {
			authors[a] = struct{}{}
		}
		for _, ing := range r.Ingredients {
			ingredients[ing] = struct{}{}
		}
	}

	return Suggestions{
		Names:       sortedKeys(names),
		Categories:  sortedKeys(categories),
		Authors:     sortedKeys(authors),
		Ingredients: sortedKeys(ingredients),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
