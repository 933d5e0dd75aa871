package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, repository.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	chefJohn := &models.Author{ID: 1, Name: "Chef John"}
	dessert := &models.Category{ID: 1, Name: "Dessert"}
	require.NoError(t, repo.AddAuthor(chefJohn))
	require.NoError(t, repo.AddCategory(dessert))
	require.NoError(t, repo.AddRecipe(&models.Recipe{
		ID: 1, Name: "Chocolate Cake",
		AuthorID: 1, Author: chefJohn, CategoryID: 1, Category: dessert,
		Ingredients: models.JSONBStringArray{"flour", "sugar", "chocolate"},
	}))
	sugar := 25.0
	require.NoError(t, repo.AddNutrition(&models.Nutrition{RecipeID: 1, Sugar: &sugar}))

	router := gin.New()
	RegisterRoutes(router, Dependencies{Repo: repo, JWTSecret: "test-secret"})
	return router, repo
}

func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": username, "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := doJSON(router, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "healthy")
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	registerUser(t, router, "alice")

	// Duplicate username conflicts.
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "alice", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Binding rejects short usernames and passwords.
	w = doJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "al", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "bob", "password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := setupRouter(t)
	registerUser(t, router, "alice")

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice", "password": "wrongpass",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/search?q=chocolate&filter_by=ingredients", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalRecipes int `json:"total_recipes"`
		Recipes      []struct {
			Name string `json:"name"`
		} `json:"recipes"`
		Pagination struct {
			Page       int `json:"page"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalRecipes)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Chocolate Cake", resp.Recipes[0].Name)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestListRecipesEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/recipes?page=1&sort=name", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chocolate Cake")
}

func TestGetRecipeEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/recipes/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipe struct {
			Name string `json:"name"`
		} `json:"recipe"`
		HealthStars *float64 `json:"health_stars"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Chocolate Cake", resp.Recipe.Name)
	require.NotNil(t, resp.HealthStars)
	assert.Equal(t, 2.0, *resp.HealthStars)

	w = doJSON(router, http.MethodGet, "/api/v1/recipes/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/recipes/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoriteFlow(t *testing.T) {
	router, _ := setupRouter(t)
	token := registerUser(t, router, "alice")

	// Authentication is required.
	w := doJSON(router, http.MethodPost, "/api/v1/recipes/1/favorite", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/recipes/1/favorite", nil, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	// The detail endpoint reflects the caller's bookmark.
	w = doJSON(router, http.MethodGet, "/api/v1/recipes/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		IsFavorited bool `json:"is_favorited"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.True(t, detail.IsFavorited)

	w = doJSON(router, http.MethodGet, "/api/v1/favorites", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chocolate Cake")

	w = doJSON(router, http.MethodDelete, "/api/v1/recipes/1/favorite", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Favoriting an unknown recipe is a 404.
	w = doJSON(router, http.MethodPost, "/api/v1/recipes/999/favorite", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReferenceDataEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dessert")

	w = doJSON(router, http.MethodGet, "/api/v1/authors", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chef John")
}

func TestUploadImageWithoutStorage(t *testing.T) {
	router, _ := setupRouter(t)
	token := registerUser(t, router, "alice")

	w := doJSON(router, http.MethodPost, "/api/v1/recipes/1/image", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No object storage is configured in tests.
	w = doJSON(router, http.MethodPost, "/api/v1/recipes/1/image", nil, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReviewFlow(t *testing.T) {
	router, _ := setupRouter(t)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")

	w := doJSON(router, http.MethodPost, "/api/v1/recipes/1/reviews", gin.H{
		"rating": 4, "body": "lovely",
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Review struct {
			ID int `json:"id"`
		} `json:"review"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Review.ID)

	w = doJSON(router, http.MethodGet, "/api/v1/recipes/1/reviews", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lovely")

	// Out-of-range ratings never reach the service.
	w = doJSON(router, http.MethodPost, "/api/v1/recipes/1/reviews", gin.H{
		"rating": 6,
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Only the owner may remove a review.
	path := fmt.Sprintf("/api/v1/recipes/1/reviews/%d", created.Review.ID)
	w = doJSON(router, http.MethodDelete, path, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodDelete, path, nil, alice)
	assert.Equal(t, http.StatusOK, w.Code)
}
