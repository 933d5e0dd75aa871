package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// RecipeHandler exposes browse, detail, favourite and image upload
// endpoints.
type RecipeHandler struct {
	recipes   *service.RecipeService
	favorites *service.FavoriteService
	auth      *service.AuthService
	images    *service.ImageService
}

// NewRecipeHandler creates a new RecipeHandler. images may be nil when
// no object storage is configured.
func NewRecipeHandler(recipes *service.RecipeService, favorites *service.FavoriteService, auth *service.AuthService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, favorites: favorites, auth: auth, images: images}
}

// RegisterRoutes registers the recipe and favourite endpoints.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.UnfavoriteRecipe)
		recipes.POST("/:id/image", middleware.AuthMiddleware(h.auth), h.UploadImage)
	}
	router.GET("/favorites", middleware.AuthMiddleware(h.auth), h.ListFavorites)
	router.GET("/categories", h.ListCategories)
	router.GET("/authors", h.ListAuthors)
}

// ListCategories returns all recipe categories keyed by name.
func (h *RecipeHandler) ListCategories(c *gin.Context) {
	categories, err := h.recipes.GetCategories()
	if err != nil {
		log.Printf("[RecipeHandler] categories failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListAuthors returns all recipe authors keyed by id.
func (h *RecipeHandler) ListAuthors(c *gin.Context) {
	authors, err := h.recipes.GetAuthors()
	if err != nil {
		log.Printf("[RecipeHandler] authors failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch authors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors})
}

// ListRecipes returns one page of the catalog. Query parameters: page,
// page_size, sort (name/name_desc/id/id_desc).
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	sort := c.Query("sort")

	recipes, err := h.recipes.GetRecipes(page, pageSize, sort)
	if err != nil {
		log.Printf("[RecipeHandler] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns a recipe with its nutrition and health-star
// rating. When the request carries a valid token, is_favorited
// reflects the caller's bookmark state.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(id)
	if err != nil {
		log.Printf("[RecipeHandler] get %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	nutrition, stars, err := h.recipes.GetNutrition(id)
	if err != nil {
		log.Printf("[RecipeHandler] nutrition for %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	response := gin.H{
		"recipe":       recipe,
		"nutrition":    nutrition,
		"health_stars": stars,
	}

	if username := h.optionalUsername(c); username != "" {
		favorited, err := h.favorites.IsFavorited(username, id)
		if err == nil {
			response["is_favorited"] = favorited
		}
	}

	c.JSON(http.StatusOK, response)
}

// FavoriteRecipe bookmarks the recipe for the authenticated user.
func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	username := c.GetString("username")

	if _, err := h.favorites.AddFavorite(username, id); err != nil {
		var favErr *service.FavouriteError
		if errors.As(err, &favErr) {
			c.JSON(http.StatusNotFound, gin.H{"error": favErr.Message})
			return
		}
		log.Printf("[RecipeHandler] favorite %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to favorite recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "recipe favorited"})
}

// UnfavoriteRecipe removes the authenticated user's bookmark.
func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	username := c.GetString("username")

	if err := h.favorites.RemoveFavorite(username, id); err != nil {
		var favErr *service.FavouriteError
		if errors.As(err, &favErr) {
			c.JSON(http.StatusNotFound, gin.H{"error": favErr.Message})
			return
		}
		log.Printf("[RecipeHandler] unfavorite %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfavorite recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe unfavorited"})
}

// ListFavorites returns the authenticated user's bookmarked recipes.
func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	username := c.GetString("username")

	recipes, err := h.favorites.Favorites(username)
	if err != nil {
		log.Printf("[RecipeHandler] favorites for %s failed: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// maxImageSize caps uploaded recipe images at 10 MB.
const maxImageSize = 10 << 20

// UploadImage stores an uploaded image in object storage and appends
// its public URL to the recipe's image list.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(id)
	if err != nil {
		log.Printf("[RecipeHandler] get %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 10MB limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, data, filepath.Ext(file.Filename))
	if err != nil {
		log.Printf("[RecipeHandler] image upload for %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	if err := h.recipes.AttachImage(id, url); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		log.Printf("[RecipeHandler] attach image to %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// optionalUsername extracts the username from a bearer token when one
// is present, without requiring authentication.
func (h *RecipeHandler) optionalUsername(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}
	claims, err := h.auth.ValidateToken(header[len(prefix):])
	if err != nil {
		return ""
	}
	return claims.Username
}
