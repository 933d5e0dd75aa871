package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
)

// SearchHandler exposes the search endpoint.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// RegisterRoutes registers the search endpoint.
func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", h.Search)
}

// Search runs the filter/sort/paginate pipeline. Query parameters:
// q (free text), filter_by (name/category/author/ingredients),
// page, page_size. Bad pagination inputs are clamped, never rejected.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	filterBy := c.Query("filter_by")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	result, err := h.search.Search(c.Request.Context(), query, filterBy, page, pageSize)
	if err != nil {
		log.Printf("[SearchHandler] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search recipes"})
		return
	}

	c.JSON(http.StatusOK, result)
}
