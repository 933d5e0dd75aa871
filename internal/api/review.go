package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	reviews     *service.ReviewService
	auth        *service.AuthService
	rateLimiter *middleware.RateLimiter
}

// NewReviewHandler creates a new ReviewHandler. rateLimiter may be nil
// when Redis is not configured.
func NewReviewHandler(reviews *service.ReviewService, auth *service.AuthService, rateLimiter *middleware.RateLimiter) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, auth: auth, rateLimiter: rateLimiter}
}

// RegisterRoutes registers the review endpoints.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/recipes/:id/reviews")
	reviews.GET("", h.ListReviews)

	authed := reviews.Group("", middleware.AuthMiddleware(h.auth))
	if h.rateLimiter != nil {
		authed.POST("", h.rateLimiter.RateLimitMiddleware(), h.AddReview)
	} else {
		authed.POST("", h.AddReview)
	}
	authed.DELETE("/:reviewID", h.RemoveReview)
}

type addReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Body   string `json:"body"`
}

// ListReviews returns all reviews of a recipe.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	reviews, err := h.reviews.ReviewsForRecipe(id)
	if err != nil {
		log.Printf("[ReviewHandler] list for %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// AddReview records a review by the authenticated user.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	username := c.GetString("username")

	review, err := h.reviews.AddReview(username, id, req.Body, req.Rating, time.Now())
	if err != nil {
		var revErr *service.ReviewError
		if errors.As(err, &revErr) {
			c.JSON(http.StatusNotFound, gin.H{"error": revErr.Message})
			return
		}
		log.Printf("[ReviewHandler] add for %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// RemoveReview deletes the authenticated user's review.
func (h *ReviewHandler) RemoveReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	reviewID, err := strconv.Atoi(c.Param("reviewID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	username := c.GetString("username")

	if err := h.reviews.RemoveReview(username, id, reviewID); err != nil {
		var revErr *service.ReviewError
		if errors.As(err, &revErr) {
			c.JSON(http.StatusNotFound, gin.H{"error": revErr.Message})
			return
		}
		log.Printf("[ReviewHandler] remove %d failed: %v", reviewID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review removed"})
}
