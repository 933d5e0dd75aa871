package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/repository"
	"github.com/plateful/backend/internal/service"
)

// Dependencies bundles everything the handlers are built from. Redis,
// Images and HealthDB are optional: without Redis the suggestion cache
// and review rate limiting are disabled, without Images the upload
// endpoint reports unavailable, and without HealthDB the health
// endpoint skips the database probe.
type Dependencies struct {
	Repo      repository.Repository
	JWTSecret string
	Redis     *redis.Client
	Images    *service.ImageService
	HealthDB  *database.DB
}

// healthHandler reports liveness, probing the database when one is
// attached.
func healthHandler(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				log.Printf("[Health] database probe failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  "database unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Plateful API is running",
			"version": "v1.0.0",
		})
	}
}

// RegisterRoutes wires every handler onto the router.
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	health := healthHandler(deps.HealthDB)
	router.GET("/health", health)
	router.GET("/api/health", health)

	authService := service.NewAuthService(deps.Repo, deps.JWTSecret)
	searchService := service.NewSearchService(deps.Repo, deps.Redis)
	recipeService := service.NewRecipeService(deps.Repo)
	reviewService := service.NewReviewService(deps.Repo)
	favoriteService := service.NewFavoriteService(deps.Repo)

	var reviewLimiter *middleware.RateLimiter
	if deps.Redis != nil {
		reviewLimiter = middleware.NewReviewRateLimiter(deps.Redis)
	} else {
		log.Printf("Redis not configured; review rate limiting disabled")
	}

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewSearchHandler(searchService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, favoriteService, authService, deps.Images).RegisterRoutes(v1)
	NewReviewHandler(reviewService, authService, reviewLimiter).RegisterRoutes(v1)
}
