package service

import (
	"time"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

// ReviewService applies the review domain rules on top of the
// repository: both user and recipe must exist to review, and only the
// owner of a review may remove it.
type ReviewService struct {
	repo repository.Repository
}

// NewReviewService creates a ReviewService.
func NewReviewService(repo repository.Repository) *ReviewService {
	return &ReviewService{repo: repo}
}

// AddReview records a rating and write-up against a recipe. The
// recipe's aggregate rating is recomputed synchronously. Returns
// *ReviewError when the user or recipe does not exist or the rating is
// out of range.
func (s *ReviewService) AddReview(username string, recipeID int, body string, rating int, date time.Time) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, &ReviewError{Message: "rating must be between 1 and 5"}
	}

	recipe, err := s.repo.GetRecipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUser(username)
	if err != nil {
		return nil, err
	}
	if recipe == nil || user == nil {
		return nil, &ReviewError{Message: "recipe or user not found"}
	}

	if date.IsZero() {
		date = time.Now()
	}
	review := &models.Review{
		Username: username,
		RecipeID: recipeID,
		Rating:   rating,
		Body:     body,
		Date:     date,
	}
	if err := s.repo.AddReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

// RemoveReview deletes a review from both the recipe's and the user's
// collections, provided it exists and belongs to the requesting user.
func (s *ReviewService) RemoveReview(username string, recipeID, reviewID int) error {
	recipe, err := s.repo.GetRecipeByID(recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return &ReviewError{Message: "recipe not found"}
	}

	for _, review := range recipe.Reviews {
		if review.ID == reviewID && review.Username == username {
			target := review
			return s.repo.RemoveReview(&target)
		}
	}
	return &ReviewError{Message: "review not found or not owned by user"}
}

// ReviewsForRecipe returns all reviews of a recipe, empty when the
// recipe does not exist.
func (s *ReviewService) ReviewsForRecipe(recipeID int) ([]models.Review, error) {
	recipe, err := s.repo.GetRecipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, nil
	}
	return recipe.Reviews, nil
}
