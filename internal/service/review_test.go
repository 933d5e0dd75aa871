package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

func seedSocialRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.AddUser(&models.User{Username: "alice", PasswordHash: "h"}))
	require.NoError(t, repo.AddUser(&models.User{Username: "bob", PasswordHash: "h"}))
	require.NoError(t, repo.AddRecipe(&models.Recipe{ID: 1, Name: "Chocolate Cake"}))
	return repo
}

func TestAddReviewUpdatesRating(t *testing.T) {
	repo := seedSocialRepo(t)
	svc := NewReviewService(repo)

	review, err := svc.AddReview("alice", 1, "lovely", 4, time.Now())
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.NotZero(t, review.ID)

	recipe, err := repo.GetRecipeByID(1)
	require.NoError(t, err)
	require.NotNil(t, recipe.Rating)
	assert.Equal(t, 4.0, *recipe.Rating)

	_, err = svc.AddReview("bob", 1, "dry", 1, time.Now())
	require.NoError(t, err)

	recipe, err = repo.GetRecipeByID(1)
	require.NoError(t, err)
	require.NotNil(t, recipe.Rating)
	assert.Equal(t, 2.5, *recipe.Rating)
}

func TestAddReviewRatingOutOfRange(t *testing.T) {
	svc := NewReviewService(seedSocialRepo(t))

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AddReview("alice", 1, "", rating, time.Time{})
		var revErr *ReviewError
		require.ErrorAs(t, err, &revErr, "rating %d", rating)
	}
}

func TestAddReviewUnknownUserOrRecipe(t *testing.T) {
	svc := NewReviewService(seedSocialRepo(t))

	_, err := svc.AddReview("ghost", 1, "", 3, time.Time{})
	var revErr *ReviewError
	require.ErrorAs(t, err, &revErr)

	_, err = svc.AddReview("alice", 999, "", 3, time.Time{})
	require.ErrorAs(t, err, &revErr)
}

func TestAddReviewDefaultsDate(t *testing.T) {
	svc := NewReviewService(seedSocialRepo(t))

	review, err := svc.AddReview("alice", 1, "", 3, time.Time{})
	require.NoError(t, err)
	assert.False(t, review.Date.IsZero())
}

func TestRemoveReviewOwnership(t *testing.T) {
	repo := seedSocialRepo(t)
	svc := NewReviewService(repo)

	review, err := svc.AddReview("alice", 1, "mine", 5, time.Now())
	require.NoError(t, err)

	// Another user cannot remove it, and the review stays put.
	err = svc.RemoveReview("bob", 1, review.ID)
	var revErr *ReviewError
	require.ErrorAs(t, err, &revErr)

	reviews, err := svc.ReviewsForRecipe(1)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	// The owner can.
	require.NoError(t, svc.RemoveReview("alice", 1, review.ID))
	reviews, err = svc.ReviewsForRecipe(1)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	recipe, err := repo.GetRecipeByID(1)
	require.NoError(t, err)
	assert.Nil(t, recipe.Rating)
}

func TestRemoveReviewUnknownRecipe(t *testing.T) {
	svc := NewReviewService(seedSocialRepo(t))

	err := svc.RemoveReview("alice", 999, 1)
	var revErr *ReviewError
	require.ErrorAs(t, err, &revErr)
}

func TestReviewsForMissingRecipe(t *testing.T) {
	svc := NewReviewService(seedSocialRepo(t))

	reviews, err := svc.ReviewsForRecipe(999)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
