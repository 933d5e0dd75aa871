package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
)

func TestAddFavoriteAndLookup(t *testing.T) {
	repo := seedSocialRepo(t)
	require.NoError(t, repo.AddRecipe(&models.Recipe{ID: 2, Name: "Beef Stew"}))
	svc := NewFavoriteService(repo)

	_, err := svc.AddFavorite("alice", 1)
	require.NoError(t, err)
	_, err = svc.AddFavorite("alice", 2)
	require.NoError(t, err)

	favorited, err := svc.IsFavorited("alice", 1)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = svc.IsFavorited("bob", 1)
	require.NoError(t, err)
	assert.False(t, favorited)

	recipes, err := svc.Favorites("alice")
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Chocolate Cake", recipes[0].Name)
	assert.Equal(t, "Beef Stew", recipes[1].Name)
}

func TestAddFavoriteDeduplicates(t *testing.T) {
	repo := seedSocialRepo(t)
	svc := NewFavoriteService(repo)

	_, err := svc.AddFavorite("alice", 1)
	require.NoError(t, err)
	_, err = svc.AddFavorite("alice", 1)
	require.NoError(t, err)

	recipes, err := svc.Favorites("alice")
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestAddFavoriteUnknownUserOrRecipe(t *testing.T) {
	svc := NewFavoriteService(seedSocialRepo(t))

	var favErr *FavouriteError
	_, err := svc.AddFavorite("ghost", 1)
	require.ErrorAs(t, err, &favErr)

	_, err = svc.AddFavorite("alice", 999)
	require.ErrorAs(t, err, &favErr)
}

func TestRemoveFavorite(t *testing.T) {
	repo := seedSocialRepo(t)
	svc := NewFavoriteService(repo)

	_, err := svc.AddFavorite("alice", 1)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveFavorite("alice", 1))

	favorited, err := svc.IsFavorited("alice", 1)
	require.NoError(t, err)
	assert.False(t, favorited)

	// Removing an absent favourite of a valid pair is a no-op.
	require.NoError(t, svc.RemoveFavorite("alice", 1))

	err = svc.RemoveFavorite("ghost", 1)
	var favErr *FavouriteError
	require.ErrorAs(t, err, &favErr)
}
