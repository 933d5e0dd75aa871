package service

import "errors"

// ErrRecipeNotFound signals an operation against a recipe that does
// not exist in the catalog.
var ErrRecipeNotFound = errors.New("recipe not found")

// ReviewError signals a review domain-rule violation: reviewing a
// nonexistent user or recipe, an out-of-range rating, or removing a
// review the requester does not own. Callers translate it into user
// feedback rather than treating it as a storage failure.
type ReviewError struct {
	Message string
}

func (e *ReviewError) Error() string {
	return e.Message
}

// FavouriteError signals a favourite domain-rule violation, such as
// favoriting on behalf of a nonexistent user or recipe.
type FavouriteError struct {
	Message string
}

func (e *FavouriteError) Error() string {
	return e.Message
}
