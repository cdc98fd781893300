package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrLoadFailure    = errors.New("failed to load recipes")
	ErrPersistFailure = errors.New("failed to save recipes")
	ErrInvalidRecipe  = errors.New("invalid recipe")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrNoRecipes      = errors.New("no recipes yet")
	ErrNoTimer        = errors.New("no timer for that recipe")
)
