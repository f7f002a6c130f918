// Package storage provides the state management for the cookbook entities and
// the API key credential store.
package storage

import (
	"context"

	"github.com/stolasapp/cookbook/internal/storage/db"
)

const (
	// ErrNotFound is returned when an entity cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a unique field value is already in use.
	ErrAlreadyExists Error = "already exists"
	// ErrInvalidReference is returned when a foreign key does not resolve to an
	// existing row.
	ErrInvalidReference Error = "invalid reference"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// RecipeDetail is a recipe together with its ingredient quantities and
// reviews, in insertion order.
type RecipeDetail struct {
	db.Recipe
	Ingredients []db.RecipeIngredientLine
	Reviews     []db.RecipeReviewLine
}

// Users are the methods on a storage implementation that are responsible for
// accessing and modifying users.
type Users interface {
	// ListUsers returns all users ordered by ID.
	ListUsers(ctx context.Context) ([]db.User, error)
	// GetUserByUsername returns the user with the given username. An
	// [ErrNotFound] is returned if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (db.User, error)
	// CreateUser inserts the user and returns it with its assigned ID. An
	// [ErrAlreadyExists] is returned if the username or email is in use.
	CreateUser(ctx context.Context, user db.User) (db.User, error)
	// UpdateUser replaces every field of the user with the given ID.
	UpdateUser(ctx context.Context, user db.User) error
	// DeleteUser removes the user. Recipes and reviews they authored are kept
	// with their user reference cleared.
	DeleteUser(ctx context.Context, userID int64) error
}

// Ingredients are the methods responsible for the ingredient catalogue.
type Ingredients interface {
	ListIngredients(ctx context.Context) ([]db.Ingredient, error)
	GetIngredientByName(ctx context.Context, name string) (db.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient db.Ingredient) (db.Ingredient, error)
	UpdateIngredient(ctx context.Context, ingredient db.Ingredient) error
	// DeleteIngredient removes the ingredient, clearing the ingredient
	// reference of any quantity that used it.
	DeleteIngredient(ctx context.Context, ingredientID int64) error
}

// Recipes are the methods responsible for recipes.
type Recipes interface {
	ListRecipes(ctx context.Context) ([]RecipeDetail, error)
	GetRecipe(ctx context.Context, recipeID int64) (RecipeDetail, error)
	CreateRecipe(ctx context.Context, recipe db.Recipe) (db.Recipe, error)
	// UpdateRecipe replaces every field except the owning user.
	UpdateRecipe(ctx context.Context, recipe db.Recipe) error
	// DeleteRecipe removes the recipe, clearing the recipe reference of its
	// quantities and reviews.
	DeleteRecipe(ctx context.Context, recipeID int64) error
}

// Quantities are the methods responsible for ingredient quantities of a
// recipe.
type Quantities interface {
	ListQuantities(ctx context.Context, recipeID int64) ([]db.RecipeIngredientQty, error)
	// GetQuantity returns the first quantity row joining the recipe and
	// ingredient.
	GetQuantity(ctx context.Context, recipeID, ingredientID int64) (db.RecipeIngredientQty, error)
	// GetQuantityByID returns the quantity row of the recipe with the given
	// ID.
	GetQuantityByID(ctx context.Context, recipeID, qtyID int64) (db.RecipeIngredientQty, error)
	CreateQuantity(ctx context.Context, qty db.RecipeIngredientQty) (db.RecipeIngredientQty, error)
	// UpdateQuantity replaces the qty and metric of the row with the given ID.
	UpdateQuantity(ctx context.Context, qty db.RecipeIngredientQty) error
	DeleteQuantity(ctx context.Context, qtyID int64) error
}

// Reviews are the methods responsible for recipe reviews.
type Reviews interface {
	ListReviews(ctx context.Context, recipeID int64) ([]db.Review, error)
	GetReview(ctx context.Context, reviewID int64) (db.Review, error)
	CreateReview(ctx context.Context, review db.Review) (db.Review, error)
	// UpdateReview replaces the author, rating and feedback of the review.
	UpdateReview(ctx context.Context, review db.Review) error
	DeleteReview(ctx context.Context, reviewID int64) error
}

// APIKeys is the credential store consulted by the auth guard.
type APIKeys interface {
	// GetAdminKey returns the admin key row. An [ErrNotFound] is returned if
	// no admin key has been configured.
	GetAdminKey(ctx context.Context) (db.APIKey, error)
	// ReplaceAdminKey atomically removes any admin keys and stores hash as the
	// new admin key digest.
	ReplaceAdminKey(ctx context.Context, hash []byte) error
}

// Store is the combination of every storage interface.
type Store interface {
	Users
	Ingredients
	Recipes
	Quantities
	Reviews
	APIKeys
	// ClearEntities removes every user, recipe, ingredient, quantity and
	// review. API keys are kept.
	ClearEntities(ctx context.Context) error
	// Drop removes the schema and all data. The store must not be used
	// afterward except to Close it.
	Drop(ctx context.Context) error
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
