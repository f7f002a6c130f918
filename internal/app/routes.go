package app

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/hypermedia"
)

// Route names, reversed by [echoRoutes].
const (
	routeUsers             = "users"
	routeUser              = "user"
	routeIngredients       = "ingredients"
	routeIngredient        = "ingredient"
	routeRecipes           = "recipes"
	routeRecipe            = "recipe"
	routeRecipeIngredients = "recipe-ingredients"
	routeRecipeIngredient  = "recipe-ingredient"
	routeRecipeReviews     = "recipe-reviews"
	routeReview            = "review"
)

// echoRoutes generates hrefs by reversing the named routes of the server.
type echoRoutes struct {
	e *echo.Echo
}

func (r echoRoutes) Users() string {
	return r.e.Reverse(routeUsers)
}

func (r echoRoutes) User(username string) string {
	return r.e.Reverse(routeUser, url.PathEscape(username))
}

func (r echoRoutes) Ingredients() string {
	return r.e.Reverse(routeIngredients)
}

func (r echoRoutes) Ingredient(name string) string {
	return r.e.Reverse(routeIngredient, url.PathEscape(name))
}

func (r echoRoutes) Recipes() string {
	return r.e.Reverse(routeRecipes)
}

func (r echoRoutes) Recipe(recipeID int64) string {
	return r.e.Reverse(routeRecipe, strconv.FormatInt(recipeID, 10))
}

func (r echoRoutes) RecipeIngredients(recipeID int64) string {
	return r.e.Reverse(routeRecipeIngredients, strconv.FormatInt(recipeID, 10))
}

func (r echoRoutes) RecipeIngredient(recipeID, qtyID int64) string {
	return r.e.Reverse(routeRecipeIngredient, strconv.FormatInt(recipeID, 10), strconv.FormatInt(qtyID, 10))
}

func (r echoRoutes) RecipeReviews(recipeID int64) string {
	return r.e.Reverse(routeRecipeReviews, strconv.FormatInt(recipeID, 10))
}

func (r echoRoutes) Review(reviewID int64) string {
	return r.e.Reverse(routeReview, strconv.FormatInt(reviewID, 10))
}

var _ hypermedia.Routes = echoRoutes{}
