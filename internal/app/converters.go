package app

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/storage"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// Context keys of the entities resolved from the path.
const (
	userKey       = "cookbook.user"
	ingredientKey = "cookbook.ingredient"
	recipeKey     = "cookbook.recipe"
	reviewKey     = "cookbook.review"
	quantityKey   = "cookbook.quantity"
)

// Resource kinds named in not found errors.
const (
	kindUser       = "User"
	kindIngredient = "Ingredient"
	kindRecipe     = "Recipe"
	kindReview     = "Review"
	kindQuantity   = "Recipe Ingredient Quantity"
)

// resolve returns a middleware that loads the entity identified by the path
// parameter param and stores it under key before next runs. Unresolvable keys
// end the request with a 404.
func resolve[E any](
	param, key, kind string,
	load func(c echo.Context, segment string) (E, error),
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			segment, err := pathParam(c, param)
			if err != nil {
				return errNotFound(kind)
			}
			entity, err := load(c, segment)
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound(kind)
			} else if err != nil {
				return err
			}
			c.Set(key, entity)
			return next(c)
		}
	}
}

func parseID(segment string) (int64, error) {
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil || id <= 0 {
		return 0, storage.ErrNotFound
	}
	return id, nil
}

func (h *handler) loadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return resolve("username", userKey, kindUser, func(c echo.Context, username string) (db.User, error) {
		return h.store.GetUserByUsername(c.Request().Context(), username)
	})(next)
}

func (h *handler) loadIngredient(next echo.HandlerFunc) echo.HandlerFunc {
	return resolve("name", ingredientKey, kindIngredient, func(c echo.Context, name string) (db.Ingredient, error) {
		return h.store.GetIngredientByName(c.Request().Context(), name)
	})(next)
}

func (h *handler) loadRecipe(next echo.HandlerFunc) echo.HandlerFunc {
	return resolve("recipe", recipeKey, kindRecipe, func(c echo.Context, segment string) (storage.RecipeDetail, error) {
		id, err := parseID(segment)
		if err != nil {
			return storage.RecipeDetail{}, err
		}
		return h.store.GetRecipe(c.Request().Context(), id)
	})(next)
}

func (h *handler) loadReview(next echo.HandlerFunc) echo.HandlerFunc {
	return resolve("review", reviewKey, kindReview, func(c echo.Context, segment string) (db.Review, error) {
		id, err := parseID(segment)
		if err != nil {
			return db.Review{}, err
		}
		return h.store.GetReview(c.Request().Context(), id)
	})(next)
}

// loadQuantity resolves a quantity of the recipe loaded by loadRecipe, which
// must run first.
func (h *handler) loadQuantity(next echo.HandlerFunc) echo.HandlerFunc {
	return resolve("qty", quantityKey, kindQuantity, func(c echo.Context, segment string) (db.RecipeIngredientQty, error) {
		id, err := parseID(segment)
		if err != nil {
			return db.RecipeIngredientQty{}, err
		}
		return h.store.GetQuantityByID(c.Request().Context(), currentRecipe(c).ID, id)
	})(next)
}

func currentUser(c echo.Context) db.User {
	return c.Get(userKey).(db.User) //nolint:forcetypeassert // set by loadUser
}

func currentIngredient(c echo.Context) db.Ingredient {
	return c.Get(ingredientKey).(db.Ingredient) //nolint:forcetypeassert // set by loadIngredient
}

func currentRecipe(c echo.Context) storage.RecipeDetail {
	return c.Get(recipeKey).(storage.RecipeDetail) //nolint:forcetypeassert // set by loadRecipe
}

func currentReview(c echo.Context) db.Review {
	return c.Get(reviewKey).(db.Review) //nolint:forcetypeassert // set by loadReview
}

func currentQuantity(c echo.Context) db.RecipeIngredientQty {
	return c.Get(quantityKey).(db.RecipeIngredientQty) //nolint:forcetypeassert // set by loadQuantity
}
