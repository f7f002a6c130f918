package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/hypermedia"
	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/pagination"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

type recipeBody struct {
	UserID          *int64  `json:"user_id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	Steps           string  `json:"steps"`
	PreparationTime string  `json:"preparation_time"`
	CookingTime     string  `json:"cooking_time"`
	Serving         int64   `json:"serving"`
}

func (b recipeBody) recipe(id int64) db.Recipe {
	return db.Recipe{
		ID:              id,
		UserID:          db.NullInt64(b.UserID),
		Title:           b.Title,
		Description:     db.NullString(b.Description),
		Steps:           b.Steps,
		PreparationTime: b.PreparationTime,
		CookingTime:     b.CookingTime,
		Serving:         b.Serving,
	}
}

func integrity(err error) error {
	if errors.Is(err, storage.ErrInvalidReference) || errors.Is(err, storage.ErrAlreadyExists) {
		return errIntegrity(err)
	}
	return err
}

// listRecipes serves the recipe collection. The unfiltered first page is
// served from the list cache.
func (h *handler) listRecipes(c echo.Context) error {
	req, err := listRequest(c)
	if err != nil {
		return err
	}

	cacheable := req == pagination.Request{}
	if cacheable {
		data, ok := h.cache.Get(recipesCacheKey)
		h.observeCache(ok)
		if ok {
			return c.Blob(http.StatusOK, mason.MediaType, data)
		}
	}

	recipes, err := h.store.ListRecipes(c.Request().Context())
	if err != nil {
		return err
	}
	page, err := pagination.Apply(c.Request().Context(), h.paginator, req, recipes,
		func(r storage.RecipeDetail) int64 { return r.ID }, hypermedia.RecipeFields)
	if err != nil {
		return err
	}
	doc := nextLink(hypermedia.RecipeCollection(page.Items, h.routes), h.routes.Recipes(), req, page.NextPageToken)
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if cacheable {
		h.cache.Set(recipesCacheKey, data, h.cacheTTL)
	}
	return c.Blob(http.StatusOK, mason.MediaType, data)
}

func (h *handler) observeCache(hit bool) {
	if h.metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	h.metrics.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (h *handler) createRecipe(c echo.Context) error {
	var body recipeBody
	if err := readJSON(c, schema.Recipe, &body); err != nil {
		return err
	}
	recipe, err := h.store.CreateRecipe(c.Request().Context(), body.recipe(0))
	if err != nil {
		return integrity(err)
	}
	h.invalidate()
	return created(c, h.routes.Recipe(recipe.ID))
}

func (h *handler) getRecipe(c echo.Context) error {
	return writeDocument(c, http.StatusOK, hypermedia.RecipeItem(currentRecipe(c), h.routes))
}

func (h *handler) updateRecipe(c echo.Context) error {
	var body recipeBody
	if err := readJSON(c, schema.Recipe, &body); err != nil {
		return err
	}
	err := h.store.UpdateRecipe(c.Request().Context(), body.recipe(currentRecipe(c).ID))
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindRecipe)
	} else if err != nil {
		return integrity(err)
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteRecipe(c echo.Context) error {
	err := h.store.DeleteRecipe(c.Request().Context(), currentRecipe(c).ID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindRecipe)
	} else if err != nil {
		return err
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}
