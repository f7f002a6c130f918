package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/hypermedia"
	"github.com/stolasapp/cookbook/internal/pagination"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

type ingredientBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (b ingredientBody) ingredient(id int64) db.Ingredient {
	return db.Ingredient{
		ID:          id,
		Name:        b.Name,
		Description: db.NullString(b.Description),
	}
}

func ingredientConflict(err error, name string) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return errConflict(err, "Already exists",
			fmt.Sprintf("Ingredient name '%s' is already exists.", name))
	}
	return err
}

func (h *handler) listIngredients(c echo.Context) error {
	req, err := listRequest(c)
	if err != nil {
		return err
	}
	ingredients, err := h.store.ListIngredients(c.Request().Context())
	if err != nil {
		return err
	}
	page, err := pagination.Apply(c.Request().Context(), h.paginator, req, ingredients,
		func(i db.Ingredient) int64 { return i.ID }, hypermedia.IngredientFields)
	if err != nil {
		return err
	}
	doc := hypermedia.IngredientCollection(page.Items, h.routes)
	return writeDocument(c, http.StatusOK, nextLink(doc, h.routes.Ingredients(), req, page.NextPageToken))
}

func (h *handler) createIngredient(c echo.Context) error {
	var body ingredientBody
	if err := readJSON(c, schema.Ingredient, &body); err != nil {
		return err
	}
	ingredient, err := h.store.CreateIngredient(c.Request().Context(), body.ingredient(0))
	if err != nil {
		return ingredientConflict(err, body.Name)
	}
	h.invalidate()
	return created(c, h.routes.Ingredient(ingredient.Key()))
}

func (h *handler) getIngredient(c echo.Context) error {
	return writeDocument(c, http.StatusOK, hypermedia.IngredientItem(currentIngredient(c), h.routes))
}

func (h *handler) updateIngredient(c echo.Context) error {
	var body ingredientBody
	if err := readJSON(c, schema.Ingredient, &body); err != nil {
		return err
	}
	err := h.store.UpdateIngredient(c.Request().Context(), body.ingredient(currentIngredient(c).ID))
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindIngredient)
	} else if err != nil {
		return ingredientConflict(err, body.Name)
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteIngredient(c echo.Context) error {
	err := h.store.DeleteIngredient(c.Request().Context(), currentIngredient(c).ID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindIngredient)
	} else if err != nil {
		return err
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}
