package app

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/hypermedia"
	"github.com/stolasapp/cookbook/internal/pagination"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// defaultMetric is the unit of a quantity created without one.
const defaultMetric = "g"

type quantityBody struct {
	IngredientID int64   `json:"ingredient_id"`
	Qty          float64 `json:"qty"`
	Metric       *string `json:"metric"`
}

func (h *handler) listQuantities(c echo.Context) error {
	req, err := listRequest(c)
	if err != nil {
		return err
	}
	recipe := currentRecipe(c)
	quantities, err := h.store.ListQuantities(c.Request().Context(), recipe.ID)
	if err != nil {
		return err
	}
	page, err := pagination.Apply(c.Request().Context(), h.paginator, req, quantities,
		func(q db.RecipeIngredientQty) int64 { return q.ID }, hypermedia.QuantityFields)
	if err != nil {
		return err
	}
	doc := hypermedia.QuantityCollection(recipe.ID, page.Items, h.routes)
	return writeDocument(c, http.StatusOK,
		nextLink(doc, h.routes.RecipeIngredients(recipe.ID), req, page.NextPageToken))
}

func (h *handler) getQuantity(c echo.Context) error {
	return writeDocument(c, http.StatusOK,
		hypermedia.QuantityItem(currentRecipe(c).ID, currentQuantity(c), h.routes))
}

func (h *handler) createQuantity(c echo.Context) error {
	var body quantityBody
	if err := readJSON(c, schema.QuantityCreate, &body); err != nil {
		return err
	}
	metric := defaultMetric
	if body.Metric != nil {
		metric = *body.Metric
	}
	recipe := currentRecipe(c)
	qty, err := h.store.CreateQuantity(c.Request().Context(), db.RecipeIngredientQty{
		RecipeID:     sql.NullInt64{Int64: recipe.ID, Valid: true},
		IngredientID: sql.NullInt64{Int64: body.IngredientID, Valid: true},
		Qty:          body.Qty,
		Metric:       metric,
	})
	if err != nil {
		return integrity(err)
	}
	h.invalidate()
	return created(c, h.routes.RecipeIngredient(recipe.ID, qty.ID))
}

// lookupQuantity returns the quantity of the ingredient in the current recipe.
func (h *handler) lookupQuantity(c echo.Context, ingredientID int64) (db.RecipeIngredientQty, error) {
	qty, err := h.store.GetQuantity(c.Request().Context(), currentRecipe(c).ID, ingredientID)
	if errors.Is(err, storage.ErrNotFound) {
		return qty, errNotFound(kindQuantity)
	}
	return qty, err
}

func (h *handler) updateQuantity(c echo.Context) error {
	var body quantityBody
	if err := readJSON(c, schema.QuantityUpdate, &body); err != nil {
		return err
	}
	qty, err := h.lookupQuantity(c, body.IngredientID)
	if err != nil {
		return err
	}
	qty.Qty = body.Qty
	qty.Metric = *body.Metric
	err = h.store.UpdateQuantity(c.Request().Context(), qty)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindQuantity)
	} else if err != nil {
		return integrity(err)
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteQuantity(c echo.Context) error {
	var body quantityBody
	if err := readJSON(c, schema.QuantityKey, &body); err != nil {
		return err
	}
	qty, err := h.lookupQuantity(c, body.IngredientID)
	if err != nil {
		return err
	}
	err = h.store.DeleteQuantity(c.Request().Context(), qty.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindQuantity)
	} else if err != nil {
		return err
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}
