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

type reviewBody struct {
	UserID   *int64  `json:"user_id"`
	Rating   int64   `json:"rating"`
	Feedback *string `json:"feedback"`
}

func (h *handler) listReviews(c echo.Context) error {
	req, err := listRequest(c)
	if err != nil {
		return err
	}
	recipe := currentRecipe(c)
	reviews, err := h.store.ListReviews(c.Request().Context(), recipe.ID)
	if err != nil {
		return err
	}
	page, err := pagination.Apply(c.Request().Context(), h.paginator, req, reviews,
		func(r db.Review) int64 { return r.ID }, hypermedia.ReviewFields)
	if err != nil {
		return err
	}
	doc := hypermedia.ReviewCollection(recipe.ID, page.Items, h.routes)
	return writeDocument(c, http.StatusOK,
		nextLink(doc, h.routes.RecipeReviews(recipe.ID), req, page.NextPageToken))
}

// createReview adds a review to the current recipe. Persistence failures of
// reviews surface their raw cause as a 500.
func (h *handler) createReview(c echo.Context) error {
	var body reviewBody
	if err := readJSON(c, schema.Review, &body); err != nil {
		return err
	}
	review, err := h.store.CreateReview(c.Request().Context(), db.Review{
		UserID:   db.NullInt64(body.UserID),
		RecipeID: sql.NullInt64{Int64: currentRecipe(c).ID, Valid: true},
		Rating:   body.Rating,
		Feedback: db.NullString(body.Feedback),
	})
	if err != nil {
		return errServer(err)
	}
	h.invalidate()
	return created(c, h.routes.Review(review.ID))
}

func (h *handler) getReview(c echo.Context) error {
	return writeDocument(c, http.StatusOK, hypermedia.ReviewItem(currentReview(c), h.routes))
}

func (h *handler) updateReview(c echo.Context) error {
	var body reviewBody
	if err := readJSON(c, schema.Review, &body); err != nil {
		return err
	}
	review := currentReview(c)
	review.UserID = db.NullInt64(body.UserID)
	review.Rating = body.Rating
	review.Feedback = db.NullString(body.Feedback)
	err := h.store.UpdateReview(c.Request().Context(), review)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindReview)
	} else if err != nil {
		return errServer(err)
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteReview(c echo.Context) error {
	err := h.store.DeleteReview(c.Request().Context(), currentReview(c).ID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindReview)
	} else if err != nil {
		return err
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}
