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

type userBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b userBody) user(id int64) db.User {
	return db.User{
		ID:       id,
		Email:    b.Email,
		Username: b.Username,
		Password: b.Password,
	}
}

func userConflict(err error, username string) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return errConflict(err, "User already exists",
			fmt.Sprintf("A user with '%s' already exists.", username))
	}
	return err
}

func (h *handler) listUsers(c echo.Context) error {
	req, err := listRequest(c)
	if err != nil {
		return err
	}
	users, err := h.store.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	page, err := pagination.Apply(c.Request().Context(), h.paginator, req, users,
		func(u db.User) int64 { return u.ID }, hypermedia.UserFields)
	if err != nil {
		return err
	}
	doc := hypermedia.UserCollection(page.Items, h.routes)
	return writeDocument(c, http.StatusOK, nextLink(doc, h.routes.Users(), req, page.NextPageToken))
}

func (h *handler) createUser(c echo.Context) error {
	var body userBody
	if err := readJSON(c, schema.User, &body); err != nil {
		return err
	}
	user, err := h.store.CreateUser(c.Request().Context(), body.user(0))
	if err != nil {
		return userConflict(err, body.Username)
	}
	h.invalidate()
	return created(c, h.routes.User(user.Key()))
}

func (h *handler) getUser(c echo.Context) error {
	return writeDocument(c, http.StatusOK, hypermedia.UserItem(currentUser(c), h.routes))
}

func (h *handler) updateUser(c echo.Context) error {
	var body userBody
	if err := readJSON(c, schema.User, &body); err != nil {
		return err
	}
	err := h.store.UpdateUser(c.Request().Context(), body.user(currentUser(c).ID))
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindUser)
	} else if err != nil {
		return userConflict(err, body.Username)
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteUser(c echo.Context) error {
	err := h.store.DeleteUser(c.Request().Context(), currentUser(c).ID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(kindUser)
	} else if err != nil {
		return err
	}
	h.invalidate()
	return c.NoContent(http.StatusNoContent)
}
