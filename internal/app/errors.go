package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/pagination"
)

// Error is a terminal request failure rendered as a Mason error document.
type Error struct {
	Status      int
	Title       string
	Description string
	cause       error
}

// Error satisfies [error].
func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Description)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func errUnsupportedMediaType() *Error {
	return &Error{
		Status:      http.StatusUnsupportedMediaType,
		Title:       "Unsupported media type",
		Description: "Requests must be JSON",
	}
}

func errInvalidDocument(cause error, description string) *Error {
	return &Error{
		Status:      http.StatusBadRequest,
		Title:       "Invalid JSON document",
		Description: description,
		cause:       cause,
	}
}

func errNotFound(kind string) *Error {
	return &Error{
		Status:      http.StatusNotFound,
		Title:       "Not Found",
		Description: kind + " resource not found",
	}
}

func errConflict(cause error, title, description string) *Error {
	return &Error{
		Status:      http.StatusConflict,
		Title:       title,
		Description: description,
		cause:       cause,
	}
}

func errIntegrity(cause error) *Error {
	return errConflict(cause, "Integrity Error", cause.Error())
}

func errServer(cause error) *Error {
	return &Error{
		Status:      http.StatusInternalServerError,
		Title:       "Internal Server Error",
		Description: cause.Error(),
		cause:       cause,
	}
}

func errInvalidQuery(cause error) *Error {
	return &Error{
		Status:      http.StatusBadRequest,
		Title:       "Invalid query",
		Description: cause.Error(),
		cause:       cause,
	}
}

// errorHandler renders every error escaping a handler as a Mason error
// document. Unclassified errors become an opaque 500.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		appErr := classify(err)
		req := c.Request()
		if appErr.Status >= http.StatusInternalServerError {
			logger.ErrorContext(req.Context(), "request failed",
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.Any("error", err),
			)
		}

		doc := mason.ErrorDocument(req.URL.Path, appErr.Title, appErr.Description)
		if req.Method == http.MethodHead {
			err = c.NoContent(appErr.Status)
		} else {
			err = writeDocument(c, appErr.Status, doc)
		}
		if err != nil {
			logger.ErrorContext(req.Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}

func classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var (
		tokenErr  pagination.TokenError
		filterErr pagination.FilterError
	)
	if errors.As(err, &tokenErr) {
		return errInvalidQuery(tokenErr)
	}
	if errors.As(err, &filterErr) {
		return errInvalidQuery(filterErr)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		description := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			description = msg
		}
		return &Error{
			Status:      httpErr.Code,
			Title:       http.StatusText(httpErr.Code),
			Description: description,
			cause:       err,
		}
	}

	return &Error{
		Status:      http.StatusInternalServerError,
		Title:       http.StatusText(http.StatusInternalServerError),
		Description: "The server encountered an unexpected error",
		cause:       err,
	}
}
