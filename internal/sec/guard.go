package sec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/storage"
)

// HeaderAPIKey carries the client-supplied key.
const HeaderAPIKey = "API-KEY"

const (
	// ErrMissingKey is returned when the request carries no key.
	ErrMissingKey AuthError = "Missing API key"
	// ErrAdminKeyNotConfigured is returned when the credential store holds no
	// admin key.
	ErrAdminKeyNotConfigured AuthError = "Admin key not configured"
	// ErrInvalidKey is returned when the supplied key does not match the admin
	// key.
	ErrInvalidKey AuthError = "Invalid API key"
)

// AuthError is an authentication failure. Its message is safe to return to
// clients.
type AuthError string

// Error satisfies [error].
func (e AuthError) Error() string { return string(e) }

// Reason returns a short label for metrics and logs.
func (e AuthError) Reason() string {
	switch e {
	case ErrMissingKey:
		return "missing"
	case ErrAdminKeyNotConfigured:
		return "not_configured"
	case ErrInvalidKey:
		return "invalid"
	default:
		return "unknown"
	}
}

// Authenticate checks the supplied key against the admin key in the store. It
// returns an [AuthError] when the key is rejected, or a wrapped storage error
// if the admin key could not be loaded.
func Authenticate(ctx context.Context, supplied string, keys storage.APIKeys) error {
	if supplied == "" {
		return ErrMissingKey
	}
	admin, err := keys.GetAdminKey(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrAdminKeyNotConfigured
	} else if err != nil {
		return fmt.Errorf("failed to load admin key: %w", err)
	}
	if err = CompareKey(supplied, admin.Key); err != nil {
		return ErrInvalidKey
	}
	return nil
}

type unauthorized struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewAdminKeyMiddleware returns an echo middleware that admits only requests
// carrying the admin key in the [HeaderAPIKey] header. Rejected requests end
// with a 401 JSON body and never reach next. onReject, if not nil, is called
// with every rejection.
func NewAdminKeyMiddleware(
	keys storage.APIKeys,
	logger *slog.Logger,
	onReject func(AuthError),
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			err := Authenticate(req.Context(), req.Header.Get(HeaderAPIKey), keys)
			if err == nil {
				return next(c)
			}

			var authErr AuthError
			if !errors.As(err, &authErr) {
				return err
			}
			logger.WarnContext(req.Context(), "request rejected",
				slog.String("reason", authErr.Reason()),
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
			)
			if onReject != nil {
				onReject(authErr)
			}
			return c.JSON(http.StatusUnauthorized, unauthorized{
				Error:   "Unauthorized",
				Message: authErr.Error(),
			})
		}
	}
}
