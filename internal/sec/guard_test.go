package sec

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/cookbook/internal/storage"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

type fakeKeys struct {
	hash []byte
	err  error
}

func (f fakeKeys) GetAdminKey(context.Context) (db.APIKey, error) {
	if f.err != nil {
		return db.APIKey{}, f.err
	}
	if f.hash == nil {
		return db.APIKey{}, storage.ErrNotFound
	}
	return db.APIKey{ID: 1, Key: f.hash, Admin: true}, nil
}

func (f fakeKeys) ReplaceAdminKey(context.Context, []byte) error { return nil }

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	const key = "verysafetestkey"
	hash, err := HashKey(key)
	require.NoError(t, err)

	tests := []struct {
		name     string
		keys     fakeKeys
		supplied string
		wantErr  error
	}{
		{name: "valid", keys: fakeKeys{hash: hash}, supplied: key},
		{name: "missing", keys: fakeKeys{hash: hash}, supplied: "", wantErr: ErrMissingKey},
		{name: "not configured", keys: fakeKeys{}, supplied: key, wantErr: ErrAdminKeyNotConfigured},
		{name: "invalid", keys: fakeKeys{hash: hash}, supplied: "nope", wantErr: ErrInvalidKey},
		{name: "missing checked first", keys: fakeKeys{}, supplied: "", wantErr: ErrMissingKey},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := Authenticate(t.Context(), test.supplied, test.keys)
			if test.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, test.wantErr)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		err := Authenticate(t.Context(), key, fakeKeys{err: boom})
		require.ErrorIs(t, err, boom)
		var authErr AuthError
		assert.False(t, errors.As(err, &authErr))
	})
}

func TestAdminKeyMiddleware(t *testing.T) {
	t.Parallel()

	const key = "verysafetestkey"
	hash, err := HashKey(key)
	require.NoError(t, err)

	tests := []struct {
		name       string
		keys       fakeKeys
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "admitted", keys: fakeKeys{hash: hash}, header: key, wantStatus: http.StatusTeapot},
		{name: "missing", keys: fakeKeys{hash: hash}, wantStatus: http.StatusUnauthorized, wantMsg: "Missing API key"},
		{name: "not configured", keys: fakeKeys{}, header: key, wantStatus: http.StatusUnauthorized, wantMsg: "Admin key not configured"},
		{name: "invalid", keys: fakeKeys{hash: hash}, header: "wrong", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid API key"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var rejected []AuthError
			called := false
			e := echo.New()
			e.Use(NewAdminKeyMiddleware(test.keys, slog.Default(), func(err AuthError) {
				rejected = append(rejected, err)
			}))
			e.GET("/api/users/", func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
			if test.header != "" {
				req.Header.Set(HeaderAPIKey, test.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, test.wantStatus, rec.Code)
			if test.wantMsg == "" {
				assert.True(t, called)
				assert.Empty(t, rejected)
				return
			}

			assert.False(t, called)
			require.Len(t, rejected, 1)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{
				"error":   "Unauthorized",
				"message": test.wantMsg,
			}, body)
		})
	}
}
