package command

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/sec"
	"github.com/stolasapp/cookbook/internal/storage"
)

// Commands replace the default logger, so these tests do not run in parallel.

func newTestConfig(t *testing.T) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.LogLevel = config.LogLevelError
	cfg.DBFilepath = filepath.Join(dir, "db.sqlite")
	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "cookbook.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path, cfg
}

func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	defer slog.SetDefault(slog.Default())
	var out bytes.Buffer
	cmd := RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func openStore(t *testing.T, cfg *config.Config) *storage.DB {
	t.Helper()
	store, err := storage.NewDB(t.Context(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInitAPIKey(t *testing.T) {
	path, cfg := newTestConfig(t)

	out, err := execute(t, path, "init-apikey")
	require.NoError(t, err)
	first := strings.TrimSpace(out)
	require.NotEmpty(t, first)

	out, err = execute(t, path, "init-apikey")
	require.NoError(t, err)
	second := strings.TrimSpace(out)
	assert.NotEqual(t, first, second)

	store := openStore(t, cfg)
	admin, err := store.GetAdminKey(t.Context())
	require.NoError(t, err)
	assert.NotContains(t, string(admin.Key), second)
	require.NoError(t, sec.CompareKey(second, admin.Key))
	require.Error(t, sec.CompareKey(first, admin.Key))
}

func TestTestData(t *testing.T) {
	path, cfg := newTestConfig(t)

	_, err := execute(t, path, "init-db")
	require.NoError(t, err)
	_, err = execute(t, path, "init-apikey")
	require.NoError(t, err)
	_, err = execute(t, path, "gen-test-data", "--fake", "3", "--seed", "7")
	require.NoError(t, err)

	store := openStore(t, cfg)
	recipes, err := store.ListRecipes(t.Context())
	require.NoError(t, err)
	assert.Len(t, recipes, 7)
	users, err := store.ListUsers(t.Context())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = execute(t, path, "clear-test-data")
	require.NoError(t, err)
	recipes, err = store.ListRecipes(t.Context())
	require.NoError(t, err)
	assert.Empty(t, recipes)
	_, err = store.GetAdminKey(t.Context())
	require.NoError(t, err)
}

func TestDropDB(t *testing.T) {
	path, cfg := newTestConfig(t)

	_, err := execute(t, path, "gen-test-data")
	require.NoError(t, err)
	_, err = execute(t, path, "drop-db", "--yes")
	require.NoError(t, err)

	store := openStore(t, cfg)
	users, err := store.ListUsers(t.Context())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))
	_, err := execute(t, path, "init-db")
	require.ErrorContains(t, err, "log_level")
}
