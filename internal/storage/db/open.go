// Package db contains the sqlite schema, queries and connection utilities used
// by the storage package.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite" // sqlite sql.DB driver initialization
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrations embed.FS

// Open initializes a SQLite DB connection to the specified dbPath. If the
// database file does not exist, it attempts to create it, and then migrates the
// database to match the current schema.
func Open(ctx context.Context, logger *slog.Logger, dbPath string) (*sql.DB, error) {
	if dbPath == ":memory:" { //nolint:revive // for documentation
		// noop
	} else if _, err := os.Stat(dbPath); err != nil {
		const userOnlyDirPerms = 0o700
		if err = os.MkdirAll(filepath.Dir(dbPath), userOnlyDirPerms); err != nil {
			return nil, fmt.Errorf("failed to create db parent directory: %w", err)
		}
	}

	if strings.ContainsRune(dbPath, '?') {
		dbPath += "&"
	} else {
		dbPath += "?"
	}
	dbPath += "_time_format=sqlite"

	registerConnectionHook()

	handle, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB handler: %w", err)
	} else if err = handle.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	handle.SetMaxOpenConns(1)

	provider, err := newProvider(logger.With(slog.String("db", dbPath)), handle)
	if err != nil {
		return nil, err
	}
	if _, err = provider.Up(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	return handle, nil
}

// registerConnectionHook installs the per-connection pragmas once per process.
var registerConnectionHook = sync.OnceFunc(func() {
	sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
		const initSQL = `
		pragma foreign_keys = on; -- enforce the set-null policy on every connection
		pragma journal_mode = WAL;
		pragma synchronous = normal;
		pragma temp_store = memory;
		`
		_, err := conn.ExecContext(context.Background(), initSQL, nil)
		return err
	})
})

// Drop rolls back every migration, removing all tables and their data.
func Drop(ctx context.Context, logger *slog.Logger, handle *sql.DB) error {
	provider, err := newProvider(logger, handle)
	if err != nil {
		return err
	}
	if _, err = provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("failed to drop DB schema: %w", err)
	}
	return nil
}

func newProvider(logger *slog.Logger, handle *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, migrationsDir)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, handle, fsys,
		goose.WithLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug)),
		goose.WithVerbose(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}
