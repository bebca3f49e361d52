package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/garibaycarlos/core-code-camp/internal/config"
	"github.com/garibaycarlos/core-code-camp/internal/platform/postgres"
	"github.com/garibaycarlos/core-code-camp/internal/platform/sqlite"
	"github.com/garibaycarlos/core-code-camp/internal/platform/sqlstore"
)

// openDatabase connects to the configured driver and returns the matching
// SQL dialect.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, sqlstore.Dialect, error) {
	var (
		db      *sql.DB
		dialect sqlstore.Dialect
		err     error
	)

	switch cfg.Driver {
	case "postgres":
		db, err = postgres.Open(ctx, cfg, logger)
		dialect = postgres.Dialect()
	case "sqlite":
		db, err = sqlite.Open(ctx, cfg, logger)
		dialect = sqlite.Dialect()
	default:
		return nil, sqlstore.Dialect{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, sqlstore.Dialect{}, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}
	return db, dialect, nil
}
