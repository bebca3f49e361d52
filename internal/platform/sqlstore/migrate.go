package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// NewMigrator returns a goose provider for the dialect's embedded migrations.
// The caller must Close it.
func NewMigrator(db *sql.DB, dialect Dialect) (*goose.Provider, error) {
	provider, err := goose.NewProvider(dialect.Goose, db, dialect.Migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migration provider: %w", dialect.Name, err)
	}
	return provider, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, logger *slog.Logger) error {
	provider, err := NewMigrator(db, dialect)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Close() }()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		logger.Info("applied migration",
			slog.String("dialect", dialect.Name),
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}
	return nil
}
