package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/garibaycarlos/core-code-camp/internal/store"
)

// Store hands out SQL-backed camp repositories sharing one connection pool.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// New creates a Store. The caller owns db and is responsible for closing it.
// If logger is nil, a default logger will be used.
func New(db *sql.DB, dialect Dialect, logger *slog.Logger) *Store {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "camp_store"), slog.String("dialect", dialect.Name)),
	}
}

var _ store.CampStore = (*Store)(nil)

// NewCampRepository implements store.CampStore.
func (s *Store) NewCampRepository() store.CampRepository {
	return newCampRepository(s.db, s.dialect, s.logger)
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
