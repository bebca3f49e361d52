package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/garibaycarlos/core-code-camp/internal/config"
	"github.com/garibaycarlos/core-code-camp/internal/platform/logger"
	"github.com/garibaycarlos/core-code-camp/internal/platform/sqlstore"
	"github.com/garibaycarlos/core-code-camp/internal/service/auth"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	configs *config.Store
	logger  *slog.Logger

	db      *sql.DB
	dialect sqlstore.Dialect
	store   *sqlstore.Store
	tokens  auth.TokenService
}

// newApplication opens the database described by the current configuration
// and builds the services on top of it.
func newApplication(ctx context.Context, configs *config.Store, logger *slog.Logger) (*application, error) {
	cfg := configs.Current()

	db, dialect, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app := &application{
		configs: configs,
		logger:  logger,
		db:      db,
		dialect: dialect,
		store:   sqlstore.New(db, dialect, logger),
		tokens:  auth.NewJWTService(configs.AuthSettings),
	}

	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db, dialect, logger.With(slog.String("component", "migrations"))); err != nil {
			app.cleanup()
			return nil, err
		}
	}

	if cfg.Auth.Enabled() {
		logger.Info("operator authentication enabled",
			slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))
	} else {
		logger.Warn("operator authentication disabled, mutating routes are open")
	}

	return app, nil
}

// loadConfig loads the configuration store and installs the process logger.
// Reloads re-apply the log level.
func loadConfig(configPath string) (*config.Store, *slog.Logger, error) {
	configs, err := config.NewStore(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := configs.Current()
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	configs.OnReload(func(cfg *config.Config) {
		if err := logger.SetLevel(cfg.Server.LogLevel); err != nil {
			log.Error("failed to apply reloaded log level", slog.String("error", err.Error()))
		}
	})

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	return configs, log, nil
}

// runServer is the serve command: load configuration, wire the
// application and serve until SIGINT or SIGTERM.
func runServer(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if configs.Current().Server.WatchConfig {
		if err := configs.Watch(log); err != nil {
			return fmt.Errorf("failed to watch configuration: %w", err)
		}
	}

	app, err := newApplication(ctx, configs, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
