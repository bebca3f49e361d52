package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/garibaycarlos/core-code-camp/internal/platform/sqlstore"
)

// defaultMigrationsDir is where migrate create writes new files for a driver.
func defaultMigrationsDir(driver string) string {
	return filepath.Join("internal", "platform", driver, "migrations")
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It logs at ERROR and does not exit.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func newMigrateCmd(configPath *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(name string, fn func(context.Context, *goose.Provider, *slog.Logger, io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), *configPath, name, func(ctx context.Context, p *goose.Provider, log *slog.Logger) error {
				return fn(ctx, p, log, cmd.OutOrStdout())
			})
		}
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  run("up", migrateUp),
	}
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE:  run("down", migrateDown),
	}
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of every migration",
		Args:  cobra.NoArgs,
		RunE:  run("status", migrateStatus),
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE:  run("version", migrateVersion),
	}

	var dir, driver string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new SQL migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = defaultMigrationsDir(driver)
			}
			return createMigration(dir, args[0], slog.Default())
		},
	}
	createCmd.Flags().StringVar(&dir, "dir", "", "directory to write the migration to (defaults to the driver's migrations directory)")
	createCmd.Flags().StringVar(&driver, "driver", "postgres", "driver whose migrations directory is used when --dir is not set")

	migrateCmd.AddCommand(upCmd, downCmd, statusCmd, versionCmd, createCmd)
	return migrateCmd
}

// withMigrator loads configuration, opens the database and runs fn with a
// goose provider for the configured dialect. All logs of one invocation
// share a correlation ID.
func withMigrator(
	ctx context.Context,
	configPath, command string,
	fn func(context.Context, *goose.Provider, *slog.Logger) error,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	configs, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log = log.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command))

	cfg := configs.Current()
	db, dialect, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	provider, err := sqlstore.NewMigrator(db, dialect)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Close() }()

	start := time.Now()
	if err := fn(ctx, provider, log); err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return err
	}
	log.Info("migration command completed", slog.Duration("duration", time.Since(start)))
	return nil
}

func migrateUp(ctx context.Context, p *goose.Provider, log *slog.Logger, out io.Writer) error {
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "no pending migrations")
	}
	for _, r := range results {
		log.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("duration", r.Duration))
		fmt.Fprintf(out, "OK   %s (%s)\n", filepath.Base(r.Source.Path), r.Duration.Round(time.Millisecond))
	}
	return nil
}

func migrateDown(ctx context.Context, p *goose.Provider, log *slog.Logger, out io.Writer) error {
	r, err := p.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		fmt.Fprintln(out, "no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	log.Info("rolled back migration",
		slog.Int64("version", r.Source.Version),
		slog.String("file", r.Source.Path))
	fmt.Fprintf(out, "OK   %s (%s)\n", filepath.Base(r.Source.Path), r.Duration.Round(time.Millisecond))
	return nil
}

func migrateStatus(ctx context.Context, p *goose.Provider, _ *slog.Logger, out io.Writer) error {
	statuses, err := p.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	fmt.Fprintf(out, "%-24s %s\n", "Applied At", "Migration")
	for _, s := range statuses {
		applied := "Pending"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.UTC().Format(time.DateTime)
		}
		fmt.Fprintf(out, "%-24s %s\n", applied, filepath.Base(s.Source.Path))
	}
	return nil
}

func migrateVersion(ctx context.Context, p *goose.Provider, _ *slog.Logger, out io.Writer) error {
	version, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	fmt.Fprintf(out, "version %d\n", version)
	return nil
}

// createMigration writes a new sequentially numbered SQL migration to dir.
func createMigration(dir, name string, logger *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetSequential(true)

	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration %q: %w", name, err)
	}
	return nil
}
