package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/garibaycarlos/core-code-camp/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTestConfig writes a config file pointing at a fresh SQLite database
// in a temp dir and returns its path.
func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := fmt.Sprintf(`
server:
  port: 8080
  log_level: error
database:
  driver: sqlite
  url: %q
  auto_migrate: true
%s`, filepath.Join(dir, "camps.db"), extra)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func newTestApp(t *testing.T, extra string) (*application, string) {
	t.Helper()
	path := writeTestConfig(t, extra)

	configs, err := config.NewStore(path)
	require.NoError(t, err)

	app, err := newApplication(t.Context(), configs, discardLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app, path
}

func TestNewApplication_UnsupportedDriver(t *testing.T) {
	configs := config.NewStaticStore(&config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "info"},
		Database: config.DatabaseConfig{Driver: "oracle", URL: "x"},
	})

	_, err := newApplication(t.Context(), configs, discardLogger())

	require.Error(t, err)
	require.Contains(t, err.Error(), `unsupported database driver "oracle"`)
}

func TestNewApplication_AutoMigrates(t *testing.T) {
	app, _ := newTestApp(t, "")

	var count int
	err := app.db.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM camps").Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)
}
