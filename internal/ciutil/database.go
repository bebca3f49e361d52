package ciutil

import "log/slog"

// GetTestDatabaseURL returns the PostgreSQL URL integration tests should
// use, checking CODECAMP_TEST_DATABASE_URL, DATABASE_URL and
// CODECAMP_DATABASE_URL in that order. It returns "" when none is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks(
		[]string{EnvTestDatabaseURL, EnvDatabaseURL, EnvCodeCampDatabaseURL},
		"",
		logger,
	)
}
