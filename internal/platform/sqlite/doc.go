// Package sqlite adapts the SQL camp store to SQLite using the pure-Go
// modernc.org/sqlite driver. It backs local development and the
// repository tests.
package sqlite
