// Package postgres adapts the SQL camp store to PostgreSQL through the pgx
// database/sql driver. It owns the PostgreSQL schema migrations, placeholder
// rebinding and the mapping of PostgreSQL error codes onto store errors.
package postgres
