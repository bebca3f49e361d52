// Package sqlstore implements the store interfaces on top of database/sql.
// SQL is written once with '?' placeholders; a Dialect adapts it to a
// concrete backend (see the postgres and sqlite packages) and maps driver
// errors onto store errors.
package sqlstore
