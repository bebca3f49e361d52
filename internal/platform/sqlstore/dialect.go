package sqlstore

import (
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
)

// Dialect captures what differs between SQL backends.
type Dialect struct {
	// Name identifies the backend in logs.
	Name string

	// Goose is the migration dialect and Migrations the embedded migration
	// files, rooted at the directory holding the .sql files.
	Goose      goose.Dialect
	Migrations fs.FS

	// Rebind rewrites '?' placeholders into the backend's native form.
	Rebind func(query string) string

	// EncodeDate converts a calendar day into a query argument.
	EncodeDate func(day time.Time) any

	// MapError translates driver errors into store errors. It must return
	// nil for nil and leave unknown errors wrapped, not replaced.
	MapError func(err error) error
}
