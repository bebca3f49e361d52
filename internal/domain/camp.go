package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxCampLength is the longest camp, in days, the service accepts.
const MaxCampLength = 100

// Camp is a code camp event. Moniker is its caller-assigned external key:
// unique across all camps and never changed once the camp exists.
type Camp struct {
	ID        int64
	Moniker   string
	Name      string
	EventDate time.Time
	Length    int
	Location  *Location
	Talks     []*Talk
}

// Location is the venue a camp is held at. A camp owns exactly one location.
type Location struct {
	ID            int64
	VenueName     string
	Address1      string
	Address2      string
	Address3      string
	CityTown      string
	StateProvince string
	PostalCode    string
	Country       string
}

// Validate checks the camp's own fields. Talks are validated individually
// by the store when they are written.
func (c *Camp) Validate() error {
	if strings.TrimSpace(c.Moniker) == "" {
		return NewValidationError("moniker", "is required", ErrEmptyMoniker)
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "is required", ErrEmptyCampName)
	}
	if c.Length < 0 || c.Length > MaxCampLength {
		return NewValidationError(
			"length",
			fmt.Sprintf("must be between 0 and %d", MaxCampLength),
			ErrInvalidLength,
		)
	}
	return nil
}

// EventDay returns the camp's event date truncated to midnight UTC.
// Camps are searched by day, so this is the form the store persists.
func (c *Camp) EventDay() time.Time {
	return DayOf(c.EventDate)
}

// DayOf truncates t to midnight UTC of the same calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// VenueName returns the location's venue name, or "" if the camp has no location.
func (c *Camp) VenueName() string {
	if c.Location == nil {
		return ""
	}
	return c.Location.VenueName
}
