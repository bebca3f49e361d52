package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCamp() *Camp {
	return &Camp{
		Moniker:   "ATL2024",
		Name:      "Atlanta Code Camp",
		EventDate: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		Length:    1,
		Location:  &Location{VenueName: "Tech Hall"},
	}
}

func TestCamp_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Camp)
		wantField string
		wantErr   error
	}{
		{name: "valid", mutate: func(c *Camp) {}},
		{name: "zero length", mutate: func(c *Camp) { c.Length = 0 }},
		{name: "max length", mutate: func(c *Camp) { c.Length = MaxCampLength }},
		{name: "no location", mutate: func(c *Camp) { c.Location = nil }},
		{
			name:      "blank moniker",
			mutate:    func(c *Camp) { c.Moniker = "  " },
			wantField: "moniker",
			wantErr:   ErrEmptyMoniker,
		},
		{
			name:      "missing name",
			mutate:    func(c *Camp) { c.Name = "" },
			wantField: "name",
			wantErr:   ErrEmptyCampName,
		},
		{
			name:      "negative length",
			mutate:    func(c *Camp) { c.Length = -1 },
			wantField: "length",
			wantErr:   ErrInvalidLength,
		},
		{
			name:      "too long",
			mutate:    func(c *Camp) { c.Length = MaxCampLength + 1 },
			wantField: "length",
			wantErr:   ErrInvalidLength,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validCamp()
			tc.mutate(c)

			err := c.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestDayOf(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midnight stays",
			in:   time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "time of day dropped",
			in:   time.Date(2024, time.September, 1, 23, 59, 59, 999, time.UTC),
			want: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "calendar day of the original zone",
			in:   time.Date(2024, time.September, 1, 22, 0, 0, 0, est),
			want: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DayOf(tc.in))
		})
	}
}

func TestCamp_EventDayAndVenue(t *testing.T) {
	c := validCamp()
	c.EventDate = time.Date(2024, time.September, 1, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), c.EventDay())
	assert.Equal(t, "Tech Hall", c.VenueName())

	c.Location = nil
	assert.Equal(t, "", c.VenueName())
}

func TestTalk_Validate(t *testing.T) {
	camp := validCamp()

	assert.NoError(t, (&Talk{Title: "Generics", Camp: camp}).Validate())

	err := (&Talk{Title: " ", Camp: camp}).Validate()
	assert.ErrorIs(t, err, ErrEmptyTalkTitle)

	err = (&Talk{Title: "Generics"}).Validate()
	assert.ErrorIs(t, err, ErrOrphanTalk)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "is required", ErrEmptyCampName)

	assert.Equal(t, "name is required", err.Error())
	assert.ErrorIs(t, err, ErrEmptyCampName)
}
