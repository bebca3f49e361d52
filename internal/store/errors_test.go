package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrCampNotFound", err: ErrCampNotFound, expected: true},
		{
			name:     "wrapped ErrCampNotFound",
			err:      fmt.Errorf("failed to load camp: %w", ErrCampNotFound),
			expected: true,
		},
		{name: "duplicate is not a not found", err: ErrMonikerExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrMonikerExists", err: ErrMonikerExists, expected: true},
		{
			name:     "StoreError wrapping ErrMonikerExists",
			err:      NewStoreError("camp", "insert", "moniker taken", ErrMonikerExists),
			expected: true,
		},
		{name: "not found is not a duplicate", err: ErrCampNotFound, expected: false},
		{name: "constraint violation is not a duplicate", err: ErrConstraintViolation, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		inner := errors.New("connection reset")
		err := NewStoreError("camp", "update", "could not update camp", inner)

		assert.Equal(t,
			"update operation on camp failed: could not update camp: connection reset",
			err.Error())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("talk", "insert", "missing title", nil)

		assert.Equal(t, "insert operation on talk failed: missing title", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
