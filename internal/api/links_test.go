package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteLinkGenerator_CampPath(t *testing.T) {
	gen := NewRouteLinkGenerator("/api/camps/")

	tests := []struct {
		moniker  string
		expected string
		ok       bool
	}{
		{moniker: "ATL2024", expected: "/api/camps/ATL2024", ok: true},
		{moniker: "sea-2024_b", expected: "/api/camps/sea-2024_b", ok: true},
		{moniker: ""},
		{moniker: "   "},
		{moniker: "."},
		{moniker: ".."},
		{moniker: "Code Camp", expected: "/api/camps/Code%20Camp", ok: true},
		{moniker: "Montréal2024", expected: "/api/camps/Montr%C3%A9al2024", ok: true},
		{moniker: "50%", expected: "/api/camps/50%25", ok: true},
		{moniker: "a/b"},
		{moniker: "/"},
	}

	for _, tc := range tests {
		t.Run(tc.moniker, func(t *testing.T) {
			path, ok := gen.CampPath(tc.moniker)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, path)
		})
	}
}
