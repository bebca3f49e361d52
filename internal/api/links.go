package api

import (
	"net/url"
	"strings"
)

// LinkGenerator computes where a camp can be retrieved.
type LinkGenerator interface {
	// CampPath returns the path of the camp with the given moniker, or
	// false when no path can be built for it.
	CampPath(moniker string) (string, bool)
}

// RouteLinkGenerator builds camp paths under a fixed route prefix.
type RouteLinkGenerator struct {
	Prefix string
}

// NewRouteLinkGenerator returns a generator for camps mounted at prefix,
// for example "/api/camps".
func NewRouteLinkGenerator(prefix string) RouteLinkGenerator {
	return RouteLinkGenerator{Prefix: strings.TrimRight(prefix, "/")}
}

// CampPath implements LinkGenerator. The moniker is percent-encoded as a
// single path segment. Monikers that would not survive as one segment,
// such as "a/b" or "..", are refused.
func (g RouteLinkGenerator) CampPath(moniker string) (string, bool) {
	if strings.TrimSpace(moniker) == "" || moniker == "." || moniker == ".." {
		return "", false
	}
	if strings.Contains(moniker, "/") {
		return "", false
	}
	return g.Prefix + "/" + url.PathEscape(moniker), true
}
