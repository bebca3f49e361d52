package middleware

import (
	"net/http"
	"strings"

	"github.com/garibaycarlos/core-code-camp/internal/api/shared"
)

const (
	// DefaultAPIVersion is assumed when a request names no version.
	DefaultAPIVersion = "2.0"

	// VersionQueryParam and VersionHeader are where clients may name a version.
	VersionQueryParam = "api-version"
	VersionHeader     = "X-Version"

	// SupportedVersionsHeader advertises the versions this API serves.
	SupportedVersionsHeader = "api-supported-versions"
)

// APIVersion rejects requests for any version other than the supported ones.
// The query parameter wins over the header.
func APIVersion(supported ...string) func(http.Handler) http.Handler {
	if len(supported) == 0 {
		supported = []string{DefaultAPIVersion}
	}
	allowed := make(map[string]bool, len(supported))
	for _, v := range supported {
		allowed[normalizeVersion(v)] = true
	}
	advertised := strings.Join(supported, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(SupportedVersionsHeader, advertised)

			requested := r.URL.Query().Get(VersionQueryParam)
			if requested == "" {
				requested = r.Header.Get(VersionHeader)
			}
			if requested != "" && !allowed[normalizeVersion(requested)] {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Unsupported API version")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// normalizeVersion treats "2" and "2.0" as the same version.
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.Contains(v, ".") {
		v += ".0"
	}
	return v
}
