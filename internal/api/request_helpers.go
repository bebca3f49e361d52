package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/garibaycarlos/core-code-camp/internal/api/models"
)

// monikerParam is the path parameter naming a camp.
const monikerParam = "moniker"

// getPathMoniker returns the decoded moniker from the route. chi routes on
// the raw path when the request kept a non-canonical escaping, in which
// case the parameter is still escaped.
func getPathMoniker(r *http.Request) string {
	moniker := chi.URLParam(r, monikerParam)
	if r.URL.RawPath == "" {
		return moniker
	}
	if unescaped, err := url.PathUnescape(moniker); err == nil {
		return unescaped
	}
	return moniker
}

// parseIncludeTalks reads the optional includeTalks query flag. Absent
// means false.
func parseIncludeTalks(r *http.Request) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("includeTalks"))
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// parseEventDate reads the required theDate query parameter.
func parseEventDate(r *http.Request) (models.Date, error) {
	return models.ParseDate(r.URL.Query().Get("theDate"))
}
