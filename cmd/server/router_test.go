package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garibaycarlos/core-code-camp/internal/api/models"
)

func request(t *testing.T, h http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_CampLifecycle(t *testing.T) {
	app, _ := newTestApp(t, "")
	router := app.setupRouter()

	created := request(t, router, http.MethodPost, "/api/camps",
		`{"moniker":"ATL2024","name":"Atlanta Code Camp","eventDate":"2024-09-01","venue":"Tech Hall",
		  "talks":[{"title":"Go Concurrency","level":200,"speaker":{"firstName":"Rob","lastName":"Pike"}}]}`, nil)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	assert.Equal(t, "/api/camps/ATL2024", created.Header().Get("Location"))
	assert.Equal(t, "2.0", created.Header().Get("api-supported-versions"))
	assert.NotEmpty(t, created.Header().Get("X-Trace-ID"))

	got := request(t, router, http.MethodGet, "/api/camps/ATL2024?includeTalks=true", "", nil)
	require.Equal(t, http.StatusOK, got.Code)
	var camp models.CampModel
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &camp))
	assert.Equal(t, "Tech Hall", camp.Venue)
	assert.Equal(t, "2024-09-01", camp.EventDate.Format("2006-01-02"))
	require.Len(t, camp.Talks, 1)
	assert.Equal(t, "Go Concurrency", camp.Talks[0].Title)

	dup := request(t, router, http.MethodPost, "/api/camps",
		`{"moniker":"ATL2024","name":"Again","eventDate":"2024-09-01"}`, nil)
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	search := request(t, router, http.MethodGet, "/api/camps/search?theDate=2024-09-01", "", nil)
	assert.Equal(t, http.StatusOK, search.Code)
	assert.Equal(t, http.StatusNotFound,
		request(t, router, http.MethodGet, "/api/camps/search?theDate=2024-09-02", "", nil).Code)

	updated := request(t, router, http.MethodPut, "/api/camps/ATL2024",
		`{"name":"Atlanta Code Camp","eventDate":"2024-09-02","venue":"Convention Center"}`, nil)
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())

	list := request(t, router, http.MethodGet, "/api/camps", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var camps models.CampList
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &camps))
	require.Equal(t, 1, camps.Count)
	assert.Equal(t, "Convention Center", camps.Results[0].Venue)

	assert.Equal(t, http.StatusOK, request(t, router, http.MethodDelete, "/api/camps/ATL2024", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, request(t, router, http.MethodGet, "/api/camps/ATL2024", "", nil).Code)
}

func TestRouter_APIVersion(t *testing.T) {
	app, _ := newTestApp(t, "")
	router := app.setupRouter()

	assert.Equal(t, http.StatusOK, request(t, router, http.MethodGet, "/api/camps?api-version=2.0", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, request(t, router, http.MethodGet, "/api/camps?api-version=1.0", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		request(t, router, http.MethodGet, "/api/camps", "", http.Header{"X-Version": {"3.0"}}).Code)
}

func TestRouter_Health(t *testing.T) {
	app, _ := newTestApp(t, "")
	router := app.setupRouter()

	rec := request(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	require.NoError(t, app.db.Close())
	rec = request(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_ReloadConfig(t *testing.T) {
	app, path := newTestApp(t, "")
	router := app.setupRouter()

	rec := request(t, router, http.MethodOptions, "/api/operations/reloadconfig", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	require.NoError(t, os.WriteFile(path, []byte("server: [not, a, map"), 0o600))
	rec = request(t, router, http.MethodOptions, "/api/operations/reloadconfig", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_OperatorAuth(t *testing.T) {
	app, _ := newTestApp(t, "auth:\n  jwt_secret: \""+testSecret+"\"\n")
	router := app.setupRouter()
	body := `{"moniker":"SEA2024","name":"Seattle Code Camp","eventDate":"2024-10-05"}`

	assert.Equal(t, http.StatusUnauthorized, request(t, router, http.MethodPost, "/api/camps", body, nil).Code)
	assert.Equal(t, http.StatusUnauthorized,
		request(t, router, http.MethodOptions, "/api/operations/reloadconfig", "", nil).Code)

	token, err := app.tokens.GenerateToken(t.Context(), "ops")
	require.NoError(t, err)
	authz := http.Header{"Authorization": {"Bearer " + token}}

	assert.Equal(t, http.StatusCreated, request(t, router, http.MethodPost, "/api/camps", body, authz).Code)
	assert.Equal(t, http.StatusOK, request(t, router, http.MethodGet, "/api/camps/SEA2024", "", nil).Code)
}
