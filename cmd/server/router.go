package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/garibaycarlos/core-code-camp/internal/api"
	apiMiddleware "github.com/garibaycarlos/core-code-camp/internal/api/middleware"
	"github.com/garibaycarlos/core-code-camp/internal/redact"
)

// campsPath is where the camps resource is mounted.
const campsPath = "/api/camps"

// healthTimeout bounds the database ping behind /health.
const healthTimeout = 2 * time.Second

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	campHandler := api.NewCampHandler(app.store, api.NewRouteLinkGenerator(campsPath), app.logger)
	opsHandler := api.NewOperationsHandler(app.configs, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokens, app.configs.AuthSettings)

	r.Route(campsPath, func(r chi.Router) {
		r.Use(apiMiddleware.APIVersion(apiMiddleware.DefaultAPIVersion))

		r.Get("/", campHandler.GetCamps)
		r.Get("/search", campHandler.SearchByDate)
		r.Get("/{moniker}", campHandler.GetCamp)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", campHandler.CreateCamp)
			r.Put("/{moniker}", campHandler.UpdateCamp)
			r.Delete("/{moniker}", campHandler.DeleteCamp)
		})
	})

	r.With(authMiddleware.Authenticate).
		Options("/api/operations/reloadconfig", opsHandler.ReloadConfig)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := app.store.Ping(ctx); err != nil {
			app.logger.Error("health check failed", slog.String("error", redact.Error(err)))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
