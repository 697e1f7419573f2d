package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/meditation-api/internal/api"
	apiMiddleware "github.com/phrazzld/meditation-api/internal/api/middleware"
	"github.com/phrazzld/meditation-api/internal/api/shared"
)

const healthCheckTimeout = 2 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(app.config.Server.RequestTimeoutSeconds) * time.Second))

	scriptHandler := api.NewScriptHandler(app.scriptService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/scripts", scriptHandler.CreateScript)
			r.Get("/scripts", scriptHandler.ListScripts)
			r.Get("/scripts/{id}", scriptHandler.GetScript)
			r.Patch("/scripts/{id}", scriptHandler.UpdateScript)
			r.Put("/scripts/{scriptId}/sections", scriptHandler.UpsertSection)
			r.Delete("/sections/{id}", scriptHandler.DeleteSection)
		})
	})

	r.Get("/health", app.handleHealth)

	return r
}

// handleHealth reports 200 when the database answers a ping and 503 otherwise.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := app.health.PingContext(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
