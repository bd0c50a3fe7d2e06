package api

import (
	"net/http"

	"titanicdash/app"
	"titanicdash/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// API serves the dashboard numbers as JSON
type API struct {
	router    *chi.Mux
	dashboard *app.DashboardService
}

// New creates the JSON API. The dashboard service needs no chart renderer.
func New(dashboard *app.DashboardService) *API {
	a := &API{
		router:    chi.NewRouter(),
		dashboard: dashboard,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *API) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *API) setupRoutes() {
	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.NotFound("route "+r.URL.Path))
	})
	a.router.Get("/healthz", a.handleHealth)
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/summary", a.handleSummary)
		r.Get("/dataset", a.handleDataset)
	})
}

// ServeHTTP makes the API an http.Handler
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
