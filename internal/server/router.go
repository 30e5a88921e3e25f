package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mining-cost-calculator/internal/handlers"
	"mining-cost-calculator/internal/observability"
	"mining-cost-calculator/internal/ui"
)

func NewRouter(page *ui.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	page.RegisterRoutes(r)

	return r
}
