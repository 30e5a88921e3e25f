package ui

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the calculator page, the per-field change endpoint
// and the JSON API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Post("/", h.Submit)
	r.Post("/fields/{field}", h.ChangeField)
	r.Post("/api/calculate", h.Calculate)
}
