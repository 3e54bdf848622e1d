package cagnotte

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns public and owner-facing cagnotte routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/mine", h.ListMine)
		r.Put("/{id}", h.Update)
		r.Post("/{id}/submit", h.Submit)
		r.Post("/{id}/close", h.Close)
	})

	return r
}

// AdminRoutes returns admin-only cagnotte routes
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Put("/{id}/activate", h.Activate)
	r.Put("/{id}/reject", h.Reject)

	return r
}
