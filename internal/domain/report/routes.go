package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the public report submission route. Submission is
// rate limited per client and accepts anonymous callers.
func (h *Handler) PublicRoutes(rateLimitMiddleware, optionalAuthMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware)
		r.Use(optionalAuthMiddleware)
		r.Post("/", h.Create)
	})

	return r
}

// AdminRoutes returns the admin moderation routes
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}/investigate", h.Investigate)
	r.Put("/{id}/resolve", h.Resolve)
	r.Put("/{id}/reject", h.Reject)
	r.Put("/{id}/block", h.Block)
	r.Delete("/{id}", h.Delete)

	return r
}
