package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns auth routes
func (h *Handler) Routes(loginRateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.With(loginRateLimit).Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)

	return r
}
