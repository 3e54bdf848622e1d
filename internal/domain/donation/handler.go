package donation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/domain/cagnotte"
	"github.com/cagnotte/cagnotte-api/internal/middleware"
	"github.com/cagnotte/cagnotte-api/internal/pkg/errorhandler"
	"github.com/cagnotte/cagnotte-api/internal/pkg/response"
	"github.com/cagnotte/cagnotte-api/internal/pkg/validator"
)

// Handler handles donation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates donation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create records a donation
// POST /cagnottes/{id}/donations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cagnotteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid cagnotte ID")
		return
	}

	var req CreateDonationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	d, err := h.service.Donate(r.Context(), cagnotteID, middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch {
		case errors.Is(err, cagnotte.ErrCagnotteNotFound):
			response.NotFound(w, "Cagnotte not found")
		case errors.Is(err, ErrCagnotteNotActive):
			response.BadRequest(w, "Cagnotte does not accept donations")
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "Donation amount must be positive")
		default:
			errorhandler.Internal(r.Context(), w, err, "donation create failed")
		}
		return
	}

	response.Created(w, "Donation recorded", d)
}

// List returns donations for a campaign
// GET /cagnottes/{id}/donations?{page,limit}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cagnotteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid cagnotte ID")
		return
	}

	page, limit := 1, 20
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	donations, total, err := h.service.ListByCagnotte(r.Context(), cagnotteID, limit, (page-1)*limit)
	if err != nil {
		if errors.Is(err, cagnotte.ErrCagnotteNotFound) {
			response.NotFound(w, "Cagnotte not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "donation list failed")
		return
	}

	response.WithMeta(w, donations, response.NewMeta(total, page, limit))
}

// Routes returns donation routes, mounted under /cagnottes/{id}/donations
func (h *Handler) Routes(optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.With(optionalAuth).Post("/", h.Create)

	return r
}
