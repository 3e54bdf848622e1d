package cagnotte

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/middleware"
	"github.com/cagnotte/cagnotte-api/internal/pkg/errorhandler"
	"github.com/cagnotte/cagnotte-api/internal/pkg/response"
	"github.com/cagnotte/cagnotte-api/internal/pkg/validator"
)

// Handler handles cagnotte HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates cagnotte handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create creates a new campaign
// POST /cagnottes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateCagnotteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "cagnotte create failed")
		return
	}

	response.Created(w, "Cagnotte created", c)
}

// Get returns a campaign
// GET /cagnottes/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid cagnotte ID")
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCagnotteNotFound) {
			response.NotFound(w, "Cagnotte not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "cagnotte get failed")
		return
	}

	response.OK(w, "", c)
}

// List returns active campaigns
// GET /cagnottes?{page,limit}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &ListFilter{
		Status: StatusActive,
		Page:   1,
		Limit:  20,
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}

	cagnottes, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "cagnotte list failed")
		return
	}

	response.WithMeta(w, cagnottes, response.NewMeta(total, filter.Page, filter.Limit))
}

// ListMine returns the caller's campaigns in any status
// GET /cagnottes/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	filter := &ListFilter{CreatorID: userID.String(), Page: 1, Limit: 50}
	cagnottes, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "cagnotte list mine failed")
		return
	}

	response.WithMeta(w, cagnottes, response.NewMeta(total, filter.Page, filter.Limit))
}

// Update modifies an owned campaign
// PUT /cagnottes/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid cagnotte ID")
		return
	}

	var req UpdateCagnotteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Update(r.Context(), id, middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.respondDomainError(w, r, err, "cagnotte update failed")
		return
	}

	response.OK(w, "Cagnotte updated", c)
}

// Submit moves a draft campaign to pending review
// POST /cagnottes/{id}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.ownedTransition(w, r, h.service.Submit, "Cagnotte submitted for review")
}

// Close completes an active campaign
// POST /cagnottes/{id}/close
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	h.ownedTransition(w, r, h.service.Close, "Cagnotte closed")
}

// Activate approves a pending campaign (admin)
// PUT /cagnottes/{id}/activate
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, h.service.Activate, "Cagnotte activated")
}

// Reject declines a pending campaign (admin)
// PUT /cagnottes/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, h.service.Reject, "Cagnotte rejected")
}

type ownedTransitionFunc func(ctx context.Context, id, userID uuid.UUID) (*Cagnotte, error)

type adminTransitionFunc func(ctx context.Context, id uuid.UUID) (*Cagnotte, error)

func (h *Handler) ownedTransition(w http.ResponseWriter, r *http.Request, fn ownedTransitionFunc, message string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid cagnotte ID")
		return
	}

	c, err := fn(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		h.respondDomainError(w, r, err, "cagnotte transition failed")
		return
	}

	response.OK(w, message, c)
}

func (h *Handler) adminTransition(w http.ResponseWriter, r *http.Request, fn adminTransitionFunc, message string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid cagnotte ID")
		return
	}

	c, err := fn(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err, "cagnotte transition failed")
		return
	}

	response.OK(w, message, c)
}

func (h *Handler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, ErrCagnotteNotFound):
		response.NotFound(w, "Cagnotte not found")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, "You do not own this cagnotte")
	case errors.Is(err, ErrInvalidStatus):
		response.BadRequest(w, "Operation not allowed in current cagnotte status")
	default:
		errorhandler.Internal(r.Context(), w, err, msg)
	}
}
