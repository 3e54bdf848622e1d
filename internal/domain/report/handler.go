package report

import (
	"context"
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

// Handler handles report HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates report handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create submits a report against a campaign. Open to anonymous callers;
// when a token is present the reporter identity comes from the account.
// POST /reports
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rep, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		if errors.Is(err, cagnotte.ErrCagnotteNotFound) {
			response.NotFound(w, "Cagnotte not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "report create failed")
		return
	}

	response.Created(w, "Report submitted", rep)
}

// List returns reports with per-status counts for the admin dashboard
// GET /reports?{status,search,page,limit}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &ListFilter{
		Search: r.URL.Query().Get("search"),
		Page:   1,
		Limit:  20,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = Status(status)
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "report list failed")
		return
	}

	response.WithMeta(w, result, response.NewMeta(result.Total, filter.Page, filter.Limit))
}

// Get returns the full report detail
// GET /reports/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err, "report get failed")
		return
	}

	response.OK(w, "", detail)
}

// Investigate moves a pending report under review
// PUT /reports/{id}/investigate
func (h *Handler) Investigate(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Investigate, "Report under review")
}

// Resolve closes a report, optionally suspending or deleting the campaign
// PUT /reports/{id}/resolve
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ResolveRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rep, err := h.service.Resolve(r.Context(), id, middleware.GetUserID(r.Context()), req.CagnotteAction, req.AdminNotes)
	if err != nil {
		h.respondDomainError(w, r, err, "report resolve failed")
		return
	}

	response.OK(w, "Report resolved", rep)
}

// Reject dismisses a report as unfounded
// PUT /reports/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Dismiss, "Report dismissed")
}

// Block resolves a report and suspends the campaign in one step
// PUT /reports/{id}/block
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Block, "Report resolved, cagnotte suspended")
}

// Delete removes a report entirely
// DELETE /reports/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ActionRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}

	if err := h.service.Delete(r.Context(), id, middleware.GetUserID(r.Context()), req.AdminNotes); err != nil {
		h.respondDomainError(w, r, err, "report delete failed")
		return
	}

	response.OK(w, "Report deleted", nil)
}

type actionFunc func(ctx context.Context, reportID, adminID uuid.UUID, adminNotes string) (*Report, error)

func (h *Handler) action(w http.ResponseWriter, r *http.Request, fn actionFunc, message string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ActionRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rep, err := fn(r.Context(), id, middleware.GetUserID(r.Context()), req.AdminNotes)
	if err != nil {
		h.respondDomainError(w, r, err, "report action failed")
		return
	}

	response.OK(w, message, rep)
}

func (h *Handler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var transitionErr *InvalidTransitionError
	switch {
	case errors.Is(err, ErrReportNotFound):
		response.NotFound(w, "Report not found")
	case errors.Is(err, cagnotte.ErrCagnotteNotFound):
		response.NotFound(w, "Cagnotte not found")
	case errors.As(err, &transitionErr):
		response.BadRequest(w, transitionErr.Error())
	case errors.Is(err, ErrInvalidSideEffect):
		response.BadRequest(w, "Invalid cagnotte action")
	default:
		errorhandler.Internal(r.Context(), w, err, msg)
	}
}
