package auth

import (
	"errors"
	"net/http"

	"github.com/cagnotte/cagnotte-api/internal/domain/user"
	"github.com/cagnotte/cagnotte-api/internal/pkg/errorhandler"
	"github.com/cagnotte/cagnotte-api/internal/pkg/response"
	"github.com/cagnotte/cagnotte-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register registers a new user
// POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			response.Conflict(w, "Email already registered")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "register failed")
		return
	}

	response.Created(w, "Account created", result)
}

// Login authenticates a user
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrAccountSuspended):
			response.Forbidden(w, "Your account has been suspended")
		default:
			errorhandler.Internal(r.Context(), w, err, "login failed")
		}
		return
	}

	response.OK(w, "Logged in", result)
}

// Refresh rotates a refresh token
// POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken):
			response.Unauthorized(w, "Invalid refresh token")
		case errors.Is(err, ErrAccountSuspended):
			response.Forbidden(w, "Your account has been suspended")
		default:
			errorhandler.Internal(r.Context(), w, err, "refresh failed")
		}
		return
	}

	response.OK(w, "Token refreshed", result)
}
