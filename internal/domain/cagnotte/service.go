package cagnotte

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles cagnotte business logic, including the moderation
// side effects applied when a report against a campaign is acted upon.
type Service struct {
	repo Repository
}

// NewService creates cagnotte service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new campaign in draft status
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, req *CreateCagnotteRequest) (*Cagnotte, error) {
	now := time.Now()
	c := &Cagnotte{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Get returns a campaign by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Cagnotte, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCagnotteNotFound
	}
	return c, nil
}

// List returns campaigns matching the filter with the total count
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]*Cagnotte, int, error) {
	cagnottes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return cagnottes, total, nil
}

// Update modifies an owned campaign; only editable before activation
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateCagnotteRequest) (*Cagnotte, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}
	if c.Status != StatusDraft && c.Status != StatusPending {
		return nil, ErrInvalidStatus
	}

	if req.Title != "" {
		c.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.GoalAmount > 0 {
		c.GoalAmount = req.GoalAmount
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Submit moves an owned draft campaign to pending review
func (s *Service) Submit(ctx context.Context, id, userID uuid.UUID) (*Cagnotte, error) {
	return s.transitionOwned(ctx, id, userID, StatusDraft, StatusPending)
}

// Close moves an owned active campaign to completed
func (s *Service) Close(ctx context.Context, id, userID uuid.UUID) (*Cagnotte, error) {
	return s.transitionOwned(ctx, id, userID, StatusActive, StatusCompleted)
}

// Activate approves a pending campaign (admin)
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Cagnotte, error) {
	return s.transition(ctx, id, StatusPending, StatusActive)
}

// Reject declines a pending campaign (admin)
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*Cagnotte, error) {
	return s.transition(ctx, id, StatusPending, StatusRejected)
}

func (s *Service) transitionOwned(ctx context.Context, id, userID uuid.UUID, from, to Status) (*Cagnotte, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}
	if c.Status != from {
		return nil, ErrInvalidStatus
	}

	if _, err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, from, to Status) (*Cagnotte, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != from {
		return nil, ErrInvalidStatus
	}

	if _, err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// --- Moderation side effects (invoked by the report lifecycle engine) ---

// Exists reports whether the campaign is present
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

// Suspend sets the campaign status to suspended unconditionally.
// Suspending an already-suspended or terminal campaign is a silent no-op,
// so a retried moderation decision cannot fail here.
func (s *Service) Suspend(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.UpdateStatus(ctx, id, StatusSuspended)
	if err != nil {
		return err
	}
	if !found {
		return ErrCagnotteNotFound
	}

	log.Info().Str("cagnotte_id", id.String()).Msg("Cagnotte suspended by moderation")
	return nil
}

// Remove deletes the campaign record. Returns ErrCagnotteNotFound when the
// campaign was already removed by a prior decision.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("cagnotte_id", id.String()).Msg("Cagnotte deleted by moderation")
	return nil
}
