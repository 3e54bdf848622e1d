package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cagnotte/cagnotte-api/internal/domain/cagnotte"
	"github.com/cagnotte/cagnotte-api/internal/domain/user"
)

// CagnotteService is the slice of the cagnotte domain the lifecycle engine
// needs: existence checks on submission and the moderation side effects.
type CagnotteService interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*cagnotte.Cagnotte, error)
	Suspend(ctx context.Context, id uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// Service owns the report lifecycle: it validates admin actions against the
// transition table, applies the cagnotte side effect, and commits the report
// status via compare-and-swap.
type Service struct {
	repo      Repository
	cagnottes CagnotteService
	users     user.Repository
}

// NewService creates report service
func NewService(repo Repository, cagnottes CagnotteService, users user.Repository) *Service {
	return &Service{
		repo:      repo,
		cagnottes: cagnottes,
		users:     users,
	}
}

// Create records a public report submission against a campaign. reporterID
// is uuid.Nil for anonymous submitters.
func (s *Service) Create(ctx context.Context, reporterID uuid.UUID, req *CreateReportRequest) (*Report, error) {
	exists, err := s.cagnottes.Exists(ctx, req.CagnotteID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, cagnotte.ErrCagnotteNotFound
	}

	name, email := req.ReporterName, req.ReporterEmail
	if reporterID != uuid.Nil {
		if u, err := s.users.GetByID(ctx, reporterID); err == nil && u != nil {
			name, email = u.Name, u.Email
		}
	}
	if name == "" {
		name = "anonymous"
	}

	now := time.Now()
	report := &Report{
		ID:            uuid.New(),
		CagnotteID:    req.CagnotteID,
		Reason:        req.Reason,
		Description:   req.Description,
		ReporterName:  name,
		ReporterEmail: email,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// Get returns the full report detail. Pure read: no admin fields are touched.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// Detail returns the report together with a snapshot of the reported
// campaign. The snapshot is nil when the campaign was already removed by a
// prior moderation decision.
func (s *Service) Detail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.cagnottes.Get(ctx, report.CagnotteID)
	if err != nil && !errors.Is(err, cagnotte.ErrCagnotteNotFound) {
		return nil, err
	}

	return &Detail{Report: report, Cagnotte: c}, nil
}

// List returns reports matching the filter plus per-status counts
func (s *Service) List(ctx context.Context, filter *ListFilter) (*ListResult, error) {
	reports, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := Stats{
		Pending:     counts[StatusPending],
		UnderReview: counts[StatusUnderReview],
		Resolved:    counts[StatusResolved],
		Dismissed:   counts[StatusDismissed],
	}
	stats.Total = stats.Pending + stats.UnderReview + stats.Resolved + stats.Dismissed

	return &ListResult{Reports: reports, Stats: stats, Total: total}, nil
}

// Investigate moves a pending report under review. The campaign is untouched.
func (s *Service) Investigate(ctx context.Context, reportID, adminID uuid.UUID, adminNotes string) (*Report, error) {
	return s.apply(ctx, reportID, adminID, ActionInvestigate, "", adminNotes)
}

// Resolve closes a report with an admin-chosen cagnotte action
// (defaults to NONE).
func (s *Service) Resolve(ctx context.Context, reportID, adminID uuid.UUID, cagnotteAction SideEffect, adminNotes string) (*Report, error) {
	return s.apply(ctx, reportID, adminID, ActionResolve, cagnotteAction, adminNotes)
}

// Dismiss rejects a report as unfounded. The campaign is untouched.
func (s *Service) Dismiss(ctx context.Context, reportID, adminID uuid.UUID, adminNotes string) (*Report, error) {
	return s.apply(ctx, reportID, adminID, ActionDismiss, "", adminNotes)
}

// Block resolves a report and always suspends the campaign; the caller has
// no say in the side effect.
func (s *Service) Block(ctx context.Context, reportID, adminID uuid.UUID, adminNotes string) (*Report, error) {
	return s.apply(ctx, reportID, adminID, ActionBlock, "", adminNotes)
}

// Delete removes the report row entirely. Legal from any status and never
// mutates the campaign; independent of a resolve-with-DELETE, which removes
// the campaign but keeps the report for audit.
func (s *Service) Delete(ctx context.Context, reportID, adminID uuid.UUID, adminNotes string) error {
	report, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return ErrReportNotFound
	}

	if err := s.repo.Delete(ctx, reportID); err != nil {
		return err
	}

	log.Info().
		Str("report_id", reportID.String()).
		Str("admin_id", adminID.String()).
		Str("admin_notes", adminNotes).
		Str("last_status", string(report.Status)).
		Msg("Report deleted")

	return nil
}

// apply runs one lifecycle step: guard against the transition table, apply
// the cagnotte side effect, then commit the report status. The side effect
// goes first so a failed effect never leaves a report claiming a decision
// that was not enforced; a lost CAS after an idempotent suspend is reported
// as an invalid transition (the concurrent winner's decision stands).
func (s *Service) apply(ctx context.Context, reportID, adminID uuid.UUID, action Action, chosen SideEffect, adminNotes string) (*Report, error) {
	report, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	transition, ok := Lookup(report.Status, action)
	if !ok {
		return nil, &InvalidTransitionError{Status: report.Status, Action: action}
	}

	effect := transition.Effect
	if transition.CallerChoosesEffect {
		effect = chosen
		if effect == "" {
			effect = SideEffectNone
		}
	}

	if err := s.applySideEffect(ctx, report.CagnotteID, effect); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatusCAS(ctx, reportID, report.Status, transition.Next, adminID, adminNotes)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Re-read to distinguish a deleted report from a concurrent decision
		current, err := s.repo.GetByID(ctx, reportID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrReportNotFound
		}
		return nil, &InvalidTransitionError{Status: current.Status, Action: action}
	}

	log.Info().
		Str("report_id", reportID.String()).
		Str("admin_id", adminID.String()).
		Str("action", string(action)).
		Str("from", string(report.Status)).
		Str("to", string(transition.Next)).
		Str("cagnotte_effect", string(effect)).
		Msg("Report transitioned")

	return s.Get(ctx, reportID)
}

func (s *Service) applySideEffect(ctx context.Context, cagnotteID uuid.UUID, effect SideEffect) error {
	switch effect {
	case SideEffectNone:
		return nil
	case SideEffectSuspend:
		return s.cagnottes.Suspend(ctx, cagnotteID)
	case SideEffectDelete:
		return s.cagnottes.Remove(ctx, cagnotteID)
	default:
		return ErrInvalidSideEffect
	}
}
