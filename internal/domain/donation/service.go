package donation

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/domain/cagnotte"
)

// Service handles donation business logic
type Service struct {
	repo      Repository
	cagnottes cagnotte.Repository
}

// NewService creates donation service
func NewService(repo Repository, cagnottes cagnotte.Repository) *Service {
	return &Service{repo: repo, cagnottes: cagnottes}
}

// Donate records a donation against an active campaign
func (s *Service) Donate(ctx context.Context, cagnotteID uuid.UUID, donorID uuid.UUID, req *CreateDonationRequest) (*Donation, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	c, err := s.cagnottes.GetByID(ctx, cagnotteID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, cagnotte.ErrCagnotteNotFound
	}
	if !c.IsActive() {
		return nil, ErrCagnotteNotActive
	}

	donorName := req.DonorName
	if donorName == "" {
		donorName = "anonymous"
	}

	d := &Donation{
		ID:         uuid.New(),
		CagnotteID: cagnotteID,
		DonorName:  donorName,
		Amount:     req.Amount,
		CreatedAt:  time.Now(),
	}
	if donorID != uuid.Nil {
		d.DonorID = uuid.NullUUID{UUID: donorID, Valid: true}
	}
	if req.Message != "" {
		d.Message = sql.NullString{String: req.Message, Valid: true}
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// ListByCagnotte returns donations for a campaign
func (s *Service) ListByCagnotte(ctx context.Context, cagnotteID uuid.UUID, limit, offset int) ([]*Donation, int, error) {
	c, err := s.cagnottes.GetByID(ctx, cagnotteID)
	if err != nil {
		return nil, 0, err
	}
	if c == nil {
		return nil, 0, cagnotte.ErrCagnotteNotFound
	}

	donations, err := s.repo.ListByCagnotte(ctx, cagnotteID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByCagnotte(ctx, cagnotteID)
	if err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}
