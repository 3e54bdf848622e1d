package donation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines donation data access interface
type Repository interface {
	// Create inserts the donation and increments the campaign's collected
	// amount in a single transaction.
	Create(ctx context.Context, d *Donation) error
	ListByCagnotte(ctx context.Context, cagnotteID uuid.UUID, limit, offset int) ([]*Donation, error)
	CountByCagnotte(ctx context.Context, cagnotteID uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new donation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Donation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("donation repository begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO donations (id, cagnotte_id, donor_id, donor_name, amount, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		d.ID,
		d.CagnotteID,
		d.DonorID,
		d.DonorName,
		d.Amount,
		d.Message,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("donation repository insert: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE cagnottes
		SET collected_amount = collected_amount + $2, updated_at = NOW()
		WHERE id = $1
	`, d.CagnotteID, d.Amount)
	if err != nil {
		return fmt.Errorf("donation repository update collected: %w", err)
	}

	return tx.Commit()
}

func (r *repository) ListByCagnotte(ctx context.Context, cagnotteID uuid.UUID, limit, offset int) ([]*Donation, error) {
	query := `
		SELECT * FROM donations
		WHERE cagnotte_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var donations []*Donation
	err := r.db.SelectContext(ctx, &donations, query, cagnotteID, limit, offset)
	return donations, err
}

func (r *repository) CountByCagnotte(ctx context.Context, cagnotteID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM donations WHERE cagnotte_id = $1`, cagnotteID)
	return count, err
}
