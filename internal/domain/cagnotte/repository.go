package cagnotte

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines cagnotte data access interface
type Repository interface {
	Create(ctx context.Context, c *Cagnotte) error
	GetByID(ctx context.Context, id uuid.UUID) (*Cagnotte, error)
	List(ctx context.Context, filter *ListFilter) ([]*Cagnotte, error)
	Count(ctx context.Context, filter *ListFilter) (int, error)
	Update(ctx context.Context, c *Cagnotte) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new cagnotte repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Cagnotte) error {
	query := `
		INSERT INTO cagnottes (id, creator_id, title, description, goal_amount, collected_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.CreatorID,
		c.Title,
		c.Description,
		c.GoalAmount,
		c.CollectedAmount,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("cagnotte repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Cagnotte, error) {
	query := `SELECT * FROM cagnottes WHERE id = $1`
	var c Cagnotte
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Cagnotte, error) {
	query := `SELECT * FROM cagnottes WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.CreatorID != "" {
		query += fmt.Sprintf(` AND creator_id = $%d`, argPos)
		args = append(args, filter.CreatorID)
		argPos++
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++

		if filter.Page > 1 {
			query += fmt.Sprintf(` OFFSET $%d`, argPos)
			args = append(args, (filter.Page-1)*filter.Limit)
		}
	}

	var cagnottes []*Cagnotte
	err := r.db.SelectContext(ctx, &cagnottes, query, args...)
	return cagnottes, err
}

func (r *repository) Count(ctx context.Context, filter *ListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM cagnottes WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.CreatorID != "" {
		query += fmt.Sprintf(` AND creator_id = $%d`, argPos)
		args = append(args, filter.CreatorID)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *repository) Update(ctx context.Context, c *Cagnotte) error {
	query := `
		UPDATE cagnottes
		SET title = $2, description = $3, goal_amount = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Title, c.Description, c.GoalAmount)
	if err != nil {
		return fmt.Errorf("cagnotte repository update: %w", err)
	}
	return nil
}

// UpdateStatus sets the campaign status unconditionally. Returns false when
// the campaign does not exist.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (bool, error) {
	query := `UPDATE cagnottes SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cagnottes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCagnotteNotFound
	}

	return nil
}
