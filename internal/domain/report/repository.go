package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report data access interface
type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, filter *ListFilter) ([]*Report, error)
	Count(ctx context.Context, filter *ListFilter) (int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	// UpdateStatusCAS moves the report from expected to next only if its
	// status still equals expected. Returns false when the row was not
	// updated (missing or concurrently transitioned).
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected, next Status, adminID uuid.UUID, adminNotes string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (
			id, cagnotte_id, reason, description,
			reporter_name, reporter_email, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.CagnotteID,
		report.Reason,
		report.Description,
		report.ReporterName,
		report.ReporterEmail,
		report.Status,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("report repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Report, error) {
	query := `SELECT * FROM reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(` AND (reason ILIKE $%d OR description ILIKE $%d OR reporter_email ILIKE $%d)`, argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
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

	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, args...)
	return reports, err
}

func (r *repository) Count(ctx context.Context, filter *ListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(` AND (reason ILIKE $%d OR description ILIKE $%d OR reporter_email ILIKE $%d)`, argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM reports GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// UpdateStatusCAS guards the write on the expected pre-transition status so
// two admins acting concurrently cannot both apply a decision. Notes are
// only overwritten when supplied.
func (r *repository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected, next Status, adminID uuid.UUID, adminNotes string) (bool, error) {
	query := `
		UPDATE reports
		SET status = $3,
		    admin_id = $4,
		    admin_notes = COALESCE(NULLIF($5, ''), admin_notes),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, expected, next, adminID, adminNotes)
	if err != nil {
		return false, fmt.Errorf("report repository cas update: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}

	return nil
}
