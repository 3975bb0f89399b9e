package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) attendance.OvertimeRepository {
	return &overtimeRepository{db: db}
}

// Create implements attendance.OvertimeRepository.
func (r *overtimeRepository) Create(ctx context.Context, overtime attendance.Overtime) (attendance.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtimes (approved, checked)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, overtime.Approved, overtime.Checked).Scan(&overtime.ID, &overtime.CreatedAt)
	if err != nil {
		return attendance.Overtime{}, fmt.Errorf("failed to create overtime: %w", err)
	}

	return overtime, nil
}

func (r *overtimeRepository) getByID(ctx context.Context, id string, forUpdate bool) (attendance.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, approved, checked, created_at FROM overtimes WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var overtime attendance.Overtime
	err := q.QueryRow(ctx, query, id).Scan(
		&overtime.ID, &overtime.Approved, &overtime.Checked, &overtime.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Overtime{}, attendance.ErrOvertimeNotFound
		}
		return attendance.Overtime{}, fmt.Errorf("failed to get overtime by ID: %w", err)
	}

	return overtime, nil
}

// GetByID implements attendance.OvertimeRepository.
func (r *overtimeRepository) GetByID(ctx context.Context, id string) (attendance.Overtime, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements attendance.OvertimeRepository.
func (r *overtimeRepository) GetByIDForUpdate(ctx context.Context, id string) (attendance.Overtime, error) {
	return r.getByID(ctx, id, true)
}

// Update implements attendance.OvertimeRepository.
func (r *overtimeRepository) Update(ctx context.Context, overtime attendance.Overtime) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE overtimes SET approved = $2, checked = $3 WHERE id = $1`,
		overtime.ID, overtime.Approved, overtime.Checked)
	if err != nil {
		return fmt.Errorf("failed to update overtime: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrOvertimeNotFound
	}

	return nil
}
