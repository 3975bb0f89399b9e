package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
)

type permitRepository struct {
	db *database.DB
}

func NewPermitRepository(db *database.DB) permit.Repository {
	return &permitRepository{db: db}
}

const permitColumns = `id, nik, reason, start_date, duration, attachment, approved, checked, created_at`

func scanPermit(row rowScanner) (permit.Permit, error) {
	var p permit.Permit
	err := row.Scan(
		&p.ID, &p.NIK, &p.Reason, &p.StartDate, &p.Duration,
		&p.Attachment, &p.Approved, &p.Checked, &p.CreatedAt,
	)
	return p, err
}

// Create implements permit.Repository.
func (r *permitRepository) Create(ctx context.Context, p permit.Permit) (permit.Permit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO permits (nik, reason, start_date, duration, attachment, approved, checked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		p.NIK, p.Reason, p.StartDate, p.Duration, p.Attachment, p.Approved, p.Checked,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return permit.Permit{}, fmt.Errorf("failed to create permit: %w", err)
	}

	return p, nil
}

func (r *permitRepository) getByID(ctx context.Context, id string, forUpdate bool) (permit.Permit, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + permitColumns + ` FROM permits WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p, err := scanPermit(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return permit.Permit{}, permit.ErrPermitNotFound
		}
		return permit.Permit{}, fmt.Errorf("failed to get permit by ID: %w", err)
	}

	return p, nil
}

// GetByID implements permit.Repository.
func (r *permitRepository) GetByID(ctx context.Context, id string) (permit.Permit, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements permit.Repository.
func (r *permitRepository) GetByIDForUpdate(ctx context.Context, id string) (permit.Permit, error) {
	return r.getByID(ctx, id, true)
}

// Update implements permit.Repository.
func (r *permitRepository) Update(ctx context.Context, p permit.Permit) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE permits SET approved = $2, checked = $3 WHERE id = $1`,
		p.ID, p.Approved, p.Checked)
	if err != nil {
		return fmt.Errorf("failed to update permit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return permit.ErrPermitNotFound
	}

	return nil
}

func (r *permitRepository) list(ctx context.Context, query string, args ...any) ([]permit.Permit, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list permits: %w", err)
	}
	defer rows.Close()

	var permits []permit.Permit
	for rows.Next() {
		p, err := scanPermit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permit: %w", err)
		}
		permits = append(permits, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read permits: %w", err)
	}

	return permits, nil
}

// ListByNIKFromDate implements permit.Repository.
func (r *permitRepository) ListByNIKFromDate(ctx context.Context, nik string, from time.Time) ([]permit.Permit, error) {
	return r.list(ctx,
		`SELECT `+permitColumns+` FROM permits WHERE nik = $1 AND start_date >= $2 ORDER BY created_at DESC`,
		nik, from)
}

// ListUncheckedAfterDate implements permit.Repository.
func (r *permitRepository) ListUncheckedAfterDate(ctx context.Context, after time.Time) ([]permit.Permit, error) {
	return r.list(ctx,
		`SELECT `+permitColumns+` FROM permits WHERE checked = false AND start_date > $1 ORDER BY start_date`,
		after)
}

// CountUnchecked implements permit.Repository.
func (r *permitRepository) CountUnchecked(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM permits WHERE checked = false`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unchecked permits: %w", err)
	}

	return count, nil
}
