package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
)

type checkRepository struct {
	db *database.DB
}

func NewCheckRepository(db *database.DB) attendance.CheckRepository {
	return &checkRepository{db: db}
}

// Create implements attendance.CheckRepository.
func (r *checkRepository) Create(ctx context.Context, check attendance.Check) (attendance.Check, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checks (type, time, latitude, longitude, photo_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		check.Type, check.Time, check.Latitude, check.Longitude, check.PhotoName,
	).Scan(&check.ID, &check.CreatedAt)
	if err != nil {
		return attendance.Check{}, fmt.Errorf("failed to create check: %w", err)
	}

	return check, nil
}

// GetByID implements attendance.CheckRepository.
func (r *checkRepository) GetByID(ctx context.Context, id string) (attendance.Check, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, time, latitude, longitude, photo_name, created_at
		FROM checks
		WHERE id = $1
	`

	var check attendance.Check
	err := q.QueryRow(ctx, query, id).Scan(
		&check.ID, &check.Type, &check.Time,
		&check.Latitude, &check.Longitude, &check.PhotoName, &check.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Check{}, attendance.ErrCheckNotFound
		}
		return attendance.Check{}, fmt.Errorf("failed to get check by ID: %w", err)
	}

	return check, nil
}

// UpdateTime implements attendance.CheckRepository.
func (r *checkRepository) UpdateTime(ctx context.Context, id string, t time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE checks SET time = $2 WHERE id = $1`, id, t)
	if err != nil {
		return fmt.Errorf("failed to update check time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrCheckNotFound
	}

	return nil
}
