package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) attendance.ActivityRepository {
	return &activityRepository{db: db}
}

// Create implements attendance.ActivityRepository.
func (r *activityRepository) Create(ctx context.Context, activity attendance.Activity) (attendance.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activities (attendance_id, description, status, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		activity.AttendanceID, activity.Description, activity.Status, activity.StartTime, activity.EndTime,
	).Scan(&activity.ID, &activity.CreatedAt, &activity.UpdatedAt)
	if err != nil {
		return attendance.Activity{}, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

// GetByID implements attendance.ActivityRepository.
func (r *activityRepository) GetByID(ctx context.Context, id string) (attendance.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, description, status, start_time, end_time, created_at, updated_at
		FROM activities
		WHERE id = $1
	`

	var activity attendance.Activity
	err := q.QueryRow(ctx, query, id).Scan(
		&activity.ID, &activity.AttendanceID, &activity.Description, &activity.Status,
		&activity.StartTime, &activity.EndTime, &activity.CreatedAt, &activity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Activity{}, attendance.ErrActivityNotFound
		}
		return attendance.Activity{}, fmt.Errorf("failed to get activity by ID: %w", err)
	}

	return activity, nil
}

// ListByAttendance implements attendance.ActivityRepository.
func (r *activityRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, description, status, start_time, end_time, created_at, updated_at
		FROM activities
		WHERE attendance_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []attendance.Activity
	for rows.Next() {
		var activity attendance.Activity
		if err := rows.Scan(
			&activity.ID, &activity.AttendanceID, &activity.Description, &activity.Status,
			&activity.StartTime, &activity.EndTime, &activity.CreatedAt, &activity.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}

	return activities, nil
}

// Update implements attendance.ActivityRepository.
func (r *activityRepository) Update(ctx context.Context, activity attendance.Activity) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE activities
		SET description = $2, status = $3, start_time = $4, end_time = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		activity.ID, activity.Description, activity.Status, activity.StartTime, activity.EndTime)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrActivityNotFound
	}

	return nil
}
