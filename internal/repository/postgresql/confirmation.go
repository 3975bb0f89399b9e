package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
)

type confirmationRepository struct {
	db *database.DB
}

func NewConfirmationRepository(db *database.DB) confirmation.Repository {
	return &confirmationRepository{db: db}
}

const confirmationColumns = `id, attendance_id, type, description, reason, attachment, approved, checked, created_at`

func scanConfirmation(row rowScanner) (confirmation.Confirmation, error) {
	var c confirmation.Confirmation
	err := row.Scan(
		&c.ID, &c.AttendanceID, &c.Type, &c.Description, &c.Reason,
		&c.Attachment, &c.Approved, &c.Checked, &c.CreatedAt,
	)
	return c, err
}

// Create implements confirmation.Repository.
func (r *confirmationRepository) Create(ctx context.Context, c confirmation.Confirmation) (confirmation.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO confirmations (attendance_id, type, description, reason, attachment, approved, checked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		c.AttendanceID, c.Type, c.Description, c.Reason, c.Attachment, c.Approved, c.Checked,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return confirmation.Confirmation{}, fmt.Errorf("failed to create confirmation: %w", err)
	}

	return c, nil
}

func (r *confirmationRepository) getByID(ctx context.Context, id string, forUpdate bool) (confirmation.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + confirmationColumns + ` FROM confirmations WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	c, err := scanConfirmation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return confirmation.Confirmation{}, confirmation.ErrConfirmationNotFound
		}
		return confirmation.Confirmation{}, fmt.Errorf("failed to get confirmation by ID: %w", err)
	}

	return c, nil
}

// GetByID implements confirmation.Repository.
func (r *confirmationRepository) GetByID(ctx context.Context, id string) (confirmation.Confirmation, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements confirmation.Repository.
func (r *confirmationRepository) GetByIDForUpdate(ctx context.Context, id string) (confirmation.Confirmation, error) {
	return r.getByID(ctx, id, true)
}

// Update implements confirmation.Repository.
func (r *confirmationRepository) Update(ctx context.Context, c confirmation.Confirmation) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE confirmations SET approved = $2, checked = $3 WHERE id = $1`,
		c.ID, c.Approved, c.Checked)
	if err != nil {
		return fmt.Errorf("failed to update confirmation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return confirmation.ErrConfirmationNotFound
	}

	return nil
}

// ListByAttendance implements confirmation.Repository.
func (r *confirmationRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]confirmation.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + confirmationColumns + ` FROM confirmations WHERE attendance_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmations: %w", err)
	}
	defer rows.Close()

	var confirmations []confirmation.Confirmation
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan confirmation: %w", err)
		}
		confirmations = append(confirmations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read confirmations: %w", err)
	}

	return confirmations, nil
}

// ListUncheckedByDate implements confirmation.Repository. The joined
// attendance (with its check and overtime relations) rides along so the
// coordinator feed can compute the pre-correction status without extra
// round trips.
func (r *confirmationRepository) ListUncheckedByDate(ctx context.Context, date time.Time) ([]confirmation.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.attendance_id, c.type, c.description, c.reason, c.attachment,
			   c.approved, c.checked, c.created_at,
			   a.id, a.nik, a.date, a.status,
			   a.check_in_id, a.check_out_id, a.permit_id, a.overtime_id,
			   a.created_at, a.updated_at,
			   ci.id, ci.type, ci.time, ci.latitude, ci.longitude, ci.photo_name, ci.created_at,
			   co.id, co.type, co.time, co.latitude, co.longitude, co.photo_name, co.created_at,
			   o.id, o.approved, o.checked, o.created_at
		FROM confirmations c
		JOIN attendances a ON a.id = c.attendance_id
		LEFT JOIN checks ci ON ci.id = a.check_in_id
		LEFT JOIN checks co ON co.id = a.check_out_id
		LEFT JOIN overtimes o ON o.id = a.overtime_id
		WHERE c.checked = false AND c.created_at::date = $1
		ORDER BY c.created_at DESC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list unchecked confirmations: %w", err)
	}
	defer rows.Close()

	var confirmations []confirmation.Confirmation
	for rows.Next() {
		c, err := scanConfirmationWithAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan confirmation: %w", err)
		}
		confirmations = append(confirmations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read confirmations: %w", err)
	}

	return confirmations, nil
}

func scanConfirmationWithAttendance(rows pgx.Rows) (confirmation.Confirmation, error) {
	var (
		c   confirmation.Confirmation
		att attendance.Attendance

		ciID, ciType, ciPhoto *string
		ciTime, ciCreated     *time.Time
		ciLat, ciLng          *float64
		coID, coType, coPhoto *string
		coTime, coCreated     *time.Time
		coLat, coLng          *float64
		oID                   *string
		oApproved, oChecked   *bool
		oCreated              *time.Time
	)

	err := rows.Scan(
		&c.ID, &c.AttendanceID, &c.Type, &c.Description, &c.Reason,
		&c.Attachment, &c.Approved, &c.Checked, &c.CreatedAt,
		&att.ID, &att.NIK, &att.Date, &att.Status,
		&att.CheckInID, &att.CheckOutID, &att.PermitID, &att.OvertimeID,
		&att.CreatedAt, &att.UpdatedAt,
		&ciID, &ciType, &ciTime, &ciLat, &ciLng, &ciPhoto, &ciCreated,
		&coID, &coType, &coTime, &coLat, &coLng, &coPhoto, &coCreated,
		&oID, &oApproved, &oChecked, &oCreated,
	)
	if err != nil {
		return confirmation.Confirmation{}, err
	}

	if ciID != nil {
		att.CheckIn = &attendance.Check{
			ID: *ciID, Type: attendance.CheckType(*ciType), Time: *ciTime,
			Latitude: *ciLat, Longitude: *ciLng, PhotoName: *ciPhoto, CreatedAt: *ciCreated,
		}
	}
	if coID != nil {
		att.CheckOut = &attendance.Check{
			ID: *coID, Type: attendance.CheckType(*coType), Time: *coTime,
			Latitude: *coLat, Longitude: *coLng, PhotoName: *coPhoto, CreatedAt: *coCreated,
		}
	}
	if oID != nil {
		att.Overtime = &attendance.Overtime{
			ID: *oID, Approved: *oApproved, Checked: *oChecked, CreatedAt: *oCreated,
		}
	}

	c.Attendance = &att
	return c, nil
}

// HasUncheckedByNIK implements confirmation.Repository.
func (r *confirmationRepository) HasUncheckedByNIK(ctx context.Context, nik string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM confirmations c
			JOIN attendances a ON a.id = c.attendance_id
			WHERE c.checked = false AND a.nik = $1
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, nik).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending confirmation: %w", err)
	}

	return exists, nil
}

// CountUnchecked implements confirmation.Repository.
func (r *confirmationRepository) CountUnchecked(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM confirmations WHERE checked = false`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unchecked confirmations: %w", err)
	}

	return count, nil
}
