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

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.nik, a.date, a.status,
		   a.check_in_id, a.check_out_id, a.permit_id, a.overtime_id,
		   a.created_at, a.updated_at,
		   ci.id, ci.type, ci.time, ci.latitude, ci.longitude, ci.photo_name, ci.created_at,
		   co.id, co.type, co.time, co.latitude, co.longitude, co.photo_name, co.created_at,
		   o.id, o.approved, o.checked, o.created_at
	FROM attendances a
	LEFT JOIN checks ci ON ci.id = a.check_in_id
	LEFT JOIN checks co ON co.id = a.check_out_id
	LEFT JOIN overtimes o ON o.id = a.overtime_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAttendance reads one attendanceSelect row, assembling the joined
// check-in/check-out/overtime relations when present.
func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var att attendance.Attendance
	var (
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

	err := row.Scan(
		&att.ID, &att.NIK, &att.Date, &att.Status,
		&att.CheckInID, &att.CheckOutID, &att.PermitID, &att.OvertimeID,
		&att.CreatedAt, &att.UpdatedAt,
		&ciID, &ciType, &ciTime, &ciLat, &ciLng, &ciPhoto, &ciCreated,
		&coID, &coType, &coTime, &coLat, &coLng, &coPhoto, &coCreated,
		&oID, &oApproved, &oChecked, &oCreated,
	)
	if err != nil {
		return attendance.Attendance{}, err
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

	return att, nil
}

// Create implements attendance.Repository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (nik, date, status, check_in_id, check_out_id, permit_id, overtime_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.NIK, att.Date, att.Status,
		att.CheckInID, att.CheckOutID, att.PermitID, att.OvertimeID,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByNIKAndDate implements attendance.Repository.
func (r *attendanceRepository) GetByNIKAndDate(ctx context.Context, nik string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.nik = $1 AND a.date = $2 LIMIT 1`, nik, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no row for this employee and date
		}
		return nil, fmt.Errorf("failed to get attendance by nik and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET status = $2, check_in_id = $3, check_out_id = $4, permit_id = $5, overtime_id = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, att.ID, att.Status, att.CheckInID, att.CheckOutID, att.PermitID, att.OvertimeID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByDate implements attendance.Repository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.date = $1 ORDER BY a.nik`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	defer rows.Close()

	var atts []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		atts = append(atts, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}

	return atts, nil
}

// ListByNIKAndRange implements attendance.Repository.
func (r *attendanceRepository) ListByNIKAndRange(ctx context.Context, nik string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.nik = $1 AND a.date BETWEEN $2 AND $3 ORDER BY a.date`, nik, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by range: %w", err)
	}
	defer rows.Close()

	var atts []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		atts = append(atts, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}

	return atts, nil
}

// BulkCreate implements attendance.Repository.
func (r *attendanceRepository) BulkCreate(ctx context.Context, atts []attendance.Attendance) error {
	if len(atts) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for _, att := range atts {
		batch.Queue(`
			INSERT INTO attendances (nik, date, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (nik, date) DO NOTHING
		`, att.NIK, att.Date, att.Status)
	}

	var results pgx.BatchResults
	switch conn := q.(type) {
	case pgx.Tx:
		results = conn.SendBatch(ctx, batch)
	default:
		results = r.db.Pool.SendBatch(ctx, batch)
	}
	defer results.Close()

	for range atts {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to bulk create attendances: %w", err)
		}
	}

	return nil
}

// DeleteStaleAbsences implements attendance.Repository.
func (r *attendanceRepository) DeleteStaleAbsences(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendances
		WHERE status = $1
		  AND date < $2
		  AND check_in_id IS NULL
		  AND check_out_id IS NULL
		  AND permit_id IS NULL
		  AND overtime_id IS NULL
	`

	tag, err := q.Exec(ctx, query, attendance.StatusAbsent, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale absences: %w", err)
	}

	return tag.RowsAffected(), nil
}
