package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance rows. Queries that feed the
// notification engines load the CheckIn/CheckOut/Overtime relations.
type Repository interface {
	// Create creates a new attendance row
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves an attendance row with its relations
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByNIKAndDate retrieves the row for one employee on one date,
	// with relations. Returns nil when there is no row.
	GetByNIKAndDate(ctx context.Context, nik string, date time.Time) (*Attendance, error)

	// Update updates status and relation links of an existing row
	Update(ctx context.Context, att Attendance) error

	// ListByDate retrieves all rows for a calendar date, with relations
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListByNIKAndRange retrieves an employee's rows between two dates
	// inclusive, with relations, ordered by date
	ListByNIKAndRange(ctx context.Context, nik string, from, to time.Time) ([]Attendance, error)

	// BulkCreate inserts absence rows produced by the nightly sweep
	BulkCreate(ctx context.Context, atts []Attendance) error

	// DeleteStaleAbsences removes absent rows older than the cutoff that
	// never got a check, permit, or overtime attached
	DeleteStaleAbsences(ctx context.Context, before time.Time) (int64, error)
}

// CheckRepository defines data access for check-in/check-out records.
type CheckRepository interface {
	Create(ctx context.Context, check Check) (Check, error)
	GetByID(ctx context.Context, id string) (Check, error)

	// UpdateTime rewrites the timestamp of an existing check record.
	// Only confirmation approval does this.
	UpdateTime(ctx context.Context, id string, t time.Time) error
}

// OvertimeRepository defines data access for overtime requests.
type OvertimeRepository interface {
	Create(ctx context.Context, overtime Overtime) (Overtime, error)
	GetByID(ctx context.Context, id string) (Overtime, error)

	// GetByIDForUpdate locks the row for the rest of the transaction so a
	// concurrent resolution cannot slip between read and write.
	GetByIDForUpdate(ctx context.Context, id string) (Overtime, error)
	Update(ctx context.Context, overtime Overtime) error
}

// ActivityRepository defines data access for logbook entries.
type ActivityRepository interface {
	Create(ctx context.Context, activity Activity) (Activity, error)
	GetByID(ctx context.Context, id string) (Activity, error)
	ListByAttendance(ctx context.Context, attendanceID string) ([]Activity, error)
	Update(ctx context.Context, activity Activity) error
}
