package confirmation

import (
	"context"
	"time"
)

// Repository defines data access for attendance confirmations.
type Repository interface {
	Create(ctx context.Context, c Confirmation) (Confirmation, error)
	GetByID(ctx context.Context, id string) (Confirmation, error)

	// GetByIDForUpdate locks the row for the rest of the transaction so a
	// concurrent resolution cannot slip between read and write.
	GetByIDForUpdate(ctx context.Context, id string) (Confirmation, error)
	Update(ctx context.Context, c Confirmation) error

	// ListByAttendance retrieves every confirmation on one attendance row,
	// newest first
	ListByAttendance(ctx context.Context, attendanceID string) ([]Confirmation, error)

	// ListUncheckedByDate retrieves unchecked confirmations created on the
	// given date across all employees, with the joined attendance and its
	// check relations
	ListUncheckedByDate(ctx context.Context, date time.Time) ([]Confirmation, error)

	// HasUncheckedByNIK reports whether the employee has an unresolved
	// confirmation
	HasUncheckedByNIK(ctx context.Context, nik string) (bool, error)

	// CountUnchecked counts confirmations no coordinator has acted on yet
	CountUnchecked(ctx context.Context) (int, error)
}
