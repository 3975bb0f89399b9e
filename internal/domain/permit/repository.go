package permit

import (
	"context"
	"time"
)

// Repository defines data access for permits.
type Repository interface {
	Create(ctx context.Context, p Permit) (Permit, error)
	GetByID(ctx context.Context, id string) (Permit, error)

	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Permit, error)
	Update(ctx context.Context, p Permit) error

	// ListByNIKFromDate retrieves an employee's permits whose start date is
	// on or after the given date, newest first
	ListByNIKFromDate(ctx context.Context, nik string, from time.Time) ([]Permit, error)

	// ListUncheckedAfterDate retrieves unchecked permits starting strictly
	// after the given date, across all employees
	ListUncheckedAfterDate(ctx context.Context, after time.Time) ([]Permit, error)

	// CountUnchecked counts permits no coordinator has acted on yet
	CountUnchecked(ctx context.Context) (int, error)
}
