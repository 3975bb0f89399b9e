package employee

import "context"

// Repository defines data access for the employee directory cache.
type Repository interface {
	// GetByNIK retrieves one cached employee; ErrEmployeeNotFound when the
	// NIK is unknown
	GetByNIK(ctx context.Context, nik string) (Employee, error)

	// List retrieves the whole cache ordered by NIK
	List(ctx context.Context) ([]Employee, error)

	// Upsert inserts or refreshes a batch of directory rows
	Upsert(ctx context.Context, employees []Employee) error
}
