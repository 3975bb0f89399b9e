package employee

import "context"

// Service defines the employee directory service interface.
type Service interface {
	Get(ctx context.Context, nik string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)

	// Sync refreshes the directory cache from the HR system push.
	Sync(ctx context.Context, req SyncRequest) (SyncResponse, error)
}
