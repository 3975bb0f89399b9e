package notification

import "context"

// Service defines the notification feed interface.
type Service interface {
	// SubjectFeed assembles the feed for one employee.
	SubjectFeed(ctx context.Context, nik string) ([]Item, error)

	// CoordinatorFeed assembles the aggregate feed across all employees.
	CoordinatorFeed(ctx context.Context) ([]Item, error)
}
