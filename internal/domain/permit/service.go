package permit

import "context"

// Service defines the permit service interface.
type Service interface {
	// Request creates a pending permit (approved=false, checked=false).
	Request(ctx context.Context, req CreateRequest) (PermitResponse, error)

	// Resolve approves or denies a pending permit. Approval creates a
	// permit-status attendance row for every working day in the range,
	// atomically.
	Resolve(ctx context.Context, permitID string, approved bool) (PermitResponse, error)

	// ListMine lists the caller's permits starting today or later.
	ListMine(ctx context.Context, nik string) ([]PermitResponse, error)
}
