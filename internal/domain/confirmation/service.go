package confirmation

import "context"

// Service defines the confirmation resolution interface.
type Service interface {
	// Request creates a pending confirmation for today's attendance. An
	// employee may have at most one unresolved confirmation at a time.
	Request(ctx context.Context, req CreateRequest) (ConfirmationResponse, error)

	// Resolve approves or denies a pending confirmation. Approval mutates
	// the underlying attendance record atomically; denial only flips the
	// flags. Resolving an already-checked confirmation fails with
	// ErrAlreadyResolved.
	Resolve(ctx context.Context, confirmationID string, approved bool) (ResolutionResponse, error)

	// ResolveOvertime approves or denies a pending overtime request.
	ResolveOvertime(ctx context.Context, overtimeID string, approved bool) (ResolutionResponse, error)
}
