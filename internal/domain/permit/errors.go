package permit

import "errors"

// Permit domain errors
var (
	ErrPermitNotFound        = errors.New("permit not found")
	ErrPermitAlreadyResolved = errors.New("permit has already been approved or denied")
	ErrOverlappingPermit     = errors.New("a permit already covers part of the requested range")
	ErrInvalidReason         = errors.New("invalid permit reason")
	ErrInvalidDuration       = errors.New("permit duration must be at least one working day")
)
