package confirmation

import "errors"

// Confirmation domain errors
var (
	ErrConfirmationNotFound = errors.New("attendance confirmation not found")
	ErrAlreadyResolved      = errors.New("confirmation has already been approved or denied")
	ErrPendingConfirmation  = errors.New("you already have an unresolved confirmation")
	ErrInvalidType          = errors.New("invalid confirmation type")
	ErrReasonRequired       = errors.New("a reason is required for permit confirmations")
)
