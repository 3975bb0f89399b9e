package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidSyncKey   = errors.New("invalid directory sync key")
)
