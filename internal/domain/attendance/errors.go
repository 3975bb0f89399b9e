package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")

	// Overtime errors
	ErrOvertimeNotFound         = errors.New("overtime record not found")
	ErrOvertimeAlreadyRequested = errors.New("overtime has already been requested today")
	ErrOvertimeAlreadyResolved  = errors.New("overtime has already been approved or denied")
	ErrOutsideOvertimeWindow    = errors.New("overtime can only be requested between 15:00 and 18:00")

	// Activity errors
	ErrActivityNotFound    = errors.New("activity not found")
	ErrActivityAlreadyDone = errors.New("activity has already been finished")
	ErrInvalidActivityTime = errors.New("activity times must be HH:MM clock values with start before end")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrCheckNotFound      = errors.New("check record not found")
)
