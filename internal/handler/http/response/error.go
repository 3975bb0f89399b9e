package response

import (
	"errors"
	"net/http"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrOvertimeAlreadyRequested):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrOutsideOvertimeWindow),
		errors.Is(err, attendance.ErrInvalidActivityTime):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrOvertimeAlreadyResolved),
		errors.Is(err, attendance.ErrActivityAlreadyDone):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrCheckNotFound),
		errors.Is(err, attendance.ErrOvertimeNotFound),
		errors.Is(err, attendance.ErrActivityNotFound):
		NotFound(w, err.Error())

	// Confirmation domain errors
	case errors.Is(err, confirmation.ErrConfirmationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, confirmation.ErrAlreadyResolved),
		errors.Is(err, confirmation.ErrPendingConfirmation):
		Conflict(w, err.Error())
	case errors.Is(err, confirmation.ErrInvalidType),
		errors.Is(err, confirmation.ErrReasonRequired):
		BadRequest(w, err.Error(), nil)

	// Permit domain errors
	case errors.Is(err, permit.ErrPermitNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, permit.ErrPermitAlreadyResolved),
		errors.Is(err, permit.ErrOverlappingPermit):
		Conflict(w, err.Error())
	case errors.Is(err, permit.ErrInvalidReason),
		errors.Is(err, permit.ErrInvalidDuration):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrInvalidSyncKey):
		Unauthorized(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
