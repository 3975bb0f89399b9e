package confirmation

import (
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
)

// Type is the kind of correction a confirmation requests.
type Type string

const (
	TypeCheckIn  Type = "check_in"
	TypeCheckOut Type = "check_out"
	TypePermit   Type = "permit"
)

// Valid reports whether t is one of the three known confirmation types.
func (t Type) Valid() bool {
	switch t {
	case TypeCheckIn, TypeCheckOut, TypePermit:
		return true
	}
	return false
}

// Label is the human form used inside notification messages.
func (t Type) Label() string {
	switch t {
	case TypeCheckIn:
		return "check in"
	case TypeCheckOut:
		return "check out"
	case TypePermit:
		return "izin"
	}
	return string(t)
}

// Confirmation is a worker-submitted request to correct today's attendance
// outcome. Reason is only set for TypePermit.
type Confirmation struct {
	ID           string
	AttendanceID string
	Type         Type
	Description  string
	Reason       *string
	Attachment   *string
	Approved     bool
	Checked      bool
	CreatedAt    time.Time

	// Joined attendance, populated where the query needs it.
	Attendance *attendance.Attendance
}
