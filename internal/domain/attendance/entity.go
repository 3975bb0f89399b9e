package attendance

import (
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/pkg/timeutil"
)

// Attendance status values
const (
	StatusPresence = "presence"
	StatusAbsent   = "absent"
	StatusPermit   = "permit"
)

// CheckType distinguishes check-in from check-out records.
type CheckType string

const (
	CheckIn  CheckType = "in"
	CheckOut CheckType = "out"
)

// Schedule boundaries. Lateness is measured against ScheduleIn, overtime
// against ScheduleOut; confirmation approvals rewrite check times to them.
var (
	ScheduleIn  = timeutil.TimeOfDay(7 * timeutil.SecondsPerHour)
	ScheduleOut = timeutil.TimeOfDay(15 * timeutil.SecondsPerHour)
)

// Overtime requests are only accepted between ScheduleOut and OvertimeCutoff.
var OvertimeCutoff = timeutil.TimeOfDay(18 * timeutil.SecondsPerHour)

// Attendance is the single row per (employee, calendar date).
type Attendance struct {
	ID         string
	NIK        string
	Date       time.Time
	Status     string
	CheckInID  *string
	CheckOutID *string
	PermitID   *string
	OvertimeID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined relations, populated by the repository where the query needs them.
	CheckIn  *Check
	CheckOut *Check
	Overtime *Overtime
}

// Check is a single check-in or check-out event. Immutable once created,
// except that an approved confirmation rewrites Time.
type Check struct {
	ID        string
	Type      CheckType
	Time      time.Time
	Latitude  float64
	Longitude float64
	PhotoName string
	CreatedAt time.Time
}

// Clock returns the clock component of the check time.
func (c Check) Clock() timeutil.TimeOfDay {
	return timeutil.ClockOf(c.Time)
}

// Overtime is an extended-hours request linked 1:1 to an attendance row.
type Overtime struct {
	ID        string
	Approved  bool
	Checked   bool
	CreatedAt time.Time
}

// Activity status values
const (
	ActivityProgress = "progress"
	ActivityDone     = "done"
)

// Activity is one logbook entry under an attendance row.
type Activity struct {
	ID           string
	AttendanceID string
	Description  string
	Status       string
	StartTime    time.Time
	EndTime      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LateSeconds returns how many seconds after ScheduleIn the check-in
// happened, or 0 when there is no check-in or it was on time.
func (a Attendance) LateSeconds() int {
	if a.CheckIn == nil {
		return 0
	}
	late := a.CheckIn.Clock().Sub(ScheduleIn)
	if late < 0 {
		return 0
	}
	return late
}
