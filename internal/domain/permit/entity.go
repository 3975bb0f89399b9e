package permit

import (
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/pkg/timeutil"
)

// Reason codes accepted on a permit request.
const (
	ReasonSick   = "sakit"
	ReasonFamily = "urusan keluarga"
	ReasonOther  = "lainnya"
)

// Permit is an absence request spanning one or more working days.
// Duration counts working days; Sundays are skipped when the end date is
// computed.
type Permit struct {
	ID         string
	NIK        string
	Reason     string
	StartDate  time.Time
	Duration   int
	Attachment *string
	Approved   bool
	Checked    bool
	CreatedAt  time.Time
}

// EndDate computes the last calendar day covered by the permit.
func (p Permit) EndDate() time.Time {
	return timeutil.AddWorkingDays(p.StartDate, p.Duration)
}

// CoveredDates lists every working day the permit spans.
func (p Permit) CoveredDates() []time.Time {
	end := p.EndDate()
	var dates []time.Time
	for d := p.StartDate; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}
