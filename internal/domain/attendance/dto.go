package attendance

// ============= Request DTOs =============

// CheckInRequest records a check-in for today. PhotoName is the stored file
// name produced by the file service before the service is called.
type CheckInRequest struct {
	NIK       string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PhotoName string  `json:"-"`
}

// CheckOutRequest records a check-out on today's attendance row.
type CheckOutRequest struct {
	NIK       string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PhotoName string  `json:"-"`
}

// CreateActivityRequest adds a logbook entry to an attendance row.
type CreateActivityRequest struct {
	AttendanceID string `json:"-"`
	Description  string `json:"description"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// ============= Response DTOs =============

// AttendanceResponse is the per-day attendance view.
type AttendanceResponse struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

// OvertimeResponse summarizes an overtime request.
type OvertimeResponse struct {
	ID       string `json:"id"`
	Approved bool   `json:"approved"`
	Checked  bool   `json:"checked"`
}

// ActivityResponse is one logbook entry.
type ActivityResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// DailySummaryResponse is the employee's dashboard for one day. The phrase
// fields are nil when the underlying delta is not positive.
type DailySummaryResponse struct {
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	CheckIn   *string `json:"check_in"`
	CheckOut  *string `json:"check_out"`
	Late      *string `json:"late"`
	Overtime  *string `json:"overtime"`
	WorkHours *string `json:"work_hours"`
}

// WeeklyRecapResponse aggregates one employee's week.
type WeeklyRecapResponse struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	Presence int                  `json:"presence"`
	Absent   int                  `json:"absent"`
	Permit   int                  `json:"permit"`
	Days     []AttendanceResponse `json:"days"`
}

// CoordinatorSummaryResponse is the coordinator's daily roll-up.
type CoordinatorSummaryResponse struct {
	Date                  string `json:"date"`
	Presence              int    `json:"presence"`
	Absent                int    `json:"absent"`
	Permit                int    `json:"permit"`
	PendingOvertimes      int    `json:"pending_overtimes"`
	PendingConfirmations  int    `json:"pending_confirmations"`
	PendingPermitRequests int    `json:"pending_permit_requests"`
}
