package attendance

import "context"

// Service defines the attendance service interface.
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// RequestOvertime creates an unchecked overtime linked to today's
	// attendance. Only allowed inside the overtime window.
	RequestOvertime(ctx context.Context, nik string) (OvertimeResponse, error)

	// Logbook
	AddActivity(ctx context.Context, req CreateActivityRequest) (ActivityResponse, error)
	ListActivities(ctx context.Context, attendanceID string) ([]ActivityResponse, error)
	FinishActivity(ctx context.Context, activityID string) (ActivityResponse, error)

	// Dashboards
	DailySummary(ctx context.Context, nik string) (DailySummaryResponse, error)
	WeeklyRecap(ctx context.Context, nik string) (WeeklyRecapResponse, error)
	CoordinatorSummary(ctx context.Context) (CoordinatorSummaryResponse, error)
}
