package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/service/servicetest"
)

var testDay = time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

func newTestService(store *servicetest.Store, at time.Time) *AttendanceServiceImpl {
	return NewAttendanceService(
		store.TxRunner(),
		store.AttendanceRepo(),
		store.CheckRepo(),
		store.OvertimeRepo(),
		store.ActivityRepo(),
		store.ConfirmationRepo(),
		store.PermitRepo(),
	).WithClock(func() time.Time { return at })
}

func TestCheckInCreatesAttendance(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestService(store, testDay.Add(6*time.Hour+55*time.Minute))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		NIK:       "1001",
		Latitude:  -7.95,
		Longitude: 112.61,
		PhotoName: "checks/2024-05-13/1001-in.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresence, resp.Status)
	assert.Equal(t, "2024-05-13", resp.Date)
	require.NotNil(t, resp.CheckIn)
	assert.Equal(t, "06:55", *resp.CheckIn)
	assert.Nil(t, resp.CheckOut)
}

func TestCheckInRewritesSweepAbsenceRow(t *testing.T) {
	store := servicetest.NewStore()
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})

	svc := newTestService(store, testDay.Add(9*time.Hour+30*time.Minute))
	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{NIK: "1001"})
	require.NoError(t, err)

	assert.Equal(t, attID, resp.ID)
	assert.Equal(t, attendance.StatusPresence, resp.Status)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusPresence, att.Status)
	assert.NotNil(t, att.CheckInID)
}

func TestCheckInTwice(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestService(store, testDay.Add(7*time.Hour))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{NIK: "1001"})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), attendance.CheckInRequest{NIK: "1001"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOutRequiresCheckIn(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestService(store, testDay.Add(15*time.Hour))

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{NIK: "1001"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutLinksSecondCheck(t *testing.T) {
	store := servicetest.NewStore()

	checkIn := newTestService(store, testDay.Add(7*time.Hour))
	_, err := checkIn.CheckIn(context.Background(), attendance.CheckInRequest{NIK: "1001"})
	require.NoError(t, err)

	checkOut := newTestService(store, testDay.Add(15*time.Hour+10*time.Minute))
	resp, err := checkOut.CheckOut(context.Background(), attendance.CheckOutRequest{NIK: "1001"})
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOut)
	assert.Equal(t, "15:10", *resp.CheckOut)

	_, err = checkOut.CheckOut(context.Background(), attendance.CheckOutRequest{NIK: "1001"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestRequestOvertimeWindow(t *testing.T) {
	store := servicetest.NewStore()

	checkID := store.SeedCheck(attendance.Check{Type: attendance.CheckIn, Time: testDay.Add(7 * time.Hour)})
	store.SeedAttendance(attendance.Attendance{
		NIK:       "1001",
		Date:      testDay,
		Status:    attendance.StatusPresence,
		CheckInID: &checkID,
	})

	// Before the scheduled end of work.
	_, err := newTestService(store, testDay.Add(14*time.Hour+59*time.Minute)).
		RequestOvertime(context.Background(), "1001")
	assert.ErrorIs(t, err, attendance.ErrOutsideOvertimeWindow)

	// After the cutoff.
	_, err = newTestService(store, testDay.Add(18*time.Hour+1*time.Minute)).
		RequestOvertime(context.Background(), "1001")
	assert.ErrorIs(t, err, attendance.ErrOutsideOvertimeWindow)

	// Inside the window.
	resp, err := newTestService(store, testDay.Add(16*time.Hour)).
		RequestOvertime(context.Background(), "1001")
	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.False(t, resp.Checked)

	// Only one request per day.
	_, err = newTestService(store, testDay.Add(16*time.Hour+30*time.Minute)).
		RequestOvertime(context.Background(), "1001")
	assert.ErrorIs(t, err, attendance.ErrOvertimeAlreadyRequested)
}

func TestAddActivityValidatesClocks(t *testing.T) {
	store := servicetest.NewStore()
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusPresence,
	})

	svc := newTestService(store, testDay.Add(10*time.Hour))

	_, err := svc.AddActivity(context.Background(), attendance.CreateActivityRequest{
		AttendanceID: attID,
		Description:  "Inspeksi gudang",
		StartTime:    "8:00",
		EndTime:      "09:00",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidActivityTime)

	_, err = svc.AddActivity(context.Background(), attendance.CreateActivityRequest{
		AttendanceID: attID,
		Description:  "Inspeksi gudang",
		StartTime:    "09:00",
		EndTime:      "08:00",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidActivityTime)

	resp, err := svc.AddActivity(context.Background(), attendance.CreateActivityRequest{
		AttendanceID: attID,
		Description:  "Inspeksi gudang",
		StartTime:    "08:00",
		EndTime:      "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.ActivityProgress, resp.Status)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, "09:30", resp.EndTime)
}

func TestFinishActivity(t *testing.T) {
	store := servicetest.NewStore()
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusPresence,
	})

	svc := newTestService(store, testDay.Add(10*time.Hour))
	created, err := svc.AddActivity(context.Background(), attendance.CreateActivityRequest{
		AttendanceID: attID,
		Description:  "Inspeksi gudang",
		StartTime:    "08:00",
		EndTime:      "09:00",
	})
	require.NoError(t, err)

	finished, err := svc.FinishActivity(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActivityDone, finished.Status)

	_, err = svc.FinishActivity(context.Background(), created.ID)
	assert.ErrorIs(t, err, attendance.ErrActivityAlreadyDone)
}

func TestDailySummaryLateAndWorkHours(t *testing.T) {
	store := servicetest.NewStore()

	checkInID := store.SeedCheck(attendance.Check{Type: attendance.CheckIn, Time: testDay.Add(7*time.Hour + 20*time.Minute)})
	checkOutID := store.SeedCheck(attendance.Check{Type: attendance.CheckOut, Time: testDay.Add(16 * time.Hour)})
	overtimeID := store.SeedOvertime(attendance.Overtime{Approved: true, Checked: true})
	store.SeedAttendance(attendance.Attendance{
		NIK:        "1001",
		Date:       testDay,
		Status:     attendance.StatusPresence,
		CheckInID:  &checkInID,
		CheckOutID: &checkOutID,
		OvertimeID: &overtimeID,
	})

	resp, err := newTestService(store, testDay.Add(17*time.Hour)).DailySummary(context.Background(), "1001")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresence, resp.Status)
	require.NotNil(t, resp.Late)
	assert.Equal(t, "20 menit", *resp.Late)
	require.NotNil(t, resp.Overtime)
	assert.Equal(t, "1 jam", *resp.Overtime)
	require.NotNil(t, resp.WorkHours)
	assert.Equal(t, "8 jam 40 menit", *resp.WorkHours)
}

func TestDailySummaryWithoutRowIsAbsent(t *testing.T) {
	store := servicetest.NewStore()

	resp, err := newTestService(store, testDay.Add(10*time.Hour)).DailySummary(context.Background(), "1001")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusAbsent, resp.Status)
	assert.Nil(t, resp.CheckIn)
	assert.Nil(t, resp.Late)
}

func TestWeeklyRecapCounts(t *testing.T) {
	store := servicetest.NewStore()

	store.SeedAttendance(attendance.Attendance{NIK: "1001", Date: testDay.AddDate(0, 0, -2), Status: attendance.StatusPresence})
	store.SeedAttendance(attendance.Attendance{NIK: "1001", Date: testDay.AddDate(0, 0, -1), Status: attendance.StatusAbsent})
	store.SeedAttendance(attendance.Attendance{NIK: "1001", Date: testDay, Status: attendance.StatusPermit})
	// Outside the window.
	store.SeedAttendance(attendance.Attendance{NIK: "1001", Date: testDay.AddDate(0, 0, -8), Status: attendance.StatusPresence})

	resp, err := newTestService(store, testDay.Add(10*time.Hour)).WeeklyRecap(context.Background(), "1001")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Presence)
	assert.Equal(t, 1, resp.Absent)
	assert.Equal(t, 1, resp.Permit)
	assert.Len(t, resp.Days, 3)
	assert.Equal(t, "2024-05-11", resp.Days[0].Date)
}

func TestCoordinatorSummary(t *testing.T) {
	store := servicetest.NewStore()

	overtimeID := store.SeedOvertime(attendance.Overtime{})
	checkID := store.SeedCheck(attendance.Check{Type: attendance.CheckIn, Time: testDay.Add(7 * time.Hour)})
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:        "1001",
		Date:       testDay,
		Status:     attendance.StatusPresence,
		CheckInID:  &checkID,
		OvertimeID: &overtimeID,
	})
	store.SeedAttendance(attendance.Attendance{NIK: "1002", Date: testDay, Status: attendance.StatusAbsent})
	store.SeedAttendance(attendance.Attendance{NIK: "1003", Date: testDay, Status: attendance.StatusPermit})

	store.SeedConfirmation(confirmation.Confirmation{AttendanceID: attID, Type: confirmation.TypeCheckOut})
	store.SeedPermit(permit.Permit{NIK: "1002", Reason: permit.ReasonSick, StartDate: testDay.AddDate(0, 0, 1), Duration: 1})

	resp, err := newTestService(store, testDay.Add(10*time.Hour)).CoordinatorSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Presence)
	assert.Equal(t, 1, resp.Absent)
	assert.Equal(t, 1, resp.Permit)
	assert.Equal(t, 1, resp.PendingOvertimes)
	assert.Equal(t, 1, resp.PendingConfirmations)
	assert.Equal(t, 1, resp.PendingPermitRequests)
}

var _ attendance.Service = (*AttendanceServiceImpl)(nil)
