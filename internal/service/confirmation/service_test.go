package confirmation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/service/servicetest"
)

var testDay = time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

func newTestService(store *servicetest.Store) *ConfirmationServiceImpl {
	return NewConfirmationService(
		store.TxRunner(),
		store.ConfirmationRepo(),
		store.AttendanceRepo(),
		store.CheckRepo(),
		store.OvertimeRepo(),
		store.PermitRepo(),
	).WithClock(func() time.Time { return testDay.Add(10 * time.Hour) })
}

func TestRequestCreatesUncheckedConfirmation(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})

	resp, err := newTestService(store).Request(context.Background(), confirmation.CreateRequest{
		NIK:         "1001",
		Type:        confirmation.TypeCheckIn,
		Description: "Lupa check in",
	})
	require.NoError(t, err)

	assert.False(t, resp.Approved)
	assert.False(t, resp.Checked)

	stored, ok := store.Confirmation(resp.ID)
	require.True(t, ok)
	assert.Equal(t, confirmation.TypeCheckIn, stored.Type)
}

func TestRequestRejectsSecondPendingConfirmation(t *testing.T) {
	store := servicetest.NewStore()
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckIn,
	})

	_, err := newTestService(store).Request(context.Background(), confirmation.CreateRequest{
		NIK:         "1001",
		Type:        confirmation.TypeCheckOut,
		Description: "Lupa check out",
	})
	assert.ErrorIs(t, err, confirmation.ErrPendingConfirmation)
}

func TestRequestPermitTypeRequiresReason(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})

	_, err := newTestService(store).Request(context.Background(), confirmation.CreateRequest{
		NIK:         "1001",
		Type:        confirmation.TypePermit,
		Description: "Anak sakit",
	})
	assert.ErrorIs(t, err, confirmation.ErrReasonRequired)
}

func TestRequestWithoutTodaysAttendance(t *testing.T) {
	store := servicetest.NewStore()

	_, err := newTestService(store).Request(context.Background(), confirmation.CreateRequest{
		NIK:         "1001",
		Type:        confirmation.TypeCheckIn,
		Description: "Lupa check in",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestResolveApprovedCheckInRewritesExistingCheck(t *testing.T) {
	store := servicetest.NewStore()

	// Checked in late at 07:45; approval rewrites the check to 07:00.
	checkID := store.SeedCheck(attendance.Check{
		Type: attendance.CheckIn,
		Time: testDay.Add(7*time.Hour + 45*time.Minute),
	})
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:       "1001",
		Date:      testDay,
		Status:    attendance.StatusPresence,
		CheckInID: &checkID,
	})
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckIn,
		Description:  "Macet parah",
		CreatedAt:    testDay.Add(8 * time.Hour),
	})

	resp, err := newTestService(store).Resolve(context.Background(), confID, true)
	require.NoError(t, err)
	assert.True(t, resp.Approved)

	check, ok := store.Check(checkID)
	require.True(t, ok)
	assert.Equal(t, testDay.Add(7*time.Hour), check.Time)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusPresence, att.Status)

	conf, ok := store.Confirmation(confID)
	require.True(t, ok)
	assert.True(t, conf.Checked)
	assert.True(t, conf.Approved)
}

func TestResolveApprovedCheckInCreatesCheckWhenMissing(t *testing.T) {
	store := servicetest.NewStore()

	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckIn,
		Description:  "Lupa check in",
		CreatedAt:    testDay.Add(10 * time.Hour),
	})

	_, err := newTestService(store).Resolve(context.Background(), confID, true)
	require.NoError(t, err)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusPresence, att.Status)
	require.NotNil(t, att.CheckInID)

	check, ok := store.Check(*att.CheckInID)
	require.True(t, ok)
	assert.Equal(t, attendance.CheckIn, check.Type)
	assert.Equal(t, testDay.Add(7*time.Hour), check.Time)
}

func TestResolveApprovedCheckOutSetsScheduleOut(t *testing.T) {
	store := servicetest.NewStore()

	checkInID := store.SeedCheck(attendance.Check{
		Type: attendance.CheckIn,
		Time: testDay.Add(6*time.Hour + 58*time.Minute),
	})
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:       "1001",
		Date:      testDay,
		Status:    attendance.StatusPresence,
		CheckInID: &checkInID,
	})
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckOut,
		Description:  "Lupa check out",
		CreatedAt:    testDay.Add(19 * time.Hour),
	})

	_, err := newTestService(store).Resolve(context.Background(), confID, true)
	require.NoError(t, err)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	require.NotNil(t, att.CheckOutID)

	check, ok := store.Check(*att.CheckOutID)
	require.True(t, ok)
	assert.Equal(t, attendance.CheckOut, check.Type)
	assert.Equal(t, testDay.Add(15*time.Hour), check.Time)
}

func TestResolveApprovedPermitTypeCreatesOneDayPermit(t *testing.T) {
	store := servicetest.NewStore()

	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	reason := "sakit"
	attachment := "attachments/1001/surat.pdf"
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypePermit,
		Description:  "Demam tinggi",
		Reason:       &reason,
		Attachment:   &attachment,
		CreatedAt:    testDay.Add(10 * time.Hour),
	})

	_, err := newTestService(store).Resolve(context.Background(), confID, true)
	require.NoError(t, err)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusPermit, att.Status)
	require.NotNil(t, att.PermitID)

	p, ok := store.Permit(*att.PermitID)
	require.True(t, ok)
	assert.Equal(t, "1001", p.NIK)
	assert.Equal(t, "sakit", p.Reason)
	assert.Equal(t, testDay, p.StartDate)
	assert.Equal(t, 1, p.Duration)
	assert.True(t, p.Approved)
	assert.True(t, p.Checked)
	require.NotNil(t, p.Attachment)
	assert.Equal(t, attachment, *p.Attachment)
}

func TestResolveDeniedLeavesAttendanceUntouched(t *testing.T) {
	store := servicetest.NewStore()

	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckIn,
		Description:  "Lupa check in",
	})

	resp, err := newTestService(store).Resolve(context.Background(), confID, false)
	require.NoError(t, err)
	assert.False(t, resp.Approved)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusAbsent, att.Status)
	assert.Nil(t, att.CheckInID)

	conf, ok := store.Confirmation(confID)
	require.True(t, ok)
	assert.True(t, conf.Checked)
	assert.False(t, conf.Approved)
}

func TestResolveTwiceReturnsAlreadyResolved(t *testing.T) {
	store := servicetest.NewStore()

	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckIn,
		Description:  "Lupa check in",
	})

	svc := newTestService(store)
	_, err := svc.Resolve(context.Background(), confID, false)
	require.NoError(t, err)

	// A second decision, even the same one, is a conflict.
	_, err = svc.Resolve(context.Background(), confID, false)
	assert.ErrorIs(t, err, confirmation.ErrAlreadyResolved)

	_, err = svc.Resolve(context.Background(), confID, true)
	assert.ErrorIs(t, err, confirmation.ErrAlreadyResolved)
}

func TestResolveUnknownConfirmation(t *testing.T) {
	store := servicetest.NewStore()

	_, err := newTestService(store).Resolve(context.Background(), "missing", true)
	assert.ErrorIs(t, err, confirmation.ErrConfirmationNotFound)
}

func TestResolveRollsBackWhenAttendanceUpdateFails(t *testing.T) {
	store := servicetest.NewStore()

	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	reason := "sakit"
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypePermit,
		Description:  "Demam",
		Reason:       &reason,
		CreatedAt:    testDay.Add(10 * time.Hour),
	})

	store.FailOn("attendance.Update", assert.AnError)

	_, err := newTestService(store).Resolve(context.Background(), confID, true)
	require.Error(t, err)

	// Nothing of the half-applied approval survives: the permit created
	// before the failing update is gone and the confirmation is untouched.
	assert.Empty(t, store.Permits())

	conf, ok := store.Confirmation(confID)
	require.True(t, ok)
	assert.False(t, conf.Checked)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusAbsent, att.Status)
	assert.Nil(t, att.PermitID)
}

func TestResolveOvertime(t *testing.T) {
	store := servicetest.NewStore()
	overtimeID := store.SeedOvertime(attendance.Overtime{})

	svc := newTestService(store)
	resp, err := svc.ResolveOvertime(context.Background(), overtimeID, true)
	require.NoError(t, err)
	assert.True(t, resp.Approved)

	_, err = svc.ResolveOvertime(context.Background(), overtimeID, false)
	assert.ErrorIs(t, err, attendance.ErrOvertimeAlreadyResolved)
}

var _ confirmation.Service = (*ConfirmationServiceImpl)(nil)
