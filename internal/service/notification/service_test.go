package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/notification"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/service/servicetest"
)

var testDay = time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

func newTestService(store *servicetest.Store) *NotificationServiceImpl {
	return NewNotificationService(
		store.AttendanceRepo(),
		store.ConfirmationRepo(),
		store.PermitRepo(),
		store.EmployeeRepo(),
		servicetest.Files{},
	).WithClock(func() time.Time { return testDay.Add(10 * time.Hour) })
}

func TestSubjectFeedLateCheckIn(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	checkInAt := testDay.Add(7*time.Hour + 20*time.Minute)
	checkID := store.SeedCheck(attendance.Check{Type: attendance.CheckIn, Time: checkInAt})
	store.SeedAttendance(attendance.Attendance{
		NIK:       "1001",
		Date:      testDay,
		Status:    attendance.StatusPresence,
		CheckInID: &checkID,
	})

	items, err := newTestService(store).SubjectFeed(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "1001", items[0].NIK)
	assert.Equal(t, "Budi Santoso", items[0].Name)
	assert.Equal(t, "Anda terlambat 20 menit hari ini.", items[0].Message)
	assert.Equal(t, "07:20", items[0].Date)
	assert.Nil(t, items[0].ActionEndpoint)
}

func TestSubjectFeedAbsent(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")
	store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})

	items, err := newTestService(store).SubjectFeed(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Anda tidak masuk hari ini.", items[0].Message)
	assert.Equal(t, "09:01", items[0].Date)
}

func TestSubjectFeedOnTimePushesNoDailyItem(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	checkID := store.SeedCheck(attendance.Check{
		Type: attendance.CheckIn,
		Time: testDay.Add(6*time.Hour + 55*time.Minute),
	})
	store.SeedAttendance(attendance.Attendance{
		NIK:       "1001",
		Date:      testDay,
		Status:    attendance.StatusPresence,
		CheckInID: &checkID,
	})

	items, err := newTestService(store).SubjectFeed(context.Background(), "1001")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSubjectFeedOrdersOvertimeBeforeConfirmationBeforeDaily(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	checkID := store.SeedCheck(attendance.Check{
		Type: attendance.CheckIn,
		Time: testDay.Add(7*time.Hour + 30*time.Minute),
	})
	overtimeID := store.SeedOvertime(attendance.Overtime{
		Approved:  true,
		Checked:   true,
		CreatedAt: testDay.Add(15 * time.Hour),
	})
	attID := store.SeedAttendance(attendance.Attendance{
		NIK:        "1001",
		Date:       testDay,
		Status:     attendance.StatusPresence,
		CheckInID:  &checkID,
		OvertimeID: &overtimeID,
	})
	store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckIn,
		Description:  "Lupa check in",
		CreatedAt:    testDay.Add(8 * time.Hour),
	})

	items, err := newTestService(store).SubjectFeed(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Permintaan lembur Anda telah disetujui oleh Koordinator.", items[0].Message)
	assert.Equal(t, "Konfirmasi kehadiran check in Anda belum disetujui oleh Koordinator.", items[1].Message)
	assert.Equal(t, "Anda terlambat 30 menit hari ini.", items[2].Message)
}

func TestSubjectFeedUpcomingPermitWithAttachment(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	attachment := "attachments/1001/surat.pdf"
	store.SeedPermit(permit.Permit{
		NIK:        "1001",
		Reason:     permit.ReasonSick,
		StartDate:  testDay.AddDate(0, 0, 2),
		Duration:   1,
		Attachment: &attachment,
		CreatedAt:  testDay.Add(9 * time.Hour),
	})

	items, err := newTestService(store).SubjectFeed(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Permintaan izin Anda mulai tanggal 2024-05-15 belum disetujui oleh Koordinator.", items[0].Message)
	assert.Equal(t, "2024-05-15", items[0].Date)
	require.NotNil(t, items[0].File)
	assert.Equal(t, "https://files.example.com/attachments/1001/surat.pdf", *items[0].File)
}

func TestSubjectFeedUnknownEmployee(t *testing.T) {
	store := servicetest.NewStore()

	_, err := newTestService(store).SubjectFeed(context.Background(), "9999")
	assert.Error(t, err)
}

func TestCoordinatorFeedAbsent(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")
	store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "1001", items[0].NIK)
	assert.Equal(t, "Budi Santoso", items[0].Name)
	assert.Equal(t, "Tidak masuk hari ini.", items[0].Message)
	assert.Equal(t, "09:01", items[0].Date)
	assert.Nil(t, items[0].ActionEndpoint)
}

func TestCoordinatorFeedLatenessTakesPrecedenceOverAbsence(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	// Late check-in after the sweep marked the row absent.
	checkID := store.SeedCheck(attendance.Check{
		Type: attendance.CheckIn,
		Time: testDay.Add(9*time.Hour + 15*time.Minute),
	})
	store.SeedAttendance(attendance.Attendance{
		NIK:       "1001",
		Date:      testDay,
		Status:    attendance.StatusAbsent,
		CheckInID: &checkID,
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Terlambat 2 jam 15 menit hari ini.", items[0].Message)
	assert.Equal(t, "09:15", items[0].Date)
}

func TestCoordinatorFeedPendingOvertimeCarriesAction(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	checkID := store.SeedCheck(attendance.Check{
		Type: attendance.CheckIn,
		Time: testDay.Add(6*time.Hour + 58*time.Minute),
	})
	overtimeID := store.SeedOvertime(attendance.Overtime{CreatedAt: testDay.Add(15*time.Hour + 5*time.Minute)})
	store.SeedAttendance(attendance.Attendance{
		NIK:        "1001",
		Date:       testDay,
		Status:     attendance.StatusPresence,
		CheckInID:  &checkID,
		OvertimeID: &overtimeID,
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Mengajukan konfirmasi lembur.", items[0].Message)
	assert.Equal(t, "15:05", items[0].Date)
	require.NotNil(t, items[0].ActionEndpoint)
	assert.Equal(t, "/api/v1/overtimes/"+overtimeID+"/approval", *items[0].ActionEndpoint)
}

func TestCoordinatorFeedPendingConfirmationDescribesCorrection(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	confID := store.SeedConfirmation(confirmation.Confirmation{
		AttendanceID: attID,
		Type:         confirmation.TypeCheckIn,
		Description:  "Lupa check in",
		CreatedAt:    testDay.Add(10*time.Hour + 30*time.Minute),
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	// The confirmation item sorts before the absence item.
	conf := items[0]
	assert.Equal(t, `Mengajukan konfirmasi check in dengan status sebelumnya tidak hadir: "Lupa check in". Waktu check in akan diatur menjadi 07:00.`, conf.Message)
	assert.Equal(t, "10:30", conf.Date)
	require.NotNil(t, conf.ActionEndpoint)
	assert.Equal(t, "/api/v1/confirmations/"+confID+"/approval", *conf.ActionEndpoint)

	assert.Equal(t, "Tidak masuk hari ini.", items[1].Message)
}

func TestCoordinatorFeedPendingPermitCarriesAction(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	permitID := store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonFamily,
		StartDate: testDay.AddDate(0, 0, 3),
		Duration:  2,
		CreatedAt: testDay.Add(8 * time.Hour),
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Mengajukan izin selama 2 hari mulai tanggal 2024-05-16 dengan alasan urusan keluarga.", items[0].Message)
	require.NotNil(t, items[0].ActionEndpoint)
	assert.Equal(t, "/api/v1/permits/"+permitID+"/approval", *items[0].ActionEndpoint)
}

func TestCoordinatorFeedPermitStartingTodayIsExcluded(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")

	store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay,
		Duration:  1,
		CreatedAt: testDay.Add(8 * time.Hour),
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCoordinatorFeedOrdering(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedEmployee("1001", "Budi Santoso")
	store.SeedEmployee("1002", "Siti Rahma")

	// Absent employee: coordinator daily item, priority 4.
	store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})

	// Pending overtime on a present employee: priority 1.
	checkID := store.SeedCheck(attendance.Check{
		Type: attendance.CheckIn,
		Time: testDay.Add(6*time.Hour + 50*time.Minute),
	})
	overtimeID := store.SeedOvertime(attendance.Overtime{CreatedAt: testDay.Add(15 * time.Hour)})
	store.SeedAttendance(attendance.Attendance{
		NIK:        "1002",
		Date:       testDay,
		Status:     attendance.StatusPresence,
		CheckInID:  &checkID,
		OvertimeID: &overtimeID,
	})

	// Pending future permit: priority 3.
	store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay.AddDate(0, 0, 1),
		Duration:  1,
		CreatedAt: testDay.Add(8 * time.Hour),
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Mengajukan konfirmasi lembur.", items[0].Message)
	assert.Contains(t, items[1].Message, "Mengajukan izin")
	assert.Equal(t, "Tidak masuk hari ini.", items[2].Message)
}

func TestCoordinatorFeedUnknownNIKFallsBackToNIK(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedAttendance(attendance.Attendance{
		NIK:    "2002",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})

	items, err := newTestService(store).CoordinatorFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2002", items[0].Name)
}

var _ notification.Service = (*NotificationServiceImpl)(nil)
