package permit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/service/servicetest"
)

// Monday.
var testDay = time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

func newTestService(store *servicetest.Store) *PermitServiceImpl {
	return NewPermitService(
		store.TxRunner(),
		store.PermitRepo(),
		store.AttendanceRepo(),
		servicetest.Files{},
	).WithClock(func() time.Time { return testDay.Add(9 * time.Hour) })
}

func TestRequestCreatesPendingPermit(t *testing.T) {
	store := servicetest.NewStore()

	resp, err := newTestService(store).Request(context.Background(), permit.CreateRequest{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: "2024-05-15",
		Duration:  2,
	})
	require.NoError(t, err)

	assert.False(t, resp.Approved)
	assert.False(t, resp.Checked)
	assert.Equal(t, "2024-05-15", resp.StartDate)
	assert.Equal(t, "2024-05-16", resp.EndDate)
}

func TestRequestEndDateSkipsSunday(t *testing.T) {
	store := servicetest.NewStore()

	// Saturday start, two working days: Sunday is skipped, so the permit
	// runs Saturday and Monday.
	resp, err := newTestService(store).Request(context.Background(), permit.CreateRequest{
		NIK:       "1001",
		Reason:    permit.ReasonFamily,
		StartDate: "2024-05-18",
		Duration:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", resp.EndDate)
}

func TestRequestValidation(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestService(store)

	_, err := svc.Request(context.Background(), permit.CreateRequest{
		NIK:       "1001",
		Reason:    "liburan",
		StartDate: "2024-05-15",
		Duration:  1,
	})
	assert.ErrorIs(t, err, permit.ErrInvalidReason)

	_, err = svc.Request(context.Background(), permit.CreateRequest{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: "2024-05-15",
		Duration:  0,
	})
	assert.ErrorIs(t, err, permit.ErrInvalidDuration)

	_, err = svc.Request(context.Background(), permit.CreateRequest{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: "15-05-2024",
		Duration:  1,
	})
	assert.Error(t, err)
}

func TestRequestRejectsOverlap(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay.AddDate(0, 0, 2),
		Duration:  2,
	})

	_, err := newTestService(store).Request(context.Background(), permit.CreateRequest{
		NIK:       "1001",
		Reason:    permit.ReasonFamily,
		StartDate: "2024-05-16",
		Duration:  1,
	})
	assert.ErrorIs(t, err, permit.ErrOverlappingPermit)
}

func TestRequestIgnoresDeniedPermitOnOverlap(t *testing.T) {
	store := servicetest.NewStore()
	store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay.AddDate(0, 0, 2),
		Duration:  2,
		Checked:   true,
		Approved:  false,
	})

	_, err := newTestService(store).Request(context.Background(), permit.CreateRequest{
		NIK:       "1001",
		Reason:    permit.ReasonFamily,
		StartDate: "2024-05-16",
		Duration:  1,
	})
	assert.NoError(t, err)
}

func TestResolveApprovedWritesAttendanceForEveryWorkingDay(t *testing.T) {
	store := servicetest.NewStore()

	// Saturday start spanning the weekend: Saturday and Monday get rows,
	// Sunday does not.
	permitID := store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC),
		Duration:  2,
	})

	resp, err := newTestService(store).Resolve(context.Background(), permitID, true)
	require.NoError(t, err)
	assert.True(t, resp.Approved)
	assert.True(t, resp.Checked)

	repo := store.AttendanceRepo()
	ctx := context.Background()

	saturday, err := repo.GetByNIKAndDate(ctx, "1001", time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, saturday)
	assert.Equal(t, attendance.StatusPermit, saturday.Status)

	sunday, err := repo.GetByNIKAndDate(ctx, "1001", time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, sunday)

	monday, err := repo.GetByNIKAndDate(ctx, "1001", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, monday)
	assert.Equal(t, attendance.StatusPermit, monday.Status)
	require.NotNil(t, monday.PermitID)
	assert.Equal(t, permitID, *monday.PermitID)
}

func TestResolveApprovedRewritesExistingAbsenceRow(t *testing.T) {
	store := servicetest.NewStore()

	attID := store.SeedAttendance(attendance.Attendance{
		NIK:    "1001",
		Date:   testDay,
		Status: attendance.StatusAbsent,
	})
	permitID := store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay,
		Duration:  1,
	})

	_, err := newTestService(store).Resolve(context.Background(), permitID, true)
	require.NoError(t, err)

	att, ok := store.Attendance(attID)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusPermit, att.Status)
	require.NotNil(t, att.PermitID)
	assert.Equal(t, permitID, *att.PermitID)
}

func TestResolveDeniedWritesNoAttendance(t *testing.T) {
	store := servicetest.NewStore()

	permitID := store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay.AddDate(0, 0, 1),
		Duration:  1,
	})

	resp, err := newTestService(store).Resolve(context.Background(), permitID, false)
	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.True(t, resp.Checked)

	att, err := store.AttendanceRepo().GetByNIKAndDate(context.Background(), "1001", testDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, att)
}

func TestResolveTwiceReturnsAlreadyResolved(t *testing.T) {
	store := servicetest.NewStore()
	permitID := store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay.AddDate(0, 0, 1),
		Duration:  1,
	})

	svc := newTestService(store)
	_, err := svc.Resolve(context.Background(), permitID, true)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), permitID, true)
	assert.ErrorIs(t, err, permit.ErrPermitAlreadyResolved)
}

func TestResolveRollsBackWhenAttendanceWriteFails(t *testing.T) {
	store := servicetest.NewStore()
	permitID := store.SeedPermit(permit.Permit{
		NIK:       "1001",
		Reason:    permit.ReasonSick,
		StartDate: testDay.AddDate(0, 0, 1),
		Duration:  2,
	})

	store.FailOn("attendance.BulkCreate", assert.AnError)

	_, err := newTestService(store).Resolve(context.Background(), permitID, true)
	require.Error(t, err)

	// The permit flags rolled back with the attendance writes.
	p, ok := store.Permit(permitID)
	require.True(t, ok)
	assert.False(t, p.Checked)
	assert.False(t, p.Approved)
}

func TestListMineResolvesAttachmentURL(t *testing.T) {
	store := servicetest.NewStore()
	attachment := "attachments/1001/surat.pdf"
	store.SeedPermit(permit.Permit{
		NIK:        "1001",
		Reason:     permit.ReasonSick,
		StartDate:  testDay.AddDate(0, 0, 1),
		Duration:   1,
		Attachment: &attachment,
	})

	permits, err := newTestService(store).ListMine(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, permits, 1)
	require.NotNil(t, permits[0].File)
	assert.Equal(t, "https://files.example.com/attachments/1001/surat.pdf", *permits[0].File)
}

var _ permit.Service = (*PermitServiceImpl)(nil)
