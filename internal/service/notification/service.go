package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/notification"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/timeutil"
)

// Approval action endpoints attached to coordinator feed items.
const (
	overtimeApprovalEndpoint     = "/api/v1/overtimes/%s/approval"
	confirmationApprovalEndpoint = "/api/v1/confirmations/%s/approval"
	permitApprovalEndpoint       = "/api/v1/permits/%s/approval"
)

// Display time for absence items. The absence sweep runs after the morning
// grace period, so absences surface with this fixed clock.
const absenceClock = "09:01"

// FileResolver turns a stored file name into a public URL.
type FileResolver interface {
	URL(ctx context.Context, path string) (string, error)
}

type NotificationServiceImpl struct {
	attendanceRepo   attendance.Repository
	confirmationRepo confirmation.Repository
	permitRepo       permit.Repository
	employeeRepo     employee.Repository
	files            FileResolver
	now              func() time.Time
}

func NewNotificationService(
	attendanceRepo attendance.Repository,
	confirmationRepo confirmation.Repository,
	permitRepo permit.Repository,
	employeeRepo employee.Repository,
	files FileResolver,
) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		attendanceRepo:   attendanceRepo,
		confirmationRepo: confirmationRepo,
		permitRepo:       permitRepo,
		employeeRepo:     employeeRepo,
		files:            files,
		now:              time.Now,
	}
}

// WithClock overrides the service clock.
func (s *NotificationServiceImpl) WithClock(now func() time.Time) *NotificationServiceImpl {
	s.now = now
	return s
}

// SubjectFeed implements notification.Service.
func (s *NotificationServiceImpl) SubjectFeed(ctx context.Context, nik string) ([]notification.Item, error) {
	emp, err := s.employeeRepo.GetByNIK(ctx, nik)
	if err != nil {
		return nil, err
	}

	today := timeutil.Midnight(s.now())
	b := notification.NewBuilder().NIK(emp.NIK).Name(emp.Name)

	att, err := s.attendanceRepo.GetByNIKAndDate(ctx, nik, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if att != nil {
		if err := s.pushSubjectConfirmations(ctx, b, att); err != nil {
			return nil, err
		}
		s.pushSubjectDaily(b, att)

		if att.Overtime != nil {
			o := att.Overtime
			b.Priority(notification.PriorityOvertime).
				Message(fmt.Sprintf("Permintaan lembur Anda %s.", notification.ApprovalPhrase(o.Approved, o.Checked))).
				Date(timeutil.ClockOf(o.CreatedAt).String()).
				At(o.CreatedAt).
				Push()
		}
	}

	permits, err := s.permitRepo.ListByNIKFromDate(ctx, nik, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming permits: %w", err)
	}
	for _, p := range permits {
		b.Priority(notification.PriorityOvertime).
			Message(fmt.Sprintf("Permintaan izin Anda mulai tanggal %s %s.",
				timeutil.FormatDate(p.StartDate), notification.ApprovalPhrase(p.Approved, p.Checked))).
			Date(timeutil.FormatDate(p.StartDate)).
			At(p.CreatedAt)
		if err := s.attachFile(ctx, b, p.Attachment); err != nil {
			return nil, err
		}
		b.Push()
	}

	return b.Items(), nil
}

// pushSubjectConfirmations pushes one item per confirmation on today's
// attendance, resolved or not, describing its approval state.
func (s *NotificationServiceImpl) pushSubjectConfirmations(ctx context.Context, b *notification.Builder, att *attendance.Attendance) error {
	confs, err := s.confirmationRepo.ListByAttendance(ctx, att.ID)
	if err != nil {
		return fmt.Errorf("failed to list confirmations: %w", err)
	}

	for _, c := range confs {
		b.Priority(notification.PriorityConfirmation).
			Message(fmt.Sprintf("Konfirmasi kehadiran %s Anda %s.",
				c.Type.Label(), notification.ApprovalPhrase(c.Approved, c.Checked))).
			Date(timeutil.ClockOf(c.CreatedAt).String()).
			At(c.CreatedAt)
		if err := s.attachFile(ctx, b, c.Attachment); err != nil {
			return err
		}
		b.Push()
	}
	return nil
}

// pushSubjectDaily pushes at most one daily-status item: lateness, absence,
// or an approved permit.
func (s *NotificationServiceImpl) pushSubjectDaily(b *notification.Builder, att *attendance.Attendance) {
	b.Priority(notification.PriorityDaily)

	if late, ok := timeutil.FormatDuration(att.LateSeconds()); ok {
		b.Message(fmt.Sprintf("Anda terlambat %s hari ini.", late)).
			Date(att.CheckIn.Clock().String()).
			At(att.CheckIn.Time).
			Push()
		return
	}

	switch att.Status {
	case attendance.StatusAbsent:
		b.Message("Anda tidak masuk hari ini.").
			Date(absenceClock).
			At(att.Date).
			Push()
	case attendance.StatusPermit:
		b.Message("Izin Anda telah disetujui oleh Koordinator.").
			Date(timeutil.FormatDate(att.Date)).
			At(att.Date).
			Push()
	}
}

// CoordinatorFeed implements notification.Service.
func (s *NotificationServiceImpl) CoordinatorFeed(ctx context.Context) ([]notification.Item, error) {
	today := timeutil.Midnight(s.now())

	names, err := s.employeeNames(ctx)
	if err != nil {
		return nil, err
	}

	b := notification.NewBuilder()

	atts, err := s.attendanceRepo.ListByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendances: %w", err)
	}
	for _, att := range atts {
		pendingOvertime := att.Overtime != nil && !att.Overtime.Checked
		if att.Status != attendance.StatusAbsent && att.Status != attendance.StatusPresence && !pendingOvertime {
			continue
		}

		b.NIK(att.NIK).Name(names.lookup(att.NIK))
		s.pushCoordinatorDaily(b, att)

		if pendingOvertime {
			b.Priority(notification.PriorityOvertime).
				Message("Mengajukan konfirmasi lembur.").
				Date(timeutil.ClockOf(att.Overtime.CreatedAt).String()).
				At(att.Overtime.CreatedAt).
				Action(fmt.Sprintf(overtimeApprovalEndpoint, att.Overtime.ID)).
				Push()
		}
	}

	confs, err := s.confirmationRepo.ListUncheckedByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list unchecked confirmations: %w", err)
	}
	for _, c := range confs {
		b.NIK(c.Attendance.NIK).Name(names.lookup(c.Attendance.NIK)).
			Priority(notification.PriorityConfirmation).
			Message(coordinatorConfirmationMessage(c)).
			Date(timeutil.ClockOf(c.CreatedAt).String()).
			At(c.CreatedAt).
			Action(fmt.Sprintf(confirmationApprovalEndpoint, c.ID))
		if err := s.attachFile(ctx, b, c.Attachment); err != nil {
			return nil, err
		}
		b.Push()
	}

	permits, err := s.permitRepo.ListUncheckedAfterDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list unchecked permits: %w", err)
	}
	for _, p := range permits {
		b.NIK(p.NIK).Name(names.lookup(p.NIK)).
			Priority(notification.PriorityDaily).
			Message(fmt.Sprintf("Mengajukan izin selama %d hari mulai tanggal %s dengan alasan %s.",
				p.Duration, timeutil.FormatDate(p.StartDate), p.Reason)).
			Date(timeutil.FormatDate(p.StartDate)).
			At(p.CreatedAt).
			Action(fmt.Sprintf(permitApprovalEndpoint, p.ID))
		if err := s.attachFile(ctx, b, p.Attachment); err != nil {
			return nil, err
		}
		b.Push()
	}

	return b.Items(), nil
}

// pushCoordinatorDaily pushes the per-employee lateness or absence line.
// Lateness takes precedence; an on-time presence pushes nothing.
func (s *NotificationServiceImpl) pushCoordinatorDaily(b *notification.Builder, att attendance.Attendance) {
	b.Priority(notification.PriorityCoordinator)

	if late, ok := timeutil.FormatDuration(att.LateSeconds()); ok {
		b.Message(fmt.Sprintf("Terlambat %s hari ini.", late)).
			Date(att.CheckIn.Clock().String()).
			At(att.CheckIn.Time).
			Push()
		return
	}

	if att.Status == attendance.StatusAbsent {
		b.Message("Tidak masuk hari ini.").
			Date(absenceClock).
			At(att.Date).
			Push()
	}
}

// coordinatorConfirmationMessage describes a pending correction: its type,
// the attendance status before correction, the worker's description, and
// what approval would change.
func coordinatorConfirmationMessage(c confirmation.Confirmation) string {
	att := c.Attendance
	head := fmt.Sprintf("Mengajukan konfirmasi %s dengan status sebelumnya %s: %q.",
		c.Type.Label(), statusBeforeCorrection(att), c.Description)

	if c.Type == confirmation.TypePermit {
		reason := ""
		if c.Reason != nil {
			reason = *c.Reason
		}
		return fmt.Sprintf("%s Alasan: %s. Persetujuan akan membuat izin satu hari.", head, reason)
	}

	label := c.Type.Label()
	target := attendance.ScheduleIn
	original := att.CheckIn
	if c.Type == confirmation.TypeCheckOut {
		target = attendance.ScheduleOut
		original = att.CheckOut
	}

	if original == nil {
		return fmt.Sprintf("%s Waktu %s akan diatur menjadi %s.", head, label, target)
	}
	return fmt.Sprintf("%s Waktu %s akan diubah dari %s menjadi %s.", head, label, original.Clock(), target)
}

// statusBeforeCorrection renders the attendance outcome the correction is
// disputing.
func statusBeforeCorrection(att *attendance.Attendance) string {
	switch {
	case att.Status == attendance.StatusAbsent:
		return "tidak hadir"
	case att.LateSeconds() > 0:
		return "terlambat"
	case att.CheckOutID == nil:
		return "tidak check out"
	case att.Status == attendance.StatusPermit:
		return "izin"
	default:
		return "hadir"
	}
}

func (s *NotificationServiceImpl) attachFile(ctx context.Context, b *notification.Builder, name *string) error {
	if name == nil || *name == "" {
		return nil
	}
	url, err := s.files.URL(ctx, *name)
	if err != nil {
		return fmt.Errorf("failed to resolve file url: %w", err)
	}
	b.File(url)
	return nil
}

type nameIndex map[string]string

func (n nameIndex) lookup(nik string) string {
	if name, ok := n[nik]; ok {
		return name
	}
	return nik
}

func (s *NotificationServiceImpl) employeeNames(ctx context.Context) (nameIndex, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	names := make(nameIndex, len(employees))
	for _, emp := range employees {
		names[emp.NIK] = emp.Name
	}
	return names, nil
}
