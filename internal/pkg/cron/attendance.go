package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/timeutil"
)

// Absence rows older than this with no check, permit, or overtime attached
// are garbage from employees who left; the cleanup job drops them.
const staleAbsenceAge = 30 * 24 * time.Hour

type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
}

// WithClock overrides the job clock.
func (j *AttendanceJobs) WithClock(now func() time.Time) *AttendanceJobs {
	j.now = now
	return j
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
	scheduler.AddJob("cleanup_stale_absences", 1*time.Hour, j.CleanupStaleAbsences)
}

// MarkAbsentEmployees writes an absence row for every employee with no
// attendance today. It runs after the morning grace period ends at 09:00;
// a later check-in rewrites the row to presence.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := j.now()
	if now.Hour() != 9 {
		return nil
	}

	today := timeutil.Midnight(now)
	if today.Weekday() == time.Sunday {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	employees, err := j.employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	var absences []attendance.Attendance
	for _, emp := range employees {
		att, err := j.attendanceRepo.GetByNIKAndDate(ctx, emp.NIK, today)
		if err != nil {
			slog.Error("Cron: Failed to check attendance", "nik", emp.NIK, "error", err)
			continue
		}
		if att != nil {
			continue
		}

		absences = append(absences, attendance.Attendance{
			NIK:    emp.NIK,
			Date:   today,
			Status: attendance.StatusAbsent,
		})
	}

	if len(absences) == 0 {
		slog.Info("Cron: No employees to mark absent")
		return nil
	}

	if err := j.attendanceRepo.BulkCreate(ctx, absences); err != nil {
		return fmt.Errorf("failed to bulk create absences: %w", err)
	}

	slog.Info("Cron: Marked absent employees", "count", len(absences))
	return nil
}

// CleanupStaleAbsences drops old sweep-created absence rows nothing ever
// attached to. It runs once a day at midnight.
func (j *AttendanceJobs) CleanupStaleAbsences(ctx context.Context) error {
	now := j.now()
	if now.Hour() != 0 {
		return nil
	}

	cutoff := timeutil.Midnight(now.Add(-staleAbsenceAge))
	deleted, err := j.attendanceRepo.DeleteStaleAbsences(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete stale absences: %w", err)
	}

	if deleted > 0 {
		slog.Info("Cron: Deleted stale absences", "count", deleted, "cutoff", timeutil.FormatDate(cutoff))
	}
	return nil
}
