package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/timeutil"
)

type AttendanceServiceImpl struct {
	tx               database.TxRunner
	attendanceRepo   attendance.Repository
	checkRepo        attendance.CheckRepository
	overtimeRepo     attendance.OvertimeRepository
	activityRepo     attendance.ActivityRepository
	confirmationRepo confirmation.Repository
	permitRepo       permit.Repository
	now              func() time.Time
}

func NewAttendanceService(
	tx database.TxRunner,
	attendanceRepo attendance.Repository,
	checkRepo attendance.CheckRepository,
	overtimeRepo attendance.OvertimeRepository,
	activityRepo attendance.ActivityRepository,
	confirmationRepo confirmation.Repository,
	permitRepo permit.Repository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		tx:               tx,
		attendanceRepo:   attendanceRepo,
		checkRepo:        checkRepo,
		overtimeRepo:     overtimeRepo,
		activityRepo:     activityRepo,
		confirmationRepo: confirmationRepo,
		permitRepo:       permitRepo,
		now:              time.Now,
	}
}

// WithClock overrides the service clock.
func (s *AttendanceServiceImpl) WithClock(now func() time.Time) *AttendanceServiceImpl {
	s.now = now
	return s
}

// CheckIn implements attendance.Service. The check record and the attendance
// row it links into are written in one transaction.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	now := s.now()
	today := timeutil.Midnight(now)

	att, err := s.attendanceRepo.GetByNIKAndDate(ctx, req.NIK, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att != nil && att.CheckInID != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	var resp attendance.AttendanceResponse
	err = s.tx(ctx, func(ctx context.Context) error {
		check, err := s.checkRepo.Create(ctx, attendance.Check{
			Type:      attendance.CheckIn,
			Time:      now,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			PhotoName: req.PhotoName,
		})
		if err != nil {
			return fmt.Errorf("failed to create check-in: %w", err)
		}

		if att == nil {
			created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
				NIK:       req.NIK,
				Date:      today,
				Status:    attendance.StatusPresence,
				CheckInID: &check.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}
			created.CheckIn = &check
			resp = toAttendanceResponse(created)
			return nil
		}

		// A nightly-sweep absence row already exists; checking in rewrites it.
		att.Status = attendance.StatusPresence
		att.CheckInID = &check.ID
		if err := s.attendanceRepo.Update(ctx, *att); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		att.CheckIn = &check
		resp = toAttendanceResponse(*att)
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return resp, nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	now := s.now()
	today := timeutil.Midnight(now)

	att, err := s.attendanceRepo.GetByNIKAndDate(ctx, req.NIK, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil || att.CheckInID == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOutID != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	var resp attendance.AttendanceResponse
	err = s.tx(ctx, func(ctx context.Context) error {
		check, err := s.checkRepo.Create(ctx, attendance.Check{
			Type:      attendance.CheckOut,
			Time:      now,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			PhotoName: req.PhotoName,
		})
		if err != nil {
			return fmt.Errorf("failed to create check-out: %w", err)
		}

		att.CheckOutID = &check.ID
		if err := s.attendanceRepo.Update(ctx, *att); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		att.CheckOut = &check
		resp = toAttendanceResponse(*att)
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return resp, nil
}

// RequestOvertime implements attendance.Service. Requests are only accepted
// between the scheduled end of work and the overtime cutoff.
func (s *AttendanceServiceImpl) RequestOvertime(ctx context.Context, nik string) (attendance.OvertimeResponse, error) {
	now := s.now()
	clock := timeutil.ClockOf(now)
	if clock.Sub(attendance.ScheduleOut) < 0 || clock.Sub(attendance.OvertimeCutoff) > 0 {
		return attendance.OvertimeResponse{}, attendance.ErrOutsideOvertimeWindow
	}

	att, err := s.attendanceRepo.GetByNIKAndDate(ctx, nik, timeutil.Midnight(now))
	if err != nil {
		return attendance.OvertimeResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil || att.CheckInID == nil {
		return attendance.OvertimeResponse{}, attendance.ErrNotCheckedIn
	}
	if att.OvertimeID != nil {
		return attendance.OvertimeResponse{}, attendance.ErrOvertimeAlreadyRequested
	}

	var resp attendance.OvertimeResponse
	err = s.tx(ctx, func(ctx context.Context) error {
		overtime, err := s.overtimeRepo.Create(ctx, attendance.Overtime{})
		if err != nil {
			return fmt.Errorf("failed to create overtime: %w", err)
		}

		att.OvertimeID = &overtime.ID
		if err := s.attendanceRepo.Update(ctx, *att); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		resp = attendance.OvertimeResponse{
			ID:       overtime.ID,
			Approved: overtime.Approved,
			Checked:  overtime.Checked,
		}
		return nil
	})
	if err != nil {
		return attendance.OvertimeResponse{}, err
	}

	return resp, nil
}

// AddActivity implements attendance.Service.
func (s *AttendanceServiceImpl) AddActivity(ctx context.Context, req attendance.CreateActivityRequest) (attendance.ActivityResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.ActivityResponse{}, err
	}

	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return attendance.ActivityResponse{}, attendance.ErrInvalidActivityTime
	}
	end, err := timeutil.ParseClock(req.EndTime)
	if err != nil {
		return attendance.ActivityResponse{}, attendance.ErrInvalidActivityTime
	}
	if end.Sub(start) <= 0 {
		return attendance.ActivityResponse{}, attendance.ErrInvalidActivityTime
	}

	activity, err := s.activityRepo.Create(ctx, attendance.Activity{
		AttendanceID: att.ID,
		Description:  req.Description,
		Status:       attendance.ActivityProgress,
		StartTime:    start.On(att.Date),
		EndTime:      end.On(att.Date),
	})
	if err != nil {
		return attendance.ActivityResponse{}, fmt.Errorf("failed to create activity: %w", err)
	}

	return toActivityResponse(activity), nil
}

// ListActivities implements attendance.Service.
func (s *AttendanceServiceImpl) ListActivities(ctx context.Context, attendanceID string) ([]attendance.ActivityResponse, error) {
	activities, err := s.activityRepo.ListByAttendance(ctx, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	resp := make([]attendance.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, toActivityResponse(a))
	}
	return resp, nil
}

// FinishActivity implements attendance.Service.
func (s *AttendanceServiceImpl) FinishActivity(ctx context.Context, activityID string) (attendance.ActivityResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return attendance.ActivityResponse{}, err
	}
	if activity.Status == attendance.ActivityDone {
		return attendance.ActivityResponse{}, attendance.ErrActivityAlreadyDone
	}

	activity.Status = attendance.ActivityDone
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return attendance.ActivityResponse{}, fmt.Errorf("failed to update activity: %w", err)
	}

	return toActivityResponse(activity), nil
}

// DailySummary implements attendance.Service. An employee with no row yet is
// shown as absent rather than erroring, since the dashboard loads before the
// first check-in of the day.
func (s *AttendanceServiceImpl) DailySummary(ctx context.Context, nik string) (attendance.DailySummaryResponse, error) {
	today := timeutil.Midnight(s.now())

	att, err := s.attendanceRepo.GetByNIKAndDate(ctx, nik, today)
	if err != nil {
		return attendance.DailySummaryResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil {
		return attendance.DailySummaryResponse{
			Date:   timeutil.FormatDate(today),
			Status: attendance.StatusAbsent,
		}, nil
	}

	resp := attendance.DailySummaryResponse{
		Date:   timeutil.FormatDate(att.Date),
		Status: att.Status,
	}

	if att.CheckIn != nil {
		clock := att.CheckIn.Clock().String()
		resp.CheckIn = &clock
	}
	if att.CheckOut != nil {
		clock := att.CheckOut.Clock().String()
		resp.CheckOut = &clock
	}

	if late, ok := timeutil.FormatDuration(att.LateSeconds()); ok {
		resp.Late = &late
	}

	if att.CheckOut != nil {
		if att.Overtime != nil && att.Overtime.Approved {
			if overtime, ok := timeutil.FormatDuration(att.CheckOut.Clock().Sub(attendance.ScheduleOut)); ok {
				resp.Overtime = &overtime
			}
		}
		if att.CheckIn != nil {
			if worked, ok := timeutil.FormatDuration(att.CheckOut.Clock().Sub(att.CheckIn.Clock())); ok {
				resp.WorkHours = &worked
			}
		}
	}

	return resp, nil
}

// WeeklyRecap implements attendance.Service. The recap window is the last
// seven calendar days ending today.
func (s *AttendanceServiceImpl) WeeklyRecap(ctx context.Context, nik string) (attendance.WeeklyRecapResponse, error) {
	to := timeutil.Midnight(s.now())
	from := to.AddDate(0, 0, -6)

	atts, err := s.attendanceRepo.ListByNIKAndRange(ctx, nik, from, to)
	if err != nil {
		return attendance.WeeklyRecapResponse{}, fmt.Errorf("failed to list attendance range: %w", err)
	}

	resp := attendance.WeeklyRecapResponse{
		From: timeutil.FormatDate(from),
		To:   timeutil.FormatDate(to),
		Days: make([]attendance.AttendanceResponse, 0, len(atts)),
	}
	for _, att := range atts {
		switch att.Status {
		case attendance.StatusPresence:
			resp.Presence++
		case attendance.StatusAbsent:
			resp.Absent++
		case attendance.StatusPermit:
			resp.Permit++
		}
		resp.Days = append(resp.Days, toAttendanceResponse(att))
	}

	return resp, nil
}

// CoordinatorSummary implements attendance.Service.
func (s *AttendanceServiceImpl) CoordinatorSummary(ctx context.Context) (attendance.CoordinatorSummaryResponse, error) {
	today := timeutil.Midnight(s.now())

	atts, err := s.attendanceRepo.ListByDate(ctx, today)
	if err != nil {
		return attendance.CoordinatorSummaryResponse{}, fmt.Errorf("failed to list today's attendances: %w", err)
	}

	resp := attendance.CoordinatorSummaryResponse{Date: timeutil.FormatDate(today)}
	for _, att := range atts {
		switch att.Status {
		case attendance.StatusPresence:
			resp.Presence++
		case attendance.StatusAbsent:
			resp.Absent++
		case attendance.StatusPermit:
			resp.Permit++
		}
		if att.Overtime != nil && !att.Overtime.Checked {
			resp.PendingOvertimes++
		}
	}

	resp.PendingConfirmations, err = s.confirmationRepo.CountUnchecked(ctx)
	if err != nil {
		return attendance.CoordinatorSummaryResponse{}, fmt.Errorf("failed to count unchecked confirmations: %w", err)
	}
	resp.PendingPermitRequests, err = s.permitRepo.CountUnchecked(ctx)
	if err != nil {
		return attendance.CoordinatorSummaryResponse{}, fmt.Errorf("failed to count unchecked permits: %w", err)
	}

	return resp, nil
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:     att.ID,
		Date:   timeutil.FormatDate(att.Date),
		Status: att.Status,
	}
	if att.CheckIn != nil {
		clock := att.CheckIn.Clock().String()
		resp.CheckIn = &clock
	}
	if att.CheckOut != nil {
		clock := att.CheckOut.Clock().String()
		resp.CheckOut = &clock
	}
	return resp
}

func toActivityResponse(a attendance.Activity) attendance.ActivityResponse {
	return attendance.ActivityResponse{
		ID:          a.ID,
		Description: a.Description,
		Status:      a.Status,
		StartTime:   timeutil.ClockOf(a.StartTime).String(),
		EndTime:     timeutil.ClockOf(a.EndTime).String(),
	}
}
