package confirmation

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

type ConfirmationServiceImpl struct {
	tx               database.TxRunner
	confirmationRepo confirmation.Repository
	attendanceRepo   attendance.Repository
	checkRepo        attendance.CheckRepository
	overtimeRepo     attendance.OvertimeRepository
	permitRepo       permit.Repository
	now              func() time.Time
}

func NewConfirmationService(
	tx database.TxRunner,
	confirmationRepo confirmation.Repository,
	attendanceRepo attendance.Repository,
	checkRepo attendance.CheckRepository,
	overtimeRepo attendance.OvertimeRepository,
	permitRepo permit.Repository,
) *ConfirmationServiceImpl {
	return &ConfirmationServiceImpl{
		tx:               tx,
		confirmationRepo: confirmationRepo,
		attendanceRepo:   attendanceRepo,
		checkRepo:        checkRepo,
		overtimeRepo:     overtimeRepo,
		permitRepo:       permitRepo,
		now:              time.Now,
	}
}

// WithClock overrides the service clock.
func (s *ConfirmationServiceImpl) WithClock(now func() time.Time) *ConfirmationServiceImpl {
	s.now = now
	return s
}

// Request implements confirmation.Service.
func (s *ConfirmationServiceImpl) Request(ctx context.Context, req confirmation.CreateRequest) (confirmation.ConfirmationResponse, error) {
	if !req.Type.Valid() {
		return confirmation.ConfirmationResponse{}, confirmation.ErrInvalidType
	}
	if req.Type == confirmation.TypePermit && (req.Reason == nil || *req.Reason == "") {
		return confirmation.ConfirmationResponse{}, confirmation.ErrReasonRequired
	}

	pending, err := s.confirmationRepo.HasUncheckedByNIK(ctx, req.NIK)
	if err != nil {
		return confirmation.ConfirmationResponse{}, fmt.Errorf("failed to check pending confirmations: %w", err)
	}
	if pending {
		return confirmation.ConfirmationResponse{}, confirmation.ErrPendingConfirmation
	}

	today := timeutil.Midnight(s.now())
	att, err := s.attendanceRepo.GetByNIKAndDate(ctx, req.NIK, today)
	if err != nil {
		return confirmation.ConfirmationResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil {
		return confirmation.ConfirmationResponse{}, attendance.ErrAttendanceNotFound
	}

	created, err := s.confirmationRepo.Create(ctx, confirmation.Confirmation{
		AttendanceID: att.ID,
		Type:         req.Type,
		Description:  req.Description,
		Reason:       req.Reason,
		Attachment:   req.Attachment,
	})
	if err != nil {
		return confirmation.ConfirmationResponse{}, fmt.Errorf("failed to create confirmation: %w", err)
	}

	return toConfirmationResponse(created), nil
}

// Resolve implements confirmation.Service. The approved branch mutates the
// attendance record, so the whole decision runs in one transaction; the
// confirmation row is re-read with a row lock inside it, which makes a
// concurrent second resolution fail with ErrAlreadyResolved instead of
// double-applying.
func (s *ConfirmationServiceImpl) Resolve(ctx context.Context, confirmationID string, approved bool) (confirmation.ResolutionResponse, error) {
	// Surface not-found before opening a transaction.
	if _, err := s.confirmationRepo.GetByID(ctx, confirmationID); err != nil {
		return confirmation.ResolutionResponse{}, err
	}

	var resp confirmation.ResolutionResponse
	err := s.tx(ctx, func(ctx context.Context) error {
		conf, err := s.confirmationRepo.GetByIDForUpdate(ctx, confirmationID)
		if err != nil {
			return err
		}
		if conf.Checked {
			return confirmation.ErrAlreadyResolved
		}

		if approved {
			if err := s.applyCorrection(ctx, conf); err != nil {
				return err
			}
		}

		conf.Checked = true
		conf.Approved = approved
		if err := s.confirmationRepo.Update(ctx, conf); err != nil {
			return err
		}

		resp = confirmation.ResolutionResponse{ID: conf.ID, Approved: approved}
		return nil
	})
	if err != nil {
		return confirmation.ResolutionResponse{}, err
	}

	return resp, nil
}

// applyCorrection performs the per-type attendance mutation of an approved
// confirmation. Callers must run it inside a transaction.
func (s *ConfirmationServiceImpl) applyCorrection(ctx context.Context, conf confirmation.Confirmation) error {
	att, err := s.attendanceRepo.GetByID(ctx, conf.AttendanceID)
	if err != nil {
		return err
	}

	switch conf.Type {
	case confirmation.TypeCheckIn:
		if err := s.correctCheck(ctx, &att, attendance.CheckIn, attendance.ScheduleIn); err != nil {
			return err
		}
		att.Status = attendance.StatusPresence

	case confirmation.TypeCheckOut:
		if err := s.correctCheck(ctx, &att, attendance.CheckOut, attendance.ScheduleOut); err != nil {
			return err
		}
		att.Status = attendance.StatusPresence

	case confirmation.TypePermit:
		reason := ""
		if conf.Reason != nil {
			reason = *conf.Reason
		}
		created, err := s.permitRepo.Create(ctx, permit.Permit{
			NIK:        att.NIK,
			Reason:     reason,
			StartDate:  timeutil.Midnight(conf.CreatedAt),
			Duration:   1,
			Attachment: conf.Attachment,
			Approved:   true,
			Checked:    true,
		})
		if err != nil {
			return err
		}
		att.PermitID = &created.ID
		att.Status = attendance.StatusPermit

	default:
		// Type is validated on creation; a new variant reaching this point
		// is a programming error, not a silent no-op.
		return confirmation.ErrInvalidType
	}

	return s.attendanceRepo.Update(ctx, att)
}

// correctCheck rewrites the linked check of the given direction to the
// schedule boundary, creating and linking a fresh check when none exists.
func (s *ConfirmationServiceImpl) correctCheck(ctx context.Context, att *attendance.Attendance, direction attendance.CheckType, target timeutil.TimeOfDay) error {
	linkID := att.CheckInID
	if direction == attendance.CheckOut {
		linkID = att.CheckOutID
	}

	correctedAt := target.On(att.Date)

	if linkID != nil {
		return s.checkRepo.UpdateTime(ctx, *linkID, correctedAt)
	}

	created, err := s.checkRepo.Create(ctx, attendance.Check{
		Type: direction,
		Time: correctedAt,
	})
	if err != nil {
		return err
	}

	if direction == attendance.CheckOut {
		att.CheckOutID = &created.ID
	} else {
		att.CheckInID = &created.ID
	}
	return nil
}

// ResolveOvertime implements confirmation.Service.
func (s *ConfirmationServiceImpl) ResolveOvertime(ctx context.Context, overtimeID string, approved bool) (confirmation.ResolutionResponse, error) {
	if _, err := s.overtimeRepo.GetByID(ctx, overtimeID); err != nil {
		return confirmation.ResolutionResponse{}, err
	}

	var resp confirmation.ResolutionResponse
	err := s.tx(ctx, func(ctx context.Context) error {
		overtime, err := s.overtimeRepo.GetByIDForUpdate(ctx, overtimeID)
		if err != nil {
			return err
		}
		if overtime.Checked {
			return attendance.ErrOvertimeAlreadyResolved
		}

		overtime.Checked = true
		overtime.Approved = approved
		if err := s.overtimeRepo.Update(ctx, overtime); err != nil {
			return err
		}

		resp = confirmation.ResolutionResponse{ID: overtime.ID, Approved: approved}
		return nil
	})
	if err != nil {
		return confirmation.ResolutionResponse{}, err
	}

	return resp, nil
}

func toConfirmationResponse(c confirmation.Confirmation) confirmation.ConfirmationResponse {
	return confirmation.ConfirmationResponse{
		ID:          c.ID,
		Type:        c.Type,
		Description: c.Description,
		Reason:      c.Reason,
		Approved:    c.Approved,
		Checked:     c.Checked,
	}
}
