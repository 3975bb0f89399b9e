package permit

import (
	"context"
	"fmt"
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/timeutil"
)

// FileResolver turns a stored file name into a public URL.
type FileResolver interface {
	URL(ctx context.Context, path string) (string, error)
}

type PermitServiceImpl struct {
	tx             database.TxRunner
	permitRepo     permit.Repository
	attendanceRepo attendance.Repository
	files          FileResolver
	now            func() time.Time
}

func NewPermitService(
	tx database.TxRunner,
	permitRepo permit.Repository,
	attendanceRepo attendance.Repository,
	files FileResolver,
) *PermitServiceImpl {
	return &PermitServiceImpl{
		tx:             tx,
		permitRepo:     permitRepo,
		attendanceRepo: attendanceRepo,
		files:          files,
		now:            time.Now,
	}
}

// WithClock overrides the service clock.
func (s *PermitServiceImpl) WithClock(now func() time.Time) *PermitServiceImpl {
	s.now = now
	return s
}

func validReason(reason string) bool {
	switch reason {
	case permit.ReasonSick, permit.ReasonFamily, permit.ReasonOther:
		return true
	}
	return false
}

// Request implements permit.Service.
func (s *PermitServiceImpl) Request(ctx context.Context, req permit.CreateRequest) (permit.PermitResponse, error) {
	if !validReason(req.Reason) {
		return permit.PermitResponse{}, permit.ErrInvalidReason
	}
	if req.Duration < 1 {
		return permit.PermitResponse{}, permit.ErrInvalidDuration
	}

	start, err := timeutil.ParseDate(req.StartDate)
	if err != nil {
		return permit.PermitResponse{}, fmt.Errorf("invalid start date: %w", err)
	}

	candidate := permit.Permit{
		NIK:        req.NIK,
		Reason:     req.Reason,
		StartDate:  start,
		Duration:   req.Duration,
		Attachment: req.Attachment,
	}

	existing, err := s.permitRepo.ListByNIKFromDate(ctx, req.NIK, timeutil.Midnight(s.now()))
	if err != nil {
		return permit.PermitResponse{}, fmt.Errorf("failed to list existing permits: %w", err)
	}
	for _, p := range existing {
		if p.Checked && !p.Approved {
			continue
		}
		if overlaps(candidate, p) {
			return permit.PermitResponse{}, permit.ErrOverlappingPermit
		}
	}

	created, err := s.permitRepo.Create(ctx, candidate)
	if err != nil {
		return permit.PermitResponse{}, fmt.Errorf("failed to create permit: %w", err)
	}

	return s.toResponse(ctx, created)
}

// overlaps reports whether two permits share a covered calendar day.
func overlaps(a, b permit.Permit) bool {
	return !a.StartDate.After(b.EndDate()) && !b.StartDate.After(a.EndDate())
}

// Resolve implements permit.Service. Approval writes a permit-status
// attendance row for every working day the permit spans, in the same
// transaction as the permit flags, so the range never applies partially.
// The permit row is re-read with a row lock inside the transaction, which
// makes a concurrent second resolution fail instead of double-applying.
func (s *PermitServiceImpl) Resolve(ctx context.Context, permitID string, approved bool) (permit.PermitResponse, error) {
	// Surface not-found before opening a transaction.
	if _, err := s.permitRepo.GetByID(ctx, permitID); err != nil {
		return permit.PermitResponse{}, err
	}

	var resolved permit.Permit
	err := s.tx(ctx, func(ctx context.Context) error {
		p, err := s.permitRepo.GetByIDForUpdate(ctx, permitID)
		if err != nil {
			return err
		}
		if p.Checked {
			return permit.ErrPermitAlreadyResolved
		}

		p.Checked = true
		p.Approved = approved
		if err := s.permitRepo.Update(ctx, p); err != nil {
			return err
		}

		if approved {
			if err := s.applyToAttendance(ctx, p); err != nil {
				return err
			}
		}

		resolved = p
		return nil
	})
	if err != nil {
		return permit.PermitResponse{}, err
	}

	return s.toResponse(ctx, resolved)
}

// applyToAttendance marks every covered working day as permit, rewriting
// rows that already exist and batch-inserting the rest.
func (s *PermitServiceImpl) applyToAttendance(ctx context.Context, p permit.Permit) error {
	var missing []attendance.Attendance
	for _, date := range p.CoveredDates() {
		att, err := s.attendanceRepo.GetByNIKAndDate(ctx, p.NIK, date)
		if err != nil {
			return fmt.Errorf("failed to get attendance for %s: %w", timeutil.FormatDate(date), err)
		}

		if att == nil {
			missing = append(missing, attendance.Attendance{
				NIK:      p.NIK,
				Date:     date,
				Status:   attendance.StatusPermit,
				PermitID: &p.ID,
			})
			continue
		}

		att.Status = attendance.StatusPermit
		att.PermitID = &p.ID
		if err := s.attendanceRepo.Update(ctx, *att); err != nil {
			return fmt.Errorf("failed to update attendance for %s: %w", timeutil.FormatDate(date), err)
		}
	}

	if len(missing) == 0 {
		return nil
	}
	if err := s.attendanceRepo.BulkCreate(ctx, missing); err != nil {
		return fmt.Errorf("failed to create permit attendances: %w", err)
	}
	return nil
}

// ListMine implements permit.Service.
func (s *PermitServiceImpl) ListMine(ctx context.Context, nik string) ([]permit.PermitResponse, error) {
	permits, err := s.permitRepo.ListByNIKFromDate(ctx, nik, timeutil.Midnight(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to list permits: %w", err)
	}

	resp := make([]permit.PermitResponse, 0, len(permits))
	for _, p := range permits {
		r, err := s.toResponse(ctx, p)
		if err != nil {
			return nil, err
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (s *PermitServiceImpl) toResponse(ctx context.Context, p permit.Permit) (permit.PermitResponse, error) {
	resp := permit.PermitResponse{
		ID:        p.ID,
		Reason:    p.Reason,
		StartDate: timeutil.FormatDate(p.StartDate),
		EndDate:   timeutil.FormatDate(p.EndDate()),
		Duration:  p.Duration,
		Approved:  p.Approved,
		Checked:   p.Checked,
	}

	if p.Attachment != nil && *p.Attachment != "" {
		url, err := s.files.URL(ctx, *p.Attachment)
		if err != nil {
			return permit.PermitResponse{}, fmt.Errorf("failed to resolve file url: %w", err)
		}
		resp.File = &url
	}

	return resp, nil
}
