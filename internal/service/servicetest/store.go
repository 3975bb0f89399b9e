// Package servicetest provides an in-memory store implementing the domain
// repository interfaces, for exercising services without a database. Its
// transaction runner snapshots the store and restores it on error, so
// all-or-nothing behavior can be asserted directly.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/timeutil"
)

// Store is a single in-memory backing map shared by all fake repositories,
// so cross-repository joins behave like the real schema.
type Store struct {
	mu    sync.Mutex
	seq   int
	clock time.Time

	attendances   map[string]attendance.Attendance
	checks        map[string]attendance.Check
	overtimes     map[string]attendance.Overtime
	activities    map[string]attendance.Activity
	confirmations map[string]confirmation.Confirmation
	permits       map[string]permit.Permit
	employees     map[string]employee.Employee

	// failures maps an operation name ("attendance.Update") to an error the
	// next call returns, for exercising rollback paths.
	failures map[string]error
}

func NewStore() *Store {
	return &Store{
		clock:         time.Now(),
		attendances:   make(map[string]attendance.Attendance),
		checks:        make(map[string]attendance.Check),
		overtimes:     make(map[string]attendance.Overtime),
		activities:    make(map[string]attendance.Activity),
		confirmations: make(map[string]confirmation.Confirmation),
		permits:       make(map[string]permit.Permit),
		employees:     make(map[string]employee.Employee),
		failures:      make(map[string]error),
	}
}

// SetClock fixes the timestamp stamped on created rows.
func (s *Store) SetClock(t time.Time) { s.clock = t }

// FailOn makes the named operation return err on every call until cleared.
func (s *Store) FailOn(op string, err error) { s.failures[op] = err }

func (s *Store) failure(op string) error { return s.failures[op] }

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// TxRunner returns a runner that snapshots the store before fn and restores
// the snapshot when fn fails, mimicking a rolled-back transaction.
func (s *Store) TxRunner() database.TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		snap := s.snapshot()
		if err := fn(ctx); err != nil {
			s.restore(snap)
			return err
		}
		return nil
	}
}

type storeSnapshot struct {
	attendances   map[string]attendance.Attendance
	checks        map[string]attendance.Check
	overtimes     map[string]attendance.Overtime
	activities    map[string]attendance.Activity
	confirmations map[string]confirmation.Confirmation
	permits       map[string]permit.Permit
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storeSnapshot{
		attendances:   copyMap(s.attendances),
		checks:        copyMap(s.checks),
		overtimes:     copyMap(s.overtimes),
		activities:    copyMap(s.activities),
		confirmations: copyMap(s.confirmations),
		permits:       copyMap(s.permits),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendances = snap.attendances
	s.checks = snap.checks
	s.overtimes = snap.overtimes
	s.activities = snap.activities
	s.confirmations = snap.confirmations
	s.permits = snap.permits
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ============= Seeding helpers =============

// SeedEmployee adds a directory row.
func (s *Store) SeedEmployee(nik, name string) {
	s.employees[nik] = employee.Employee{NIK: nik, Name: name, UpdatedAt: s.clock}
}

// SeedAttendance inserts an attendance row directly and returns its ID.
func (s *Store) SeedAttendance(att attendance.Attendance) string {
	if att.ID == "" {
		att.ID = s.nextID("att")
	}
	if att.CreatedAt.IsZero() {
		att.CreatedAt = s.clock
	}
	s.attendances[att.ID] = att
	return att.ID
}

// SeedCheck inserts a check row directly and returns its ID.
func (s *Store) SeedCheck(check attendance.Check) string {
	if check.ID == "" {
		check.ID = s.nextID("chk")
	}
	if check.CreatedAt.IsZero() {
		check.CreatedAt = s.clock
	}
	s.checks[check.ID] = check
	return check.ID
}

// SeedOvertime inserts an overtime row directly and returns its ID.
func (s *Store) SeedOvertime(o attendance.Overtime) string {
	if o.ID == "" {
		o.ID = s.nextID("ovt")
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.clock
	}
	s.overtimes[o.ID] = o
	return o.ID
}

// SeedConfirmation inserts a confirmation row directly and returns its ID.
func (s *Store) SeedConfirmation(c confirmation.Confirmation) string {
	if c.ID == "" {
		c.ID = s.nextID("cnf")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.clock
	}
	s.confirmations[c.ID] = c
	return c.ID
}

// SeedPermit inserts a permit row directly and returns its ID.
func (s *Store) SeedPermit(p permit.Permit) string {
	if p.ID == "" {
		p.ID = s.nextID("pmt")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.clock
	}
	s.permits[p.ID] = p
	return p.ID
}

// Attendance returns the stored row by ID, for assertions.
func (s *Store) Attendance(id string) (attendance.Attendance, bool) {
	att, ok := s.attendances[id]
	return att, ok
}

// Check returns the stored row by ID, for assertions.
func (s *Store) Check(id string) (attendance.Check, bool) {
	c, ok := s.checks[id]
	return c, ok
}

// Confirmation returns the stored row by ID, for assertions.
func (s *Store) Confirmation(id string) (confirmation.Confirmation, bool) {
	c, ok := s.confirmations[id]
	return c, ok
}

// Permit returns the stored row by ID, for assertions.
func (s *Store) Permit(id string) (permit.Permit, bool) {
	p, ok := s.permits[id]
	return p, ok
}

// Permits returns every stored permit.
func (s *Store) Permits() []permit.Permit {
	out := make([]permit.Permit, 0, len(s.permits))
	for _, p := range s.permits {
		out = append(out, p)
	}
	return out
}

// withRelations resolves the joined check and overtime rows the way the SQL
// queries do.
func (s *Store) withRelations(att attendance.Attendance) attendance.Attendance {
	if att.CheckInID != nil {
		if c, ok := s.checks[*att.CheckInID]; ok {
			att.CheckIn = &c
		}
	}
	if att.CheckOutID != nil {
		if c, ok := s.checks[*att.CheckOutID]; ok {
			att.CheckOut = &c
		}
	}
	if att.OvertimeID != nil {
		if o, ok := s.overtimes[*att.OvertimeID]; ok {
			att.Overtime = &o
		}
	}
	return att
}

// ============= attendance.Repository =============

type AttendanceRepo struct{ s *Store }

func (s *Store) AttendanceRepo() *AttendanceRepo { return &AttendanceRepo{s: s} }

func (r *AttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if err := r.s.failure("attendance.Create"); err != nil {
		return attendance.Attendance{}, err
	}
	att.ID = r.s.nextID("att")
	att.CreatedAt = r.s.clock
	att.UpdatedAt = r.s.clock
	stored := att
	stored.CheckIn, stored.CheckOut, stored.Overtime = nil, nil, nil
	r.s.attendances[att.ID] = stored
	return att, nil
}

func (r *AttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	att, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.s.withRelations(att), nil
}

func (r *AttendanceRepo) GetByNIKAndDate(ctx context.Context, nik string, date time.Time) (*attendance.Attendance, error) {
	for _, att := range r.s.attendances {
		if att.NIK == nik && timeutil.SameDate(att.Date, date) {
			full := r.s.withRelations(att)
			return &full, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	if err := r.s.failure("attendance.Update"); err != nil {
		return err
	}
	if _, ok := r.s.attendances[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.UpdatedAt = r.s.clock
	att.CheckIn, att.CheckOut, att.Overtime = nil, nil, nil
	r.s.attendances[att.ID] = att
	return nil
}

func (r *AttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.s.attendances {
		if timeutil.SameDate(att.Date, date) {
			out = append(out, r.s.withRelations(att))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NIK < out[j].NIK })
	return out, nil
}

func (r *AttendanceRepo) ListByNIKAndRange(ctx context.Context, nik string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.s.attendances {
		if att.NIK == nik && !att.Date.Before(from) && !att.Date.After(to) {
			out = append(out, r.s.withRelations(att))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AttendanceRepo) BulkCreate(ctx context.Context, atts []attendance.Attendance) error {
	if err := r.s.failure("attendance.BulkCreate"); err != nil {
		return err
	}
	for _, att := range atts {
		exists := false
		for _, existing := range r.s.attendances {
			if existing.NIK == att.NIK && timeutil.SameDate(existing.Date, att.Date) {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		att.ID = r.s.nextID("att")
		att.CreatedAt = r.s.clock
		att.UpdatedAt = r.s.clock
		r.s.attendances[att.ID] = att
	}
	return nil
}

func (r *AttendanceRepo) DeleteStaleAbsences(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	for id, att := range r.s.attendances {
		if att.Status != attendance.StatusAbsent || !att.Date.Before(before) {
			continue
		}
		if att.CheckInID != nil || att.CheckOutID != nil || att.PermitID != nil || att.OvertimeID != nil {
			continue
		}
		delete(r.s.attendances, id)
		deleted++
	}
	return deleted, nil
}

// ============= attendance.CheckRepository =============

type CheckRepo struct{ s *Store }

func (s *Store) CheckRepo() *CheckRepo { return &CheckRepo{s: s} }

func (r *CheckRepo) Create(ctx context.Context, check attendance.Check) (attendance.Check, error) {
	if err := r.s.failure("check.Create"); err != nil {
		return attendance.Check{}, err
	}
	check.ID = r.s.nextID("chk")
	check.CreatedAt = r.s.clock
	r.s.checks[check.ID] = check
	return check, nil
}

func (r *CheckRepo) GetByID(ctx context.Context, id string) (attendance.Check, error) {
	check, ok := r.s.checks[id]
	if !ok {
		return attendance.Check{}, attendance.ErrCheckNotFound
	}
	return check, nil
}

func (r *CheckRepo) UpdateTime(ctx context.Context, id string, t time.Time) error {
	if err := r.s.failure("check.UpdateTime"); err != nil {
		return err
	}
	check, ok := r.s.checks[id]
	if !ok {
		return attendance.ErrCheckNotFound
	}
	check.Time = t
	r.s.checks[id] = check
	return nil
}

// ============= attendance.OvertimeRepository =============

type OvertimeRepo struct{ s *Store }

func (s *Store) OvertimeRepo() *OvertimeRepo { return &OvertimeRepo{s: s} }

func (r *OvertimeRepo) Create(ctx context.Context, overtime attendance.Overtime) (attendance.Overtime, error) {
	overtime.ID = r.s.nextID("ovt")
	overtime.CreatedAt = r.s.clock
	r.s.overtimes[overtime.ID] = overtime
	return overtime, nil
}

func (r *OvertimeRepo) GetByID(ctx context.Context, id string) (attendance.Overtime, error) {
	overtime, ok := r.s.overtimes[id]
	if !ok {
		return attendance.Overtime{}, attendance.ErrOvertimeNotFound
	}
	return overtime, nil
}

func (r *OvertimeRepo) GetByIDForUpdate(ctx context.Context, id string) (attendance.Overtime, error) {
	return r.GetByID(ctx, id)
}

func (r *OvertimeRepo) Update(ctx context.Context, overtime attendance.Overtime) error {
	if err := r.s.failure("overtime.Update"); err != nil {
		return err
	}
	if _, ok := r.s.overtimes[overtime.ID]; !ok {
		return attendance.ErrOvertimeNotFound
	}
	r.s.overtimes[overtime.ID] = overtime
	return nil
}

// ============= attendance.ActivityRepository =============

type ActivityRepo struct{ s *Store }

func (s *Store) ActivityRepo() *ActivityRepo { return &ActivityRepo{s: s} }

func (r *ActivityRepo) Create(ctx context.Context, activity attendance.Activity) (attendance.Activity, error) {
	activity.ID = r.s.nextID("act")
	activity.CreatedAt = r.s.clock
	activity.UpdatedAt = r.s.clock
	r.s.activities[activity.ID] = activity
	return activity, nil
}

func (r *ActivityRepo) GetByID(ctx context.Context, id string) (attendance.Activity, error) {
	activity, ok := r.s.activities[id]
	if !ok {
		return attendance.Activity{}, attendance.ErrActivityNotFound
	}
	return activity, nil
}

func (r *ActivityRepo) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Activity, error) {
	var out []attendance.Activity
	for _, activity := range r.s.activities {
		if activity.AttendanceID == attendanceID {
			out = append(out, activity)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *ActivityRepo) Update(ctx context.Context, activity attendance.Activity) error {
	if _, ok := r.s.activities[activity.ID]; !ok {
		return attendance.ErrActivityNotFound
	}
	activity.UpdatedAt = r.s.clock
	r.s.activities[activity.ID] = activity
	return nil
}

// ============= confirmation.Repository =============

type ConfirmationRepo struct{ s *Store }

func (s *Store) ConfirmationRepo() *ConfirmationRepo { return &ConfirmationRepo{s: s} }

func (r *ConfirmationRepo) Create(ctx context.Context, c confirmation.Confirmation) (confirmation.Confirmation, error) {
	c.ID = r.s.nextID("cnf")
	c.CreatedAt = r.s.clock
	stored := c
	stored.Attendance = nil
	r.s.confirmations[c.ID] = stored
	return c, nil
}

func (r *ConfirmationRepo) GetByID(ctx context.Context, id string) (confirmation.Confirmation, error) {
	c, ok := r.s.confirmations[id]
	if !ok {
		return confirmation.Confirmation{}, confirmation.ErrConfirmationNotFound
	}
	return c, nil
}

func (r *ConfirmationRepo) GetByIDForUpdate(ctx context.Context, id string) (confirmation.Confirmation, error) {
	return r.GetByID(ctx, id)
}

func (r *ConfirmationRepo) Update(ctx context.Context, c confirmation.Confirmation) error {
	if err := r.s.failure("confirmation.Update"); err != nil {
		return err
	}
	if _, ok := r.s.confirmations[c.ID]; !ok {
		return confirmation.ErrConfirmationNotFound
	}
	c.Attendance = nil
	r.s.confirmations[c.ID] = c
	return nil
}

func (r *ConfirmationRepo) ListByAttendance(ctx context.Context, attendanceID string) ([]confirmation.Confirmation, error) {
	var out []confirmation.Confirmation
	for _, c := range r.s.confirmations {
		if c.AttendanceID == attendanceID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ConfirmationRepo) ListUncheckedByDate(ctx context.Context, date time.Time) ([]confirmation.Confirmation, error) {
	var out []confirmation.Confirmation
	for _, c := range r.s.confirmations {
		if c.Checked || !timeutil.SameDate(c.CreatedAt, date) {
			continue
		}
		if att, ok := r.s.attendances[c.AttendanceID]; ok {
			full := r.s.withRelations(att)
			c.Attendance = &full
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ConfirmationRepo) HasUncheckedByNIK(ctx context.Context, nik string) (bool, error) {
	for _, c := range r.s.confirmations {
		if c.Checked {
			continue
		}
		if att, ok := r.s.attendances[c.AttendanceID]; ok && att.NIK == nik {
			return true, nil
		}
	}
	return false, nil
}

func (r *ConfirmationRepo) CountUnchecked(ctx context.Context) (int, error) {
	count := 0
	for _, c := range r.s.confirmations {
		if !c.Checked {
			count++
		}
	}
	return count, nil
}

// ============= permit.Repository =============

type PermitRepo struct{ s *Store }

func (s *Store) PermitRepo() *PermitRepo { return &PermitRepo{s: s} }

func (r *PermitRepo) Create(ctx context.Context, p permit.Permit) (permit.Permit, error) {
	if err := r.s.failure("permit.Create"); err != nil {
		return permit.Permit{}, err
	}
	p.ID = r.s.nextID("pmt")
	p.CreatedAt = r.s.clock
	r.s.permits[p.ID] = p
	return p, nil
}

func (r *PermitRepo) GetByID(ctx context.Context, id string) (permit.Permit, error) {
	p, ok := r.s.permits[id]
	if !ok {
		return permit.Permit{}, permit.ErrPermitNotFound
	}
	return p, nil
}

func (r *PermitRepo) GetByIDForUpdate(ctx context.Context, id string) (permit.Permit, error) {
	return r.GetByID(ctx, id)
}

func (r *PermitRepo) Update(ctx context.Context, p permit.Permit) error {
	if err := r.s.failure("permit.Update"); err != nil {
		return err
	}
	if _, ok := r.s.permits[p.ID]; !ok {
		return permit.ErrPermitNotFound
	}
	r.s.permits[p.ID] = p
	return nil
}

func (r *PermitRepo) ListByNIKFromDate(ctx context.Context, nik string, from time.Time) ([]permit.Permit, error) {
	var out []permit.Permit
	for _, p := range r.s.permits {
		if p.NIK == nik && !p.StartDate.Before(from) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PermitRepo) ListUncheckedAfterDate(ctx context.Context, after time.Time) ([]permit.Permit, error) {
	var out []permit.Permit
	for _, p := range r.s.permits {
		if !p.Checked && p.StartDate.After(after) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *PermitRepo) CountUnchecked(ctx context.Context) (int, error) {
	count := 0
	for _, p := range r.s.permits {
		if !p.Checked {
			count++
		}
	}
	return count, nil
}

// ============= employee.Repository =============

type EmployeeRepo struct{ s *Store }

func (s *Store) EmployeeRepo() *EmployeeRepo { return &EmployeeRepo{s: s} }

func (r *EmployeeRepo) GetByNIK(ctx context.Context, nik string) (employee.Employee, error) {
	emp, ok := r.s.employees[nik]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(r.s.employees))
	for _, emp := range r.s.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NIK < out[j].NIK })
	return out, nil
}

func (r *EmployeeRepo) Upsert(ctx context.Context, employees []employee.Employee) error {
	for _, emp := range employees {
		emp.UpdatedAt = r.s.clock
		r.s.employees[emp.NIK] = emp
	}
	return nil
}

// ============= File resolver =============

// Files resolves stored names to predictable URLs.
type Files struct{}

func (Files) URL(ctx context.Context, path string) (string, error) {
	return "https://files.example.com/" + path, nil
}
