package employee

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.Repository
	syncKeyHash  string
}

// NewEmployeeService builds the directory service. syncKeyHash is the bcrypt
// hash the HR system's push key is verified against.
func NewEmployeeService(employeeRepo employee.Repository, syncKeyHash string) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		syncKeyHash:  syncKeyHash,
	}
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, nik string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByNIK(ctx, nik)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, toResponse(emp))
	}
	return resp, nil
}

// Sync implements employee.Service.
func (s *EmployeeServiceImpl) Sync(ctx context.Context, req employee.SyncRequest) (employee.SyncResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.syncKeyHash), []byte(req.Key)); err != nil {
		return employee.SyncResponse{}, employee.ErrInvalidSyncKey
	}

	rows := make([]employee.Employee, 0, len(req.Employees))
	for _, r := range req.Employees {
		rows = append(rows, employee.Employee{
			NIK:      r.NIK,
			Name:     r.Name,
			Position: r.Position,
			Area:     r.Area,
		})
	}

	if err := s.employeeRepo.Upsert(ctx, rows); err != nil {
		return employee.SyncResponse{}, fmt.Errorf("failed to upsert employees: %w", err)
	}

	return employee.SyncResponse{Synced: len(rows)}, nil
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		NIK:      emp.NIK,
		Name:     emp.Name,
		Position: emp.Position,
		Area:     emp.Area,
	}
}
