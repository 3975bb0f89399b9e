package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// GetByNIK implements employee.Repository.
func (r *employeeRepository) GetByNIK(ctx context.Context, nik string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT nik, name, position, area, updated_at FROM employees WHERE nik = $1`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, nik).Scan(&emp.NIK, &emp.Name, &emp.Position, &emp.Area, &emp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by nik: %w", err)
	}

	return emp, nil
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT nik, name, position, area, updated_at FROM employees ORDER BY nik`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.NIK, &emp.Name, &emp.Position, &emp.Area, &emp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// Upsert implements employee.Repository.
func (r *employeeRepository) Upsert(ctx context.Context, employees []employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for _, emp := range employees {
		batch.Queue(`
			INSERT INTO employees (nik, name, position, area, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (nik) DO UPDATE
			SET name = EXCLUDED.name, position = EXCLUDED.position, area = EXCLUDED.area, updated_at = NOW()
		`, emp.NIK, emp.Name, emp.Position, emp.Area)
	}

	var results pgx.BatchResults
	switch conn := q.(type) {
	case pgx.Tx:
		results = conn.SendBatch(ctx, batch)
	default:
		results = r.db.Pool.SendBatch(ctx, batch)
	}
	defer results.Close()

	for range employees {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert employees: %w", err)
		}
	}

	return nil
}
