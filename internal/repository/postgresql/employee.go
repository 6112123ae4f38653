package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository. Soft-deleted employees are
// treated as not found.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, branch_id, position_id, employee_code,
		       full_name, employment_status, is_eligible_for_overtime,
		       hire_date, resignation_date, created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.BranchID, &emp.PositionID, &emp.EmployeeCode,
		&emp.FullName, &emp.EmploymentStatus, &emp.IsEligibleForOvertime,
		&emp.HireDate, &emp.ResignationDate, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}
