package employee

import (
	"context"
)

// EmployeeRepository is the read surface the engine needs from the employee
// collaborator. Employee CRUD itself lives outside this core.
type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
}
