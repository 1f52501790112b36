package employee

import "context"

// EmployeeRepository defines data access methods for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	SetActive(ctx context.Context, id string, active bool) error

	// ListActive is used by payroll jobs to scan the whole workforce.
	ListActive(ctx context.Context) ([]Employee, error)
}
