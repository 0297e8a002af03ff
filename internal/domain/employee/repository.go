package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, id string, e Employee) (Employee, error)
	// Delete fails with ErrEmployeeHasPayments while payroll payments
	// reference the employee.
	Delete(ctx context.Context, id string) error
}
