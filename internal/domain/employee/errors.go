package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmployeeHasPayments guards deletion: payroll history referencing an
	// employee is immutable, so such employees are deactivated instead.
	ErrEmployeeHasPayments = errors.New("employee has payroll payments and cannot be deleted")
)
