package payroll

import "context"

type PaymentRepository interface {
	// Create persists the payment with its items and deductions in one
	// transaction.
	Create(ctx context.Context, p Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	// List returns payments with their children, filtered by the non-nil
	// query fields, ordered by period start then employee.
	List(ctx context.Context, q ListPaymentsQuery) ([]Payment, error)
	// Update fully replaces the payment and its children. The lock flag is
	// re-checked inside the transaction; locked payments fail with
	// ErrPaymentLocked and stay untouched.
	Update(ctx context.Context, id string, p Payment) (Payment, error)
	SetLocked(ctx context.Context, id string, locked bool) error
	// Delete removes an unlocked payment with its children.
	Delete(ctx context.Context, id string) error

	// Cumulative ceiling queries: wage subject to the capped deduction
	// already recorded for the employee/year, optionally excluding the
	// payment currently being edited. Recomputed on every call.
	GetCumulativeAlvData(ctx context.Context, employeeID string, year int, excludePaymentID *string) (CumulativeData, error)
	GetCumulativeNbuData(ctx context.Context, employeeID string, year int, excludePaymentID *string) (CumulativeData, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t Template) (Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Update(ctx context.Context, id string, t Template) (Template, error)
	Delete(ctx context.Context, id string) error
}
