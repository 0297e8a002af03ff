package payroll

import "context"

type PayrollService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (PaymentResponse, error)
	ListPayments(ctx context.Context, q ListPaymentsQuery) ([]PaymentResponse, error)
	UpdatePayment(ctx context.Context, id string, req UpdatePaymentRequest) (PaymentResponse, error)
	LockPayment(ctx context.Context, id string) error
	UnlockPayment(ctx context.Context, id string) error
	DeletePayment(ctx context.Context, id string) error

	// PreviewDeductions runs the calculator without persisting.
	PreviewDeductions(ctx context.Context, req PreviewRequest) (PreviewResponse, error)

	// ValidateImport recomputes an externally parsed payslip and reports
	// totals that differ beyond the accepted tolerance.
	ValidateImport(ctx context.Context, req ImportValidationRequest) (ImportValidationResponse, error)

	CreateTemplate(ctx context.Context, req SaveTemplateRequest) (TemplateResponse, error)
	GetTemplate(ctx context.Context, id string) (TemplateResponse, error)
	ListTemplates(ctx context.Context) ([]TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id string, req SaveTemplateRequest) (TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) error
}
