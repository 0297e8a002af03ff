package payroll

import "errors"

var (
	ErrPaymentNotFound = errors.New("payroll payment not found")
	// ErrPaymentLocked is the domain-state error for any mutation attempt on
	// a locked payment. Handlers map it to 403, not a generic failure.
	ErrPaymentLocked = errors.New("payroll payment is locked")

	ErrTemplateNotFound   = errors.New("payroll template not found")
	ErrTemplateNameExists = errors.New("payroll template name already exists")
)
