package response

import (
	"errors"
	"net/http"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeHasPayments):
		Conflict(w, "Employee has payroll payments and cannot be deleted")

	// Item type domain errors
	case errors.Is(err, itemtype.ErrItemTypeNotFound):
		NotFound(w, "Item type not found")
	case errors.Is(err, itemtype.ErrItemTypeCodeExists):
		Conflict(w, "Item type code already exists")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, payroll.ErrPaymentLocked):
		Forbidden(w, "Payment is locked")
	case errors.Is(err, payroll.ErrTemplateNotFound):
		NotFound(w, "Template not found")
	case errors.Is(err, payroll.ErrTemplateNameExists):
		Conflict(w, "Template name already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
