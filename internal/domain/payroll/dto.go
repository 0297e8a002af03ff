package payroll

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/money"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
)

// ========================================
// REQUESTS
// ========================================

type ItemRequest struct {
	TypeCode    string  `json:"type_code"`
	Description *string `json:"description,omitempty"`
	Amount      string  `json:"amount"`
	Hours       *string `json:"hours,omitempty"`
	HourlyRate  *string `json:"hourly_rate,omitempty"`
}

func (r *ItemRequest) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidItemTypeCode(r.TypeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".type_code",
			Message: "type_code must be 1-10 digits or uppercase letters",
		})
	}
	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".amount",
			Message: "amount must be a non-negative decimal with at most 2 decimal places",
		})
	}
	if r.Hours != nil && !validator.IsValidRate(*r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".hours",
			Message: "hours must be a non-negative decimal",
		})
	}
	if r.HourlyRate != nil && !validator.IsValidAmount(*r.HourlyRate) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".hourly_rate",
			Message: "hourly_rate must be a non-negative amount",
		})
	}
	return errs
}

// ManualDeductionRequest is a free-form OTHER deduction row supplied by the
// caller (typically expanded from a template). Statutory rows are always
// computed server-side and never accepted from the client.
type ManualDeductionRequest struct {
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	Amount      string  `json:"amount"`
}

func (r *ManualDeductionRequest) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".label",
			Message: "label is required",
		})
	}
	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".amount",
			Message: "amount must be a non-negative decimal with at most 2 decimal places",
		})
	}
	return errs
}

type CreatePaymentRequest struct {
	EmployeeID  string  `json:"employee_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	PaymentDate string  `json:"payment_date"`
	// PaymentMonth defaults to the payment date's calendar month. Month 13
	// addresses the special year-end run so it keeps its own report column.
	PaymentMonth *int    `json:"payment_month,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	Items            []ItemRequest            `json:"items"`
	ManualDeductions []ManualDeductionRequest `json:"manual_deductions,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validatePeriod(r.PeriodStart, r.PeriodEnd, r.PaymentDate)...)
	errs = append(errs, validatePaymentMonth(r.PaymentMonth)...)
	errs = append(errs, validateLines(r.Items, r.ManualDeductions)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePaymentRequest fully replaces the item/deduction sets of an unlocked
// payment. The employee cannot be changed after creation.
type UpdatePaymentRequest struct {
	PeriodStart  string  `json:"period_start"`
	PeriodEnd    string  `json:"period_end"`
	PaymentDate  string  `json:"payment_date"`
	PaymentMonth *int    `json:"payment_month,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	Items            []ItemRequest            `json:"items"`
	ManualDeductions []ManualDeductionRequest `json:"manual_deductions,omitempty"`
}

func (r *UpdatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validatePeriod(r.PeriodStart, r.PeriodEnd, r.PaymentDate)...)
	errs = append(errs, validatePaymentMonth(r.PaymentMonth)...)
	errs = append(errs, validateLines(r.Items, r.ManualDeductions)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PreviewRequest computes deductions without persisting anything. When an
// existing payment is being edited its ID is excluded from the cumulative
// ceiling basis.
type PreviewRequest struct {
	EmployeeID       string  `json:"employee_id"`
	PaymentDate      string  `json:"payment_date"`
	ExcludePaymentID *string `json:"exclude_payment_id,omitempty"`

	Items            []ItemRequest            `json:"items"`
	ManualDeductions []ManualDeductionRequest `json:"manual_deductions,omitempty"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_date",
			Message: "payment_date must be a date in YYYY-MM-DD format",
		})
	}
	errs = append(errs, validateLines(r.Items, r.ManualDeductions)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(start, end, paymentDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	startDate, startOK := validator.IsValidDate(start)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a date in YYYY-MM-DD format",
		})
	}
	endDate, endOK := validator.IsValidDate(end)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}
	if payDate, ok := validator.IsValidDate(paymentDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_date",
			Message: "payment_date must be a date in YYYY-MM-DD format",
		})
	} else if !validator.IsValidYear(payDate.Year()) {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_date",
			Message: "payment_date year is out of range",
		})
	}
	return errs
}

func validatePaymentMonth(month *int) validator.ValidationErrors {
	if month == nil || (*month >= 1 && *month <= 13) {
		return nil
	}
	return validator.ValidationErrors{{
		Field:   "payment_month",
		Message: "payment_month must be between 1 and 13",
	}}
}

func validateLines(items []ItemRequest, manual []ManualDeductionRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if len(items) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "items",
			Message: "at least one wage item is required",
		})
	}
	for i := range items {
		errs = append(errs, items[i].validate(fmt.Sprintf("items[%d]", i))...)
	}
	for i := range manual {
		errs = append(errs, manual[i].validate(fmt.Sprintf("manual_deductions[%d]", i))...)
	}
	return errs
}

type ListPaymentsQuery struct {
	Year       *int
	Month      *int
	EmployeeID *string
}

func (q *ListPaymentsQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Year != nil && !validator.IsValidYear(*q.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if q.Month != nil && (*q.Month < 1 || *q.Month > 13) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 13",
		})
	}
	if q.Month != nil && q.Year == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required when month is given",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// IMPORT VALIDATION
// ========================================

// ImportValidationRequest carries figures extracted from an externally
// generated payslip. The engine recomputes the payment and compares totals
// within ImportTolerance.
type ImportValidationRequest struct {
	EmployeeID  string `json:"employee_id"`
	PaymentDate string `json:"payment_date"`

	Items            []ItemRequest            `json:"items"`
	ManualDeductions []ManualDeductionRequest `json:"manual_deductions,omitempty"`

	ImportedGrossSalary     string `json:"imported_gross_salary"`
	ImportedTotalDeductions string `json:"imported_total_deductions"`
	ImportedNetSalary       string `json:"imported_net_salary"`
}

func (r *ImportValidationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_date",
			Message: "payment_date must be a date in YYYY-MM-DD format",
		})
	}
	errs = append(errs, validateLines(r.Items, r.ManualDeductions)...)

	for field, value := range map[string]string{
		"imported_gross_salary":     r.ImportedGrossSalary,
		"imported_total_deductions": r.ImportedTotalDeductions,
		"imported_net_salary":       r.ImportedNetSalary,
	} {
		if !validator.IsValidAmount(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a non-negative decimal with at most 2 decimal places",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ImportDifference struct {
	Field      string `json:"field"`
	Imported   string `json:"imported"`
	Computed   string `json:"computed"`
	Difference string `json:"difference"`
}

type ImportValidationResponse struct {
	InTolerance bool               `json:"in_tolerance"`
	Tolerance   string             `json:"tolerance"`
	Differences []ImportDifference `json:"differences,omitempty"`
	Computed    PreviewResponse    `json:"computed"`
}

// ========================================
// TEMPLATES
// ========================================

type SaveTemplateRequest struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

func (r *SaveTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Payload) == 0 || !json.Valid(r.Payload) {
		errs = append(errs, validator.ValidationError{
			Field:   "payload",
			Message: "payload must be valid JSON",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TemplateResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewTemplateResponse(t Template) TemplateResponse {
	return TemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Payload:   json.RawMessage(t.Payload),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ========================================
// RESPONSES
// ========================================

type ItemResponse struct {
	ID          string  `json:"id,omitempty"`
	TypeCode    string  `json:"type_code"`
	Description *string `json:"description,omitempty"`
	Amount      string  `json:"amount"`
	Hours       *string `json:"hours,omitempty"`
	HourlyRate  *string `json:"hourly_rate,omitempty"`
}

type DeductionResponse struct {
	ID          string  `json:"id,omitempty"`
	Kind        string  `json:"kind"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	Amount      string  `json:"amount"`
	Rate        *string `json:"rate,omitempty"`
	BaseAmount  *string `json:"base_amount,omitempty"`
}

type PaymentResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`

	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	PaymentDate  string `json:"payment_date"`
	PaymentMonth int    `json:"payment_month"`
	PaymentYear  int    `json:"payment_year"`

	GrossSalary     string `json:"gross_salary"`
	TotalDeductions string `json:"total_deductions"`
	NetSalary       string `json:"net_salary"`

	IsLocked bool    `json:"is_locked"`
	Notes    *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items      []ItemResponse      `json:"items"`
	Deductions []DeductionResponse `json:"deductions"`
}

// PreviewResponse is a computed-but-not-persisted payment.
type PreviewResponse struct {
	GrossSalary     string `json:"gross_salary"`
	TotalDeductions string `json:"total_deductions"`
	NetSalary       string `json:"net_salary"`

	Deductions []DeductionResponse `json:"deductions"`
}

func NewItemResponse(it Item) ItemResponse {
	resp := ItemResponse{
		ID:          it.ID,
		TypeCode:    it.TypeCode,
		Description: it.Description,
		Amount:      money.Format(it.Amount),
	}
	if it.Hours != nil {
		s := it.Hours.String()
		resp.Hours = &s
	}
	if it.HourlyRate != nil {
		s := money.Format(*it.HourlyRate)
		resp.HourlyRate = &s
	}
	return resp
}

func NewDeductionResponse(d Deduction) DeductionResponse {
	resp := DeductionResponse{
		ID:          d.ID,
		Kind:        string(d.Kind),
		Label:       d.DisplayLabel(),
		Description: d.Description,
		Amount:      money.Format(d.Amount),
	}
	if d.Rate != nil {
		s := d.Rate.String()
		resp.Rate = &s
	}
	if d.BaseAmount != nil {
		s := money.Format(*d.BaseAmount)
		resp.BaseAmount = &s
	}
	return resp
}

func NewPaymentResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		PeriodStart:     p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       p.PeriodEnd.Format("2006-01-02"),
		PaymentDate:     p.PaymentDate.Format("2006-01-02"),
		PaymentMonth:    p.PaymentMonth,
		PaymentYear:     p.PaymentYear,
		GrossSalary:     money.Format(p.GrossSalary),
		TotalDeductions: money.Format(p.TotalDeductions),
		NetSalary:       money.Format(p.NetSalary),
		IsLocked:        p.IsLocked,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Items:           make([]ItemResponse, 0, len(p.Items)),
		Deductions:      make([]DeductionResponse, 0, len(p.Deductions)),
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, NewItemResponse(it))
	}
	for _, d := range p.Deductions {
		resp.Deductions = append(resp.Deductions, NewDeductionResponse(d))
	}
	return resp
}
