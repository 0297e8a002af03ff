package employee

import (
	"time"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/money"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date,omitempty"`
	AhvNumber string  `json:"ahv_number"`
	Gender    string  `json:"gender"`

	EntryDate *string `json:"entry_date,omitempty"`
	ExitDate  *string `json:"exit_date,omitempty"`

	HasAhv               bool `json:"has_ahv"`
	HasAlv               bool `json:"has_alv"`
	HasAccidentInsurance bool `json:"has_accident_insurance"`
	IsNbuInsured         bool `json:"is_nbu_insured"`
	IsRentner            bool `json:"is_rentner"`

	IsQstSubject bool    `json:"is_qst_subject"`
	QstRate      *string `json:"qst_rate,omitempty"`

	BankName *string `json:"bank_name,omitempty"`
	BankIban *string `json:"bank_iban,omitempty"`

	MonthlySalary   *string `json:"monthly_salary,omitempty"`
	HourlyRate      *string `json:"hourly_rate,omitempty"`
	EmploymentLevel *string `json:"employment_level,omitempty"`

	BvgDeductionAmount     *string `json:"bvg_deduction_amount,omitempty"`
	BvgDeductionPercentage *string `json:"bvg_deduction_percentage,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                     e.ID,
		FirstName:              e.FirstName,
		LastName:               e.LastName,
		BirthDate:              formatDate(e.BirthDate),
		AhvNumber:              e.AhvNumber,
		Gender:                 string(e.Gender),
		EntryDate:              formatDate(e.EntryDate),
		ExitDate:               formatDate(e.ExitDate),
		HasAhv:                 e.HasAhv,
		HasAlv:                 e.HasAlv,
		HasAccidentInsurance:   e.HasAccidentInsurance,
		IsNbuInsured:           e.IsNbuInsured,
		IsRentner:              e.IsRentner,
		IsQstSubject:           e.IsQstSubject,
		QstRate:                formatRate(e.QstRate),
		BankName:               e.BankName,
		BankIban:               e.BankIban,
		MonthlySalary:          formatAmount(e.MonthlySalary),
		HourlyRate:             formatAmount(e.HourlyRate),
		EmploymentLevel:        formatRate(e.EmploymentLevel),
		BvgDeductionAmount:     formatAmount(e.BvgDeductionAmount),
		BvgDeductionPercentage: formatRate(e.BvgDeductionPercentage),
		IsActive:               e.IsActive,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func formatAmount(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money.Format(*d)
	return &s
}

func formatRate(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// SaveEmployeeRequest is used for create and for full-record update.
type SaveEmployeeRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date,omitempty"`
	AhvNumber string  `json:"ahv_number"`
	Gender    string  `json:"gender"`

	EntryDate *string `json:"entry_date,omitempty"`
	ExitDate  *string `json:"exit_date,omitempty"`

	HasAhv               bool `json:"has_ahv"`
	HasAlv               bool `json:"has_alv"`
	HasAccidentInsurance bool `json:"has_accident_insurance"`
	IsNbuInsured         bool `json:"is_nbu_insured"`
	IsRentner            bool `json:"is_rentner"`

	IsQstSubject bool    `json:"is_qst_subject"`
	QstRate      *string `json:"qst_rate,omitempty"`

	BankName *string `json:"bank_name,omitempty"`
	BankIban *string `json:"bank_iban,omitempty"`

	MonthlySalary   *string `json:"monthly_salary,omitempty"`
	HourlyRate      *string `json:"hourly_rate,omitempty"`
	EmploymentLevel *string `json:"employment_level,omitempty"`

	BvgDeductionAmount     *string `json:"bvg_deduction_amount,omitempty"`
	BvgDeductionPercentage *string `json:"bvg_deduction_percentage,omitempty"`

	IsActive bool `json:"is_active"`
}

func (r *SaveEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if !validator.IsEmpty(r.AhvNumber) && !validator.IsValidAhvNumber(r.AhvNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "ahv_number",
			Message: "ahv_number must match 756.xxxx.xxxx.xx",
		})
	}
	if !validator.IsValidGender(r.Gender) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be m or f",
		})
	}

	dateFields := map[string]*string{
		"birth_date": r.BirthDate,
		"entry_date": r.EntryDate,
		"exit_date":  r.ExitDate,
	}
	for field, value := range dateFields {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidDate(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a date in YYYY-MM-DD format",
			})
		}
	}

	if r.IsQstSubject {
		if r.QstRate == nil || !validator.IsValidRate(*r.QstRate) {
			errs = append(errs, validator.ValidationError{
				Field:   "qst_rate",
				Message: "qst_rate is required for source-tax subject employees",
			})
		}
	}

	amountFields := map[string]*string{
		"monthly_salary":       r.MonthlySalary,
		"hourly_rate":          r.HourlyRate,
		"bvg_deduction_amount": r.BvgDeductionAmount,
	}
	for field, value := range amountFields {
		if value != nil && !validator.IsValidAmount(*value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a non-negative amount with at most 2 decimal places",
			})
		}
	}
	rateFields := map[string]*string{
		"employment_level":         r.EmploymentLevel,
		"bvg_deduction_percentage": r.BvgDeductionPercentage,
	}
	for field, value := range rateFields {
		if value != nil && !validator.IsValidRate(*value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a non-negative decimal rate",
			})
		}
	}

	// BVG fixed amount and percentage are mutually exclusive
	if r.BvgDeductionAmount != nil && r.BvgDeductionPercentage != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "bvg_deduction_amount",
			Message: "bvg_deduction_amount and bvg_deduction_percentage are mutually exclusive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity parses the request into an Employee. Call Validate first.
func (r *SaveEmployeeRequest) ToEntity() (Employee, error) {
	e := Employee{
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		AhvNumber:            r.AhvNumber,
		Gender:               Gender(r.Gender),
		HasAhv:               r.HasAhv,
		HasAlv:               r.HasAlv,
		HasAccidentInsurance: r.HasAccidentInsurance,
		IsNbuInsured:         r.IsNbuInsured,
		IsRentner:            r.IsRentner,
		IsQstSubject:         r.IsQstSubject,
		BankName:             r.BankName,
		BankIban:             r.BankIban,
		IsActive:             r.IsActive,
	}

	var err error
	parseDate := func(field string, value *string, dst **time.Time) {
		if err != nil || value == nil {
			return
		}
		t, ok := validator.IsValidDate(*value)
		if !ok {
			err = validator.ValidationErrors{{Field: field, Message: "invalid date"}}
			return
		}
		*dst = &t
	}
	parseDec := func(field string, value *string, dst **decimal.Decimal, parseFn func(string) (decimal.Decimal, error)) {
		if err != nil || value == nil {
			return
		}
		var d decimal.Decimal
		if d, err = parseFn(*value); err != nil {
			err = validator.ValidationErrors{{Field: field, Message: err.Error()}}
			return
		}
		*dst = &d
	}

	parseDate("birth_date", r.BirthDate, &e.BirthDate)
	parseDate("entry_date", r.EntryDate, &e.EntryDate)
	parseDate("exit_date", r.ExitDate, &e.ExitDate)
	parseDec("qst_rate", r.QstRate, &e.QstRate, money.ParseRate)
	parseDec("monthly_salary", r.MonthlySalary, &e.MonthlySalary, money.ParseAmount)
	parseDec("hourly_rate", r.HourlyRate, &e.HourlyRate, money.ParseAmount)
	parseDec("employment_level", r.EmploymentLevel, &e.EmploymentLevel, money.ParseRate)
	parseDec("bvg_deduction_amount", r.BvgDeductionAmount, &e.BvgDeductionAmount, money.ParseAmount)
	parseDec("bvg_deduction_percentage", r.BvgDeductionPercentage, &e.BvgDeductionPercentage, money.ParseRate)

	return e, err
}
