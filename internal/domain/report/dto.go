package report

import (
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
)

// All report views are derived on read from payments, items and deductions.
// They re-group and re-label aggregator output; none of them introduces a new
// business rule, so any figure here must reconcile with the base tables.

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 13 = special year-end run
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if r.Month < 1 || r.Month > 13 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 13",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReport struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Employees        []EmployeeSummary  `json:"employees"`
	DeductionSummary []DeductionSummary `json:"deduction_summary"`
	ItemSummary      []ItemSummary      `json:"item_summary"`
	Totals           Totals             `json:"totals"`
}

// EmployeeSummary is the per-employee aggregation over all payments in scope.
type EmployeeSummary struct {
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	PaymentsCount   int    `json:"payments_count"`
	GrossSalary     string `json:"gross_salary"`
	TotalDeductions string `json:"total_deductions"`
	NetSalary       string `json:"net_salary"`
}

// DeductionSummary is one deduction kind accumulated across all employees.
type DeductionSummary struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// ItemSummary is one wage-component code accumulated across all employees.
// Hours and amount accumulate separately so the effective hourly rate is the
// weighted average, never an average of per-line rates.
type ItemSummary struct {
	TypeCode            string  `json:"type_code"`
	TypeName            string  `json:"type_name,omitempty"`
	Amount              string  `json:"amount"`
	Hours               *string `json:"hours,omitempty"`
	EffectiveHourlyRate *string `json:"effective_hourly_rate,omitempty"`
}

type Totals struct {
	GrossSalary     string `json:"gross_salary"`
	TotalDeductions string `json:"total_deductions"`
	NetSalary       string `json:"net_salary"`
}

// ========================================
// YEARLY REPORT
// ========================================

type YearlyReportRequest struct {
	Year int `json:"year"`
}

func (r *YearlyReportRequest) Validate() error {
	if !validator.IsValidYear(r.Year) {
		return validator.ValidationErrors{{
			Field:   "year",
			Message: "year is out of range",
		}}
	}
	return nil
}

type YearlyReport struct {
	Year int `json:"year"`

	// Months always has 13 rows (12 calendar months plus the year-end run),
	// zero-filled where no payments exist.
	Months    []MonthRow        `json:"months"`
	Employees []EmployeeSummary `json:"employees"`

	// InsuranceWages is the gender-split wage/ceiling table for the annual
	// insurer declaration, including the 70+ UVGO supplemental rows.
	InsuranceWages []InsuranceWageRow `json:"insurance_wages"`

	Totals Totals `json:"totals"`
}

type MonthRow struct {
	Month           int    `json:"month"`
	PaymentsCount   int    `json:"payments_count"`
	GrossSalary     string `json:"gross_salary"`
	TotalDeductions string `json:"total_deductions"`
	NetSalary       string `json:"net_salary"`
}

// InsuranceWageRow categories: men / women, each split into the regular group
// and the 70+ supplemental group (UVGO Art. 2).
type InsuranceWageRow struct {
	Category          string `json:"category"` // "male", "female", "male_70_plus", "female_70_plus"
	EmployeeCount     int    `json:"employee_count"`
	AhvSubjectWage    string `json:"ahv_subject_wage"`
	NonAhvSubjectWage string `json:"non_ahv_subject_wage"`
	UvgRelevantWage   string `json:"uvg_relevant_wage"` // NBU-subject wage capped at the ceiling
	UvgExcessWage     string `json:"uvg_excess_wage"`   // wage above the ceiling
}

// ========================================
// EMPLOYEE PAYROLL OVERVIEW
// ========================================

type EmployeeOverviewRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

func (r *EmployeeOverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeOverview is the 13-column matrix for one employee/year: columns
// 1-12 are calendar months, column 13 the year-end run. Every row reconciles
// exactly with the corresponding monthly reports.
type EmployeeOverview struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Year         int    `json:"year"`

	ItemRows      []OverviewRow `json:"item_rows"`
	DeductionRows []OverviewRow `json:"deduction_rows"`
	BasisRows     []OverviewRow `json:"basis_rows"`

	GrossRow      OverviewRow `json:"gross_row"`
	DeductionsRow OverviewRow `json:"deductions_row"`
	NetRow        OverviewRow `json:"net_row"`
}

type OverviewRow struct {
	Code    string     `json:"code,omitempty"`
	Label   string     `json:"label"`
	Columns [13]string `json:"columns"`
	Total   string     `json:"total"`
}

// ========================================
// LOHNAUSWEIS
// ========================================

type LohnausweisRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

func (r *LohnausweisRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LohnausweisData exposes the wage-statement figures as numbers, not
// pre-formatted strings; the downstream form renderer owns formatting and
// locale.
type LohnausweisData struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	AhvNumber    string `json:"ahv_number"`
	BirthDate    string `json:"birth_date,omitempty"`
	Year         int    `json:"year"`
	PeriodStart  string `json:"period_start"` // employment window within the year
	PeriodEnd    string `json:"period_end"`

	CompanyName    string  `json:"company_name"`
	CompanyAddress *string `json:"company_address,omitempty"`

	// Form fields (Ziffern), CHF
	BasicSalary     float64 `json:"basic_salary"`     // Ziffer 1
	GrossSalary     float64 `json:"gross_salary"`     // Ziffer 8
	SocialInsurance float64 `json:"social_insurance"` // Ziffer 9: AHV + ALV + NBU
	PensionOrdinary float64 `json:"pension_ordinary"` // Ziffer 10.1: BVG
	NetSalary       float64 `json:"net_salary"`       // Ziffer 11
	TaxWithheld     float64 `json:"tax_withheld"`     // Ziffer 12: QST
}
