package company

import (
	"time"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/money"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CompanyResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`

	AhvEmployeeRate     string `json:"ahv_employee_rate"`
	AhvEmployerRate     string `json:"ahv_employer_rate"`
	AhvRentnerAllowance string `json:"ahv_rentner_allowance"`

	AlvEmployeeRate     string `json:"alv_employee_rate"`
	AlvEmployerRate     string `json:"alv_employer_rate"`
	AlvMaxIncomePerYear string `json:"alv_max_income_per_year"`

	Alv2EmployeeRate string `json:"alv2_employee_rate"`
	Alv2EmployerRate string `json:"alv2_employer_rate"`

	NbuMaleRate         string `json:"nbu_male_rate"`
	NbuFemaleRate       string `json:"nbu_female_rate"`
	NbuMaxIncomePerYear string `json:"nbu_max_income_per_year"`

	KtgGavRate           string `json:"ktg_gav_rate"`
	BerufsbeitragGavRate string `json:"berufsbeitrag_gav_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Address:              c.Address,
		AhvEmployeeRate:      c.AhvEmployeeRate.String(),
		AhvEmployerRate:      c.AhvEmployerRate.String(),
		AhvRentnerAllowance:  money.Format(c.AhvRentnerAllowance),
		AlvEmployeeRate:      c.AlvEmployeeRate.String(),
		AlvEmployerRate:      c.AlvEmployerRate.String(),
		AlvMaxIncomePerYear:  money.Format(c.AlvMaxIncomePerYear),
		Alv2EmployeeRate:     c.Alv2EmployeeRate.String(),
		Alv2EmployerRate:     c.Alv2EmployerRate.String(),
		NbuMaleRate:          c.NbuMaleRate.String(),
		NbuFemaleRate:        c.NbuFemaleRate.String(),
		NbuMaxIncomePerYear:  money.Format(c.NbuMaxIncomePerYear),
		KtgGavRate:           c.KtgGavRate.String(),
		BerufsbeitragGavRate: c.BerufsbeitragGavRate.String(),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// SaveCompanyRequest carries the full rate configuration. The first save
// creates the single company row, later saves replace it field by field.
type SaveCompanyRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`

	AhvEmployeeRate     string `json:"ahv_employee_rate"`
	AhvEmployerRate     string `json:"ahv_employer_rate"`
	AhvRentnerAllowance string `json:"ahv_rentner_allowance"`

	AlvEmployeeRate     string `json:"alv_employee_rate"`
	AlvEmployerRate     string `json:"alv_employer_rate"`
	AlvMaxIncomePerYear string `json:"alv_max_income_per_year"`

	Alv2EmployeeRate string `json:"alv2_employee_rate"`
	Alv2EmployerRate string `json:"alv2_employer_rate"`

	NbuMaleRate         string `json:"nbu_male_rate"`
	NbuFemaleRate       string `json:"nbu_female_rate"`
	NbuMaxIncomePerYear string `json:"nbu_max_income_per_year"`

	KtgGavRate           string `json:"ktg_gav_rate"`
	BerufsbeitragGavRate string `json:"berufsbeitrag_gav_rate"`
}

func (r *SaveCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	rateFields := map[string]string{
		"ahv_employee_rate":      r.AhvEmployeeRate,
		"ahv_employer_rate":      r.AhvEmployerRate,
		"alv_employee_rate":      r.AlvEmployeeRate,
		"alv_employer_rate":      r.AlvEmployerRate,
		"alv2_employee_rate":     r.Alv2EmployeeRate,
		"alv2_employer_rate":     r.Alv2EmployerRate,
		"nbu_male_rate":          r.NbuMaleRate,
		"nbu_female_rate":        r.NbuFemaleRate,
		"ktg_gav_rate":           r.KtgGavRate,
		"berufsbeitrag_gav_rate": r.BerufsbeitragGavRate,
	}
	for field, value := range rateFields {
		if !validator.IsValidRate(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a non-negative decimal rate",
			})
		}
	}

	amountFields := map[string]string{
		"ahv_rentner_allowance":   r.AhvRentnerAllowance,
		"alv_max_income_per_year": r.AlvMaxIncomePerYear,
		"nbu_max_income_per_year": r.NbuMaxIncomePerYear,
	}
	for field, value := range amountFields {
		if !validator.IsValidAmount(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a non-negative amount with at most 2 decimal places",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity parses the request into a Company. Call Validate first; parse
// failures at this point are reported as validation errors all the same.
func (r *SaveCompanyRequest) ToEntity() (Company, error) {
	c := Company{
		Name:    r.Name,
		Address: r.Address,
	}

	var err error
	parse := func(field, value string, dst *decimal.Decimal, parseFn func(string) (decimal.Decimal, error)) {
		if err != nil {
			return
		}
		var d decimal.Decimal
		if d, err = parseFn(value); err != nil {
			err = validator.ValidationErrors{{Field: field, Message: err.Error()}}
			return
		}
		*dst = d
	}

	parse("ahv_employee_rate", r.AhvEmployeeRate, &c.AhvEmployeeRate, money.ParseRate)
	parse("ahv_employer_rate", r.AhvEmployerRate, &c.AhvEmployerRate, money.ParseRate)
	parse("ahv_rentner_allowance", r.AhvRentnerAllowance, &c.AhvRentnerAllowance, money.ParseAmount)
	parse("alv_employee_rate", r.AlvEmployeeRate, &c.AlvEmployeeRate, money.ParseRate)
	parse("alv_employer_rate", r.AlvEmployerRate, &c.AlvEmployerRate, money.ParseRate)
	parse("alv_max_income_per_year", r.AlvMaxIncomePerYear, &c.AlvMaxIncomePerYear, money.ParseAmount)
	parse("alv2_employee_rate", r.Alv2EmployeeRate, &c.Alv2EmployeeRate, money.ParseRate)
	parse("alv2_employer_rate", r.Alv2EmployerRate, &c.Alv2EmployerRate, money.ParseRate)
	parse("nbu_male_rate", r.NbuMaleRate, &c.NbuMaleRate, money.ParseRate)
	parse("nbu_female_rate", r.NbuFemaleRate, &c.NbuFemaleRate, money.ParseRate)
	parse("nbu_max_income_per_year", r.NbuMaxIncomePerYear, &c.NbuMaxIncomePerYear, money.ParseAmount)
	parse("ktg_gav_rate", r.KtgGavRate, &c.KtgGavRate, money.ParseRate)
	parse("berufsbeitrag_gav_rate", r.BerufsbeitragGavRate, &c.BerufsbeitragGavRate, money.ParseRate)

	return c, err
}
