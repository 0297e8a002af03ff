package company

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the single tenant record holding all statutory rates and
// ceilings. Exactly one row exists per database; the engine reads it on every
// payroll computation.
type Company struct {
	ID      string
	Name    string
	Address *string

	// AHV/IV/EO
	AhvEmployeeRate     decimal.Decimal // percent
	AhvEmployerRate     decimal.Decimal
	AhvRentnerAllowance decimal.Decimal // CHF per month, AHV-exempt for Rentner

	// ALV tier 1 (below the annual ceiling)
	AlvEmployeeRate     decimal.Decimal
	AlvEmployerRate     decimal.Decimal
	AlvMaxIncomePerYear decimal.Decimal // CHF, Hoechstlohn

	// ALV tier 2 ("solidarity" rate above the ceiling; 0 disables tier 2)
	Alv2EmployeeRate decimal.Decimal
	Alv2EmployerRate decimal.Decimal

	// NBU/SUVA
	NbuMaleRate         decimal.Decimal
	NbuFemaleRate       decimal.Decimal
	NbuMaxIncomePerYear decimal.Decimal

	// GAV contributions
	KtgGavRate           decimal.Decimal
	BerufsbeitragGavRate decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
