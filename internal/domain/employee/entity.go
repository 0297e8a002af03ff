package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

type Employee struct {
	ID        string
	FirstName string
	LastName  string
	BirthDate *time.Time
	AhvNumber string
	Gender    Gender

	EntryDate *time.Time
	ExitDate  *time.Time // nil while still employed

	// Insurance flags
	HasAhv               bool
	HasAlv               bool
	HasAccidentInsurance bool
	IsNbuInsured         bool
	IsRentner            bool

	// Source tax
	IsQstSubject bool
	QstRate      *decimal.Decimal // percent, required when IsQstSubject

	// Banking
	BankName *string
	BankIban *string

	// Default pay parameters
	MonthlySalary   *decimal.Decimal
	HourlyRate      *decimal.Decimal
	EmploymentLevel *decimal.Decimal // percent

	// BVG deduction: fixed CHF amount or percentage, never both
	BvgDeductionAmount     *decimal.Decimal
	BvgDeductionPercentage *decimal.Decimal

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
