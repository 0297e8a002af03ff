package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportTolerance is the accepted absolute difference (CHF) between totals
// parsed from an externally generated payslip and the engine's own
// recomputation. Mismatches beyond it are surfaced, never silently accepted.
var ImportTolerance = decimal.New(5, -2)

// DeductionKind is a closed set: the five statutory categories plus OTHER for
// free-form rows (e.g. from templates). OTHER rows carry their own label.
type DeductionKind string

const (
	DeductionAhv   DeductionKind = "AHV"
	DeductionAlv   DeductionKind = "ALV"
	DeductionAlv2  DeductionKind = "ALV2" // solidarity tier above the ceiling
	DeductionNbu   DeductionKind = "NBU"
	DeductionBvg   DeductionKind = "BVG"
	DeductionQst   DeductionKind = "QST"
	DeductionOther DeductionKind = "OTHER"
)

// StatutoryKinds in display order.
var StatutoryKinds = []DeductionKind{
	DeductionAhv, DeductionAlv, DeductionAlv2, DeductionNbu, DeductionBvg, DeductionQst,
}

func IsValidDeductionKind(kind string) bool {
	switch DeductionKind(kind) {
	case DeductionAhv, DeductionAlv, DeductionAlv2, DeductionNbu, DeductionBvg, DeductionQst, DeductionOther:
		return true
	}
	return false
}

// Payment is one payroll run for one employee covering a period. Totals are
// always recomputed from the item/deduction lists at write time, never taken
// from the client. Once locked, the payment and its children are immutable.
type Payment struct {
	ID         string
	EmployeeID string

	PeriodStart  time.Time
	PeriodEnd    time.Time
	PaymentDate  time.Time
	PaymentMonth int // denormalized from PaymentDate
	PaymentYear  int

	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	IsLocked bool
	Notes    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Items      []Item
	Deductions []Deduction

	// Joined fields
	EmployeeName *string
}

// Item is a single gross-wage line. When Hours and HourlyRate are present the
// stored Amount is authoritative (computed client-side as hours x rate).
type Item struct {
	ID          string
	PaymentID   string
	TypeCode    string
	Description *string
	Amount      decimal.Decimal
	Hours       *decimal.Decimal
	HourlyRate  *decimal.Decimal
}

// Deduction is one deduction row. Amount is always a positive magnitude.
// Rate and BaseAmount document how percentage rows were computed; flat rows
// (fixed BVG, OTHER) leave them nil.
type Deduction struct {
	ID          string
	PaymentID   string
	Kind        DeductionKind
	Label       *string // required for OTHER
	Description *string
	Amount      decimal.Decimal
	Rate        *decimal.Decimal
	BaseAmount  *decimal.Decimal
}

// DisplayLabel returns the label shown on payslips and reports.
func (d Deduction) DisplayLabel() string {
	if d.Kind == DeductionOther && d.Label != nil {
		return *d.Label
	}
	return string(d.Kind)
}

// CumulativeData is the ceiling-tracker result: wage subject to a capped
// deduction (ALV or NBU) already recorded for an employee/year, prior to the
// payment under edit.
type CumulativeData struct {
	SubjectAmount   decimal.Decimal
	DeductionAmount decimal.Decimal
	PaymentsCount   int
}

// Template is a reusable item/deduction blueprint. The payload is validated
// as JSON but not type-checked against the item type registry.
type Template struct {
	ID        string
	Name      string
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
