package payroll

import (
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// CalculationItem is one gross-wage line with its category flags already
// resolved. Items whose type code is missing from the registry carry zero
// flags and KnownType=false: they count toward gross salary but toward no
// deduction category.
type CalculationItem struct {
	TypeCode  string
	Amount    decimal.Decimal
	Flags     itemtype.ItemType
	KnownType bool
}

// CalculationInput bundles everything the calculator needs. It is a snapshot:
// the calculator performs no I/O and holds no state, so the same input always
// produces the same result.
type CalculationInput struct {
	Company  company.Company
	Employee employee.Employee
	Items    []CalculationItem

	// Wage already subject to the capped deductions this calendar year,
	// prior to this payment (from the cumulative ceiling queries).
	PriorAlvSubjectWage decimal.Decimal
	PriorNbuSubjectWage decimal.Decimal

	// Free-form OTHER rows passed through into the deduction set.
	ManualDeductions []payroll.Deduction
}

type CalculationResult struct {
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	Deductions      []payroll.Deduction

	// UnknownTypeCodes lists item type codes that were not found in the
	// registry. The caller logs them as data-quality warnings; they are not
	// an error.
	UnknownTypeCodes []string
}

// Calculate turns a gross-wage item set into the deduction set and net
// salary for one payment.
//
// Per-row amounts and the total are both derived independently from exact
// arithmetic: rows are rounded for display/storage, the total is rounded once
// after summation. They may differ by at most one Rappen, which is the
// accepted Swiss payroll rounding convention.
func Calculate(in CalculationInput) CalculationResult {
	var result CalculationResult

	gross := decimal.Zero
	ahvBase := decimal.Zero
	alvBase := decimal.Zero
	nbuBase := decimal.Zero
	bvgBase := decimal.Zero
	qstBase := decimal.Zero

	seenUnknown := map[string]bool{}
	for _, item := range in.Items {
		gross = gross.Add(item.Amount)
		if !item.KnownType {
			if !seenUnknown[item.TypeCode] {
				seenUnknown[item.TypeCode] = true
				result.UnknownTypeCodes = append(result.UnknownTypeCodes, item.TypeCode)
			}
			continue
		}
		if item.Flags.SubjectToAhv {
			ahvBase = ahvBase.Add(item.Amount)
		}
		if item.Flags.SubjectToAlv {
			alvBase = alvBase.Add(item.Amount)
		}
		if item.Flags.SubjectToNbu {
			nbuBase = nbuBase.Add(item.Amount)
		}
		if item.Flags.SubjectToBvg {
			bvgBase = bvgBase.Add(item.Amount)
		}
		if item.Flags.SubjectToQst {
			qstBase = qstBase.Add(item.Amount)
		}
	}

	var rows []payroll.Deduction
	exactTotal := decimal.Zero
	emit := func(d payroll.Deduction, exactAmount decimal.Decimal) {
		d.Amount = money.Round2(exactAmount)
		rows = append(rows, d)
		exactTotal = exactTotal.Add(exactAmount)
	}

	// AHV: Rentner get a monthly allowance subtracted from the base,
	// floored at zero. No row when the remaining base is zero.
	if in.Employee.HasAhv {
		base := ahvBase
		if in.Employee.IsRentner {
			base = base.Sub(in.Company.AhvRentnerAllowance)
			if base.IsNegative() {
				base = decimal.Zero
			}
		}
		if base.IsPositive() {
			rate := in.Company.AhvEmployeeRate
			emit(payroll.Deduction{
				Kind:       payroll.DeductionAhv,
				Rate:       &rate,
				BaseAmount: &base,
			}, money.Percent(base, rate))
		}
	}

	// ALV: two tiers against the annual ceiling. The portion of this
	// payment below the remaining ceiling headroom bears tier 1; the rest
	// bears tier 2 only when the company configures a solidarity rate.
	if in.Employee.HasAlv && alvBase.IsPositive() {
		below, above := prorateCeiling(alvBase, in.PriorAlvSubjectWage, in.Company.AlvMaxIncomePerYear)
		if below.IsPositive() {
			rate := in.Company.AlvEmployeeRate
			emit(payroll.Deduction{
				Kind:       payroll.DeductionAlv,
				Rate:       &rate,
				BaseAmount: &below,
			}, money.Percent(below, rate))
		}
		if above.IsPositive() && in.Company.Alv2EmployeeRate.IsPositive() {
			rate := in.Company.Alv2EmployeeRate
			emit(payroll.Deduction{
				Kind:       payroll.DeductionAlv2,
				Rate:       &rate,
				BaseAmount: &above,
			}, money.Percent(above, rate))
		}
	}

	// NBU: only for insured employees; rate depends on gender; same ceiling
	// proration as ALV tier 1. Wage above the ceiling bears nothing.
	if in.Employee.IsNbuInsured && nbuBase.IsPositive() {
		below, _ := prorateCeiling(nbuBase, in.PriorNbuSubjectWage, in.Company.NbuMaxIncomePerYear)
		if below.IsPositive() {
			rate := in.Company.NbuMaleRate
			if in.Employee.Gender == employee.GenderFemale {
				rate = in.Company.NbuFemaleRate
			}
			emit(payroll.Deduction{
				Kind:       payroll.DeductionNbu,
				Rate:       &rate,
				BaseAmount: &below,
			}, money.Percent(below, rate))
		}
	}

	// BVG: fixed amount wins over percentage; neither configured, no row.
	// The fixed amount is independent of the wage base.
	if in.Employee.BvgDeductionAmount != nil {
		if in.Employee.BvgDeductionAmount.IsPositive() {
			emit(payroll.Deduction{
				Kind: payroll.DeductionBvg,
			}, *in.Employee.BvgDeductionAmount)
		}
	} else if in.Employee.BvgDeductionPercentage != nil && bvgBase.IsPositive() {
		rate := *in.Employee.BvgDeductionPercentage
		emit(payroll.Deduction{
			Kind:       payroll.DeductionBvg,
			Rate:       &rate,
			BaseAmount: &bvgBase,
		}, money.Percent(bvgBase, rate))
	}

	// QST: personal source-tax rate.
	if in.Employee.IsQstSubject && in.Employee.QstRate != nil && qstBase.IsPositive() {
		rate := *in.Employee.QstRate
		emit(payroll.Deduction{
			Kind:       payroll.DeductionQst,
			Rate:       &rate,
			BaseAmount: &qstBase,
		}, money.Percent(qstBase, rate))
	}

	for _, d := range in.ManualDeductions {
		d.Kind = payroll.DeductionOther
		emit(d, d.Amount)
	}

	result.GrossSalary = money.Round2(gross)
	result.TotalDeductions = money.Round2(exactTotal)
	result.NetSalary = result.GrossSalary.Sub(result.TotalDeductions)
	result.Deductions = rows
	return result
}

// prorateCeiling splits this payment's capped wage against the annual
// ceiling given the wage already used up this year. below is never negative
// and never exceeds the remaining headroom; above is the remainder. A company
// without a configured ceiling (zero) caps nothing.
func prorateCeiling(thisWage, priorWage, ceiling decimal.Decimal) (below, above decimal.Decimal) {
	if !ceiling.IsPositive() {
		return thisWage, decimal.Zero
	}
	headroom := ceiling.Sub(priorWage)
	if headroom.IsNegative() {
		headroom = decimal.Zero
	}
	below = decimal.Min(thisWage, headroom)
	if below.IsNegative() {
		below = decimal.Zero
	}
	above = thisWage.Sub(below)
	return below, above
}
