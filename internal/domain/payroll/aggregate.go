package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Cross-period aggregation. All functions are pure folds over a snapshot of
// payments: they build fresh maps on every call and never mutate shared
// state, so concurrent report reads cannot observe half-updated aggregates.

type EmployeeTotals struct {
	EmployeeID      string
	EmployeeName    string
	PaymentsCount   int
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

// AggregateByEmployee groups payments by employee, summing the stored
// payment totals. Result is ordered by employee name, then ID.
func AggregateByEmployee(payments []Payment) []EmployeeTotals {
	byEmployee := make(map[string]*EmployeeTotals)
	for _, p := range payments {
		t, ok := byEmployee[p.EmployeeID]
		if !ok {
			t = &EmployeeTotals{EmployeeID: p.EmployeeID}
			if p.EmployeeName != nil {
				t.EmployeeName = *p.EmployeeName
			}
			byEmployee[p.EmployeeID] = t
		}
		t.PaymentsCount++
		t.GrossSalary = t.GrossSalary.Add(p.GrossSalary)
		t.TotalDeductions = t.TotalDeductions.Add(p.TotalDeductions)
		t.NetSalary = t.NetSalary.Add(p.NetSalary)
	}

	result := make([]EmployeeTotals, 0, len(byEmployee))
	for _, t := range byEmployee {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].EmployeeName != result[j].EmployeeName {
			return result[i].EmployeeName < result[j].EmployeeName
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}

type ItemTotals struct {
	TypeCode string
	Amount   decimal.Decimal

	// Hourly lines accumulate hours and their amounts separately: the
	// effective hourly rate is HourlyAmount/Hours, a weighted average,
	// never an average of per-line rates.
	Hours        decimal.Decimal
	HourlyAmount decimal.Decimal
	HasHours     bool
}

// EffectiveHourlyRate returns the weighted average rate over all hourly
// lines, or false when no hours were accumulated.
func (t ItemTotals) EffectiveHourlyRate() (decimal.Decimal, bool) {
	if !t.HasHours || !t.Hours.IsPositive() {
		return decimal.Zero, false
	}
	return t.HourlyAmount.Div(t.Hours), true
}

// AggregateItems groups item lines by type code across payments. Result is
// ordered by type code.
func AggregateItems(payments []Payment) []ItemTotals {
	byCode := make(map[string]*ItemTotals)
	for _, p := range payments {
		for _, it := range p.Items {
			t, ok := byCode[it.TypeCode]
			if !ok {
				t = &ItemTotals{TypeCode: it.TypeCode}
				byCode[it.TypeCode] = t
			}
			t.Amount = t.Amount.Add(it.Amount)
			if it.Hours != nil {
				t.Hours = t.Hours.Add(*it.Hours)
				t.HourlyAmount = t.HourlyAmount.Add(it.Amount)
				t.HasHours = true
			}
		}
	}

	result := make([]ItemTotals, 0, len(byCode))
	for _, t := range byCode {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TypeCode < result[j].TypeCode })
	return result
}

type DeductionTotals struct {
	Kind   DeductionKind
	Label  string
	Amount decimal.Decimal
}

// AggregateDeductions groups deduction rows by kind (OTHER rows additionally
// by label) across payments. Statutory kinds come first in display order,
// OTHER rows follow ordered by label.
func AggregateDeductions(payments []Payment) []DeductionTotals {
	type key struct {
		kind  DeductionKind
		label string
	}
	byKey := make(map[key]*DeductionTotals)
	for _, p := range payments {
		for _, d := range p.Deductions {
			k := key{kind: d.Kind}
			if d.Kind == DeductionOther {
				k.label = d.DisplayLabel()
			}
			t, ok := byKey[k]
			if !ok {
				t = &DeductionTotals{Kind: d.Kind, Label: d.DisplayLabel()}
				byKey[k] = t
			}
			t.Amount = t.Amount.Add(d.Amount)
		}
	}

	kindOrder := make(map[DeductionKind]int, len(StatutoryKinds))
	for i, k := range StatutoryKinds {
		kindOrder[k] = i
	}
	kindOrder[DeductionOther] = len(StatutoryKinds)

	result := make([]DeductionTotals, 0, len(byKey))
	for _, t := range byKey {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		oi, oj := kindOrder[result[i].Kind], kindOrder[result[j].Kind]
		if oi != oj {
			return oi < oj
		}
		return result[i].Label < result[j].Label
	})
	return result
}

// SumTotals sums the stored payment totals over the snapshot.
func SumTotals(payments []Payment) (gross, deductions, net decimal.Decimal) {
	for _, p := range payments {
		gross = gross.Add(p.GrossSalary)
		deductions = deductions.Add(p.TotalDeductions)
		net = net.Add(p.NetSalary)
	}
	return gross, deductions, net
}

// DeductionBaseSum sums the recorded base amounts of one deduction kind.
// Reports use this for the basis rows (AHV basis, ALV tier-1 basis, ALV
// tier-2 wage, NBU basis, BVG basis).
func DeductionBaseSum(payments []Payment, kind DeductionKind) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		for _, d := range p.Deductions {
			if d.Kind == kind && d.BaseAmount != nil {
				sum = sum.Add(*d.BaseAmount)
			}
		}
	}
	return sum
}

// DeductionAmountSum sums the amounts of one deduction kind.
func DeductionAmountSum(payments []Payment, kind DeductionKind) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		for _, d := range p.Deductions {
			if d.Kind == kind {
				sum = sum.Add(d.Amount)
			}
		}
	}
	return sum
}
