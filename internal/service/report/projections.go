package report

import (
	"sort"
	"strings"
	"time"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/report"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Pure projection builders. Each takes a snapshot of payments (with items and
// deductions) plus the master data it needs and folds them into a view. No
// storage access, no new business rules: everything is regrouping of figures
// the aggregator already computed and persisted.

func buildMonthlyReport(year, month int, payments []payroll.Payment, typeNames map[string]string) report.MonthlyReport {
	out := report.MonthlyReport{
		Year:             year,
		Month:            month,
		Employees:        employeeSummaries(payroll.AggregateByEmployee(payments)),
		DeductionSummary: make([]report.DeductionSummary, 0),
		ItemSummary:      make([]report.ItemSummary, 0),
	}

	for _, d := range payroll.AggregateDeductions(payments) {
		out.DeductionSummary = append(out.DeductionSummary, report.DeductionSummary{
			Kind:   string(d.Kind),
			Label:  d.Label,
			Amount: money.Format(d.Amount),
		})
	}

	for _, it := range payroll.AggregateItems(payments) {
		summary := report.ItemSummary{
			TypeCode: it.TypeCode,
			TypeName: typeNames[it.TypeCode],
			Amount:   money.Format(it.Amount),
		}
		if it.HasHours {
			hours := it.Hours.String()
			summary.Hours = &hours
			if rate, ok := it.EffectiveHourlyRate(); ok {
				rateStr := money.Format(money.Round2(rate))
				summary.EffectiveHourlyRate = &rateStr
			}
		}
		out.ItemSummary = append(out.ItemSummary, summary)
	}

	gross, deductions, net := payroll.SumTotals(payments)
	out.Totals = totals(gross, deductions, net)
	return out
}

func buildYearlyReport(year int, payments []payroll.Payment, employees []employee.Employee, typesByCode map[string]itemtype.ItemType) report.YearlyReport {
	out := report.YearlyReport{
		Year:           year,
		Months:         make([]report.MonthRow, 13),
		Employees:      employeeSummaries(payroll.AggregateByEmployee(payments)),
		InsuranceWages: make([]report.InsuranceWageRow, 0, 4),
	}

	// 13 zero-filled month rows: calendar months plus the year-end run.
	type monthAcc struct {
		count                  int
		gross, deductions, net decimal.Decimal
	}
	accs := make([]monthAcc, 13)
	for _, p := range payments {
		if p.PaymentMonth < 1 || p.PaymentMonth > 13 {
			continue
		}
		acc := &accs[p.PaymentMonth-1]
		acc.count++
		acc.gross = acc.gross.Add(p.GrossSalary)
		acc.deductions = acc.deductions.Add(p.TotalDeductions)
		acc.net = acc.net.Add(p.NetSalary)
	}
	for i := range accs {
		out.Months[i] = report.MonthRow{
			Month:           i + 1,
			PaymentsCount:   accs[i].count,
			GrossSalary:     money.Format(accs[i].gross),
			TotalDeductions: money.Format(accs[i].deductions),
			NetSalary:       money.Format(accs[i].net),
		}
	}

	out.InsuranceWages = insuranceWageRows(year, payments, employees, typesByCode)

	gross, deductions, net := payroll.SumTotals(payments)
	out.Totals = totals(gross, deductions, net)
	return out
}

// insuranceWageRows builds the gender-split wage/ceiling table for the annual
// insurer declaration. Employees aged 70 or older at year end go into the
// UVGO supplemental rows.
func insuranceWageRows(year int, payments []payroll.Payment, employees []employee.Employee, typesByCode map[string]itemtype.ItemType) []report.InsuranceWageRow {
	type acc struct {
		count                                int
		ahvSubject, nonAhv, relevant, excess decimal.Decimal
	}
	categories := []string{"male", "female", "male_70_plus", "female_70_plus"}
	accs := map[string]*acc{}
	for _, c := range categories {
		accs[c] = &acc{}
	}

	paymentsByEmployee := make(map[string][]payroll.Payment)
	for _, p := range payments {
		paymentsByEmployee[p.EmployeeID] = append(paymentsByEmployee[p.EmployeeID], p)
	}

	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, emp := range employees {
		empPayments := paymentsByEmployee[emp.ID]
		if len(empPayments) == 0 {
			continue
		}

		category := "male"
		if emp.Gender == employee.GenderFemale {
			category = "female"
		}
		if emp.BirthDate != nil && ageAt(*emp.BirthDate, yearEnd) >= 70 {
			category += "_70_plus"
		}
		a := accs[category]
		a.count++

		gross, _, _ := payroll.SumTotals(empPayments)
		ahvSubject := payroll.DeductionBaseSum(empPayments, payroll.DeductionAhv)
		a.ahvSubject = a.ahvSubject.Add(ahvSubject)
		a.nonAhv = a.nonAhv.Add(gross.Sub(ahvSubject))

		// UVG columns only cover insured employees. The capped portion is
		// recorded on the NBU rows; the excess is the remaining NBU-subject
		// wage, recomputed from the item flags.
		if emp.IsNbuInsured {
			relevant := payroll.DeductionBaseSum(empPayments, payroll.DeductionNbu)
			subject := nbuSubjectWage(empPayments, typesByCode)
			a.relevant = a.relevant.Add(relevant)
			excess := subject.Sub(relevant)
			if excess.IsPositive() {
				a.excess = a.excess.Add(excess)
			}
		}
	}

	rows := make([]report.InsuranceWageRow, 0, len(categories))
	for _, c := range categories {
		a := accs[c]
		rows = append(rows, report.InsuranceWageRow{
			Category:          c,
			EmployeeCount:     a.count,
			AhvSubjectWage:    money.Format(a.ahvSubject),
			NonAhvSubjectWage: money.Format(a.nonAhv),
			UvgRelevantWage:   money.Format(a.relevant),
			UvgExcessWage:     money.Format(a.excess),
		})
	}
	return rows
}

func nbuSubjectWage(payments []payroll.Payment, typesByCode map[string]itemtype.ItemType) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		for _, it := range p.Items {
			if t, ok := typesByCode[it.TypeCode]; ok && t.SubjectToNbu {
				sum = sum.Add(it.Amount)
			}
		}
	}
	return sum
}

func ageAt(birthDate, at time.Time) int {
	age := at.Year() - birthDate.Year()
	if at.YearDay() < birthDate.YearDay() {
		age--
	}
	return age
}

func buildEmployeeOverview(emp employee.Employee, year int, payments []payroll.Payment, typeNames map[string]string) report.EmployeeOverview {
	out := report.EmployeeOverview{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Year:         year,
	}

	// Column index: payment month 1-13 maps to columns 0-12, so each column
	// reconciles exactly with the monthly report for that month.
	type matrix struct {
		columns [13]decimal.Decimal
	}
	col := func(p payroll.Payment) (int, bool) {
		if p.PaymentMonth < 1 || p.PaymentMonth > 13 {
			return 0, false
		}
		return p.PaymentMonth - 1, true
	}

	itemRows := map[string]*matrix{}
	deductionRows := map[string]*matrix{}
	deductionLabels := map[string]string{}
	basisRows := map[payroll.DeductionKind]*matrix{}
	var grossRow, deductionsRow, netRow matrix

	for _, p := range payments {
		c, ok := col(p)
		if !ok {
			continue
		}
		grossRow.columns[c] = grossRow.columns[c].Add(p.GrossSalary)
		deductionsRow.columns[c] = deductionsRow.columns[c].Add(p.TotalDeductions)
		netRow.columns[c] = netRow.columns[c].Add(p.NetSalary)

		for _, it := range p.Items {
			m, ok := itemRows[it.TypeCode]
			if !ok {
				m = &matrix{}
				itemRows[it.TypeCode] = m
			}
			m.columns[c] = m.columns[c].Add(it.Amount)
		}
		for _, d := range p.Deductions {
			key := string(d.Kind)
			if d.Kind == payroll.DeductionOther {
				key = "OTHER:" + d.DisplayLabel()
			}
			m, ok := deductionRows[key]
			if !ok {
				m = &matrix{}
				deductionRows[key] = m
				deductionLabels[key] = d.DisplayLabel()
			}
			m.columns[c] = m.columns[c].Add(d.Amount)

			if d.BaseAmount != nil {
				bm, ok := basisRows[d.Kind]
				if !ok {
					bm = &matrix{}
					basisRows[d.Kind] = bm
				}
				bm.columns[c] = bm.columns[c].Add(*d.BaseAmount)
			}
		}
	}

	toRow := func(code, label string, m *matrix) report.OverviewRow {
		row := report.OverviewRow{Code: code, Label: label}
		total := decimal.Zero
		for i, v := range m.columns {
			row.Columns[i] = money.Format(v)
			total = total.Add(v)
		}
		row.Total = money.Format(total)
		return row
	}

	for _, it := range sortedKeys(itemRows) {
		label := typeNames[it]
		if label == "" {
			label = it
		}
		out.ItemRows = append(out.ItemRows, toRow(it, label, itemRows[it]))
	}

	// Statutory kinds in display order, then OTHER rows by label.
	for _, kind := range payroll.StatutoryKinds {
		if m, ok := deductionRows[string(kind)]; ok {
			out.DeductionRows = append(out.DeductionRows, toRow(string(kind), string(kind), m))
		}
	}
	for _, key := range sortedKeys(deductionRows) {
		if strings.HasPrefix(key, "OTHER:") {
			out.DeductionRows = append(out.DeductionRows, toRow("", deductionLabels[key], deductionRows[key]))
		}
	}

	basisLabels := []struct {
		kind  payroll.DeductionKind
		label string
	}{
		{payroll.DeductionAhv, "AHV basis"},
		{payroll.DeductionAlv, "ALV basis"},
		{payroll.DeductionAlv2, "ALV2 wage"},
		{payroll.DeductionNbu, "NBU basis"},
		{payroll.DeductionBvg, "BVG basis"},
	}
	for _, b := range basisLabels {
		if m, ok := basisRows[b.kind]; ok {
			out.BasisRows = append(out.BasisRows, toRow(string(b.kind), b.label, m))
		}
	}

	out.GrossRow = toRow("", "Gross salary", &grossRow)
	out.DeductionsRow = toRow("", "Total deductions", &deductionsRow)
	out.NetRow = toRow("", "Net salary", &netRow)
	return out
}

func buildLohnausweis(emp employee.Employee, comp company.Company, year int, payments []payroll.Payment) report.LohnausweisData {
	out := report.LohnausweisData{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName(),
		AhvNumber:      emp.AhvNumber,
		Year:           year,
		CompanyName:    comp.Name,
		CompanyAddress: comp.Address,
	}
	if emp.BirthDate != nil {
		out.BirthDate = emp.BirthDate.Format("2006-01-02")
	}

	// Employment window clamped to the calendar year.
	periodStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	if emp.EntryDate != nil && emp.EntryDate.After(periodStart) {
		periodStart = *emp.EntryDate
	}
	if emp.ExitDate != nil && emp.ExitDate.Before(periodEnd) {
		periodEnd = *emp.ExitDate
	}
	out.PeriodStart = periodStart.Format("2006-01-02")
	out.PeriodEnd = periodEnd.Format("2006-01-02")

	gross, _, net := payroll.SumTotals(payments)
	social := payroll.DeductionAmountSum(payments, payroll.DeductionAhv).
		Add(payroll.DeductionAmountSum(payments, payroll.DeductionAlv)).
		Add(payroll.DeductionAmountSum(payments, payroll.DeductionAlv2)).
		Add(payroll.DeductionAmountSum(payments, payroll.DeductionNbu))

	out.BasicSalary = money.Round2(gross).InexactFloat64()
	out.GrossSalary = money.Round2(gross).InexactFloat64()
	out.SocialInsurance = money.Round2(social).InexactFloat64()
	out.PensionOrdinary = money.Round2(payroll.DeductionAmountSum(payments, payroll.DeductionBvg)).InexactFloat64()
	out.NetSalary = money.Round2(net).InexactFloat64()
	out.TaxWithheld = money.Round2(payroll.DeductionAmountSum(payments, payroll.DeductionQst)).InexactFloat64()
	return out
}

func employeeSummaries(aggregated []payroll.EmployeeTotals) []report.EmployeeSummary {
	summaries := make([]report.EmployeeSummary, 0, len(aggregated))
	for _, t := range aggregated {
		summaries = append(summaries, report.EmployeeSummary{
			EmployeeID:      t.EmployeeID,
			EmployeeName:    t.EmployeeName,
			PaymentsCount:   t.PaymentsCount,
			GrossSalary:     money.Format(t.GrossSalary),
			TotalDeductions: money.Format(t.TotalDeductions),
			NetSalary:       money.Format(t.NetSalary),
		})
	}
	return summaries
}

func totals(gross, deductions, net decimal.Decimal) report.Totals {
	return report.Totals{
		GrossSalary:     money.Format(gross),
		TotalDeductions: money.Format(deductions),
		NetSalary:       money.Format(net),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
