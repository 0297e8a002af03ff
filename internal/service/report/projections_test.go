package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func marchPayment(employeeID string, month int) payroll.Payment {
	return payroll.Payment{
		ID:              fmt.Sprintf("%s-p%d", employeeID, month),
		EmployeeID:      employeeID,
		EmployeeName:    strPtr("Anna Muster"),
		PaymentMonth:    month,
		PaymentYear:     2025,
		GrossSalary:     dec("5000"),
		TotalDeductions: dec("320"),
		NetSalary:       dec("4680"),
		Items: []payroll.Item{
			{TypeCode: "1000", Amount: dec("5000")},
		},
		Deductions: []payroll.Deduction{
			{Kind: payroll.DeductionAhv, Amount: dec("265"), Rate: decPtr("5.3"), BaseAmount: decPtr("5000")},
			{Kind: payroll.DeductionAlv, Amount: dec("55"), Rate: decPtr("1.1"), BaseAmount: decPtr("5000")},
		},
	}
}

func TestBuildMonthlyReport(t *testing.T) {
	payments := []payroll.Payment{marchPayment("e1", 3)}
	names := map[string]string{"1000": "Monatslohn"}

	got := buildMonthlyReport(2025, 3, payments, names)

	assert.Equal(t, 3, got.Month)
	require.Len(t, got.Employees, 1)
	assert.Equal(t, "5000.00", got.Employees[0].GrossSalary)

	require.Len(t, got.DeductionSummary, 2)
	assert.Equal(t, "AHV", got.DeductionSummary[0].Kind)
	assert.Equal(t, "265.00", got.DeductionSummary[0].Amount)

	require.Len(t, got.ItemSummary, 1)
	assert.Equal(t, "Monatslohn", got.ItemSummary[0].TypeName)
	assert.Equal(t, "5000.00", got.ItemSummary[0].Amount)

	assert.Equal(t, "5000.00", got.Totals.GrossSalary)
	assert.Equal(t, "4680.00", got.Totals.NetSalary)
}

func TestBuildMonthlyReportWeightedHourlyRate(t *testing.T) {
	payments := []payroll.Payment{
		{
			EmployeeID:   "e1",
			EmployeeName: strPtr("Anna Muster"),
			PaymentMonth: 4, PaymentYear: 2025,
			GrossSalary: dec("1400"), NetSalary: dec("1400"),
			Items: []payroll.Item{
				{TypeCode: "1005", Amount: dec("500"), Hours: decPtr("20"), HourlyRate: decPtr("25")},
				{TypeCode: "1005", Amount: dec("900"), Hours: decPtr("30"), HourlyRate: decPtr("30")},
			},
		},
	}

	got := buildMonthlyReport(2025, 4, payments, nil)
	require.Len(t, got.ItemSummary, 1)
	require.NotNil(t, got.ItemSummary[0].Hours)
	assert.Equal(t, "50", *got.ItemSummary[0].Hours)
	require.NotNil(t, got.ItemSummary[0].EffectiveHourlyRate)
	assert.Equal(t, "28.00", *got.ItemSummary[0].EffectiveHourlyRate)
}

func TestBuildYearlyReportThirteenMonths(t *testing.T) {
	payments := []payroll.Payment{
		marchPayment("e1", 3),
		marchPayment("e1", 13), // year-end run
	}
	employees := []employee.Employee{
		{ID: "e1", FirstName: "Anna", LastName: "Muster", Gender: employee.GenderFemale, IsNbuInsured: true},
	}
	types := map[string]itemtype.ItemType{
		"1000": {Code: "1000", SubjectToNbu: true},
	}

	got := buildYearlyReport(2025, payments, employees, types)

	require.Len(t, got.Months, 13)
	assert.Equal(t, 1, got.Months[0].Month)
	assert.Equal(t, 0, got.Months[0].PaymentsCount)
	assert.Equal(t, "0.00", got.Months[0].GrossSalary)

	assert.Equal(t, 1, got.Months[2].PaymentsCount)
	assert.Equal(t, "5000.00", got.Months[2].GrossSalary)

	assert.Equal(t, 13, got.Months[12].Month)
	assert.Equal(t, 1, got.Months[12].PaymentsCount)

	assert.Equal(t, "10000.00", got.Totals.GrossSalary)
}

func TestInsuranceWageRowsGenderSplit(t *testing.T) {
	payments := []payroll.Payment{
		marchPayment("e1", 3),
		marchPayment("e2", 3),
	}
	employees := []employee.Employee{
		{ID: "e1", Gender: employee.GenderFemale, BirthDate: datePtr("1990-05-01"), IsNbuInsured: true},
		{ID: "e2", Gender: employee.GenderMale, BirthDate: datePtr("1950-02-01"), IsNbuInsured: true},
		{ID: "e3", Gender: employee.GenderMale}, // no payments, not counted
	}
	types := map[string]itemtype.ItemType{
		"1000": {Code: "1000", SubjectToNbu: true},
	}

	rows := insuranceWageRows(2025, payments, employees, types)
	require.Len(t, rows, 4)

	byCategory := map[string]int{}
	for i, r := range rows {
		byCategory[r.Category] = i
	}

	female := rows[byCategory["female"]]
	assert.Equal(t, 1, female.EmployeeCount)
	assert.Equal(t, "5000.00", female.AhvSubjectWage)
	assert.Equal(t, "5000.00", female.UvgRelevantWage)
	assert.Equal(t, "0.00", female.UvgExcessWage)

	// Born 1950: 75 at year end, lands in the 70+ supplemental group.
	male70 := rows[byCategory["male_70_plus"]]
	assert.Equal(t, 1, male70.EmployeeCount)

	male := rows[byCategory["male"]]
	assert.Equal(t, 0, male.EmployeeCount)
}

func TestInsuranceWageRowsExcessAboveCeiling(t *testing.T) {
	// NBU-subject wage 20000, but only 12000 was capped into the deduction
	// base: 8000 is excess wage.
	payments := []payroll.Payment{
		{
			ID: "p1", EmployeeID: "e1", PaymentMonth: 1, PaymentYear: 2025,
			GrossSalary: dec("20000"),
			Items: []payroll.Item{
				{TypeCode: "1000", Amount: dec("20000")},
			},
			Deductions: []payroll.Deduction{
				{Kind: payroll.DeductionAhv, Amount: dec("1060"), BaseAmount: decPtr("20000")},
				{Kind: payroll.DeductionNbu, Amount: dec("144"), BaseAmount: decPtr("12000")},
			},
		},
	}
	employees := []employee.Employee{
		{ID: "e1", Gender: employee.GenderMale, IsNbuInsured: true},
	}
	types := map[string]itemtype.ItemType{
		"1000": {Code: "1000", SubjectToNbu: true},
	}

	rows := insuranceWageRows(2025, payments, employees, types)
	for _, r := range rows {
		if r.Category == "male" {
			assert.Equal(t, "12000.00", r.UvgRelevantWage)
			assert.Equal(t, "8000.00", r.UvgExcessWage)
			return
		}
	}
	t.Fatal("male row missing")
}

func TestBuildEmployeeOverviewReconcilesWithMonths(t *testing.T) {
	payments := []payroll.Payment{
		marchPayment("e1", 3),
		marchPayment("e1", 3), // second run in the same month
		marchPayment("e1", 13),
	}
	emp := employee.Employee{ID: "e1", FirstName: "Anna", LastName: "Muster"}

	got := buildEmployeeOverview(emp, 2025, payments, map[string]string{"1000": "Monatslohn"})

	// Column 3 carries both March runs; column 13 the year-end run.
	assert.Equal(t, "10000.00", got.GrossRow.Columns[2])
	assert.Equal(t, "5000.00", got.GrossRow.Columns[12])
	assert.Equal(t, "0.00", got.GrossRow.Columns[0])
	assert.Equal(t, "15000.00", got.GrossRow.Total)

	require.Len(t, got.ItemRows, 1)
	assert.Equal(t, "Monatslohn", got.ItemRows[0].Label)
	assert.Equal(t, "15000.00", got.ItemRows[0].Total)

	// Statutory deduction rows in display order, with basis rows beneath.
	require.Len(t, got.DeductionRows, 2)
	assert.Equal(t, "AHV", got.DeductionRows[0].Code)
	assert.Equal(t, "795.00", got.DeductionRows[0].Total)

	require.Len(t, got.BasisRows, 2)
	assert.Equal(t, "AHV basis", got.BasisRows[0].Label)
	assert.Equal(t, "15000.00", got.BasisRows[0].Total)

	// The March column equals what the March monthly report shows.
	monthly := buildMonthlyReport(2025, 3, payments[:2], nil)
	assert.Equal(t, monthly.Totals.GrossSalary, got.GrossRow.Columns[2])
	assert.Equal(t, monthly.Totals.NetSalary, got.NetRow.Columns[2])
}

func TestBuildLohnausweis(t *testing.T) {
	payments := []payroll.Payment{marchPayment("e1", 3)}
	emp := employee.Employee{
		ID:        "e1",
		FirstName: "Anna", LastName: "Muster",
		AhvNumber: "756.1234.5678.97",
		EntryDate: datePtr("2025-03-01"),
	}
	comp := company.Company{Name: "Muster AG", Address: strPtr("Musterstrasse 1, 8000 Zürich")}

	got := buildLohnausweis(emp, comp, 2025, payments)

	assert.Equal(t, "Anna Muster", got.EmployeeName)
	assert.Equal(t, "2025-03-01", got.PeriodStart)
	assert.Equal(t, "2025-12-31", got.PeriodEnd)
	assert.Equal(t, "Muster AG", got.CompanyName)

	assert.InDelta(t, 5000.00, got.GrossSalary, 0.001)
	assert.InDelta(t, 320.00, got.SocialInsurance, 0.001) // AHV + ALV
	assert.InDelta(t, 4680.00, got.NetSalary, 0.001)
	assert.InDelta(t, 0.0, got.TaxWithheld, 0.001)
}
