package payroll

import (
	"testing"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCompany() company.Company {
	return company.Company{
		AhvEmployeeRate:     dec("5.3"),
		AhvRentnerAllowance: dec("1400"),
		AlvEmployeeRate:     dec("1.1"),
		AlvMaxIncomePerYear: dec("148200"),
		Alv2EmployeeRate:    dec("0.5"),
		NbuMaleRate:         dec("1.2"),
		NbuFemaleRate:       dec("1.1"),
		NbuMaxIncomePerYear: dec("148200"),
	}
}

func testEmployee() employee.Employee {
	return employee.Employee{
		Gender:       employee.GenderMale,
		HasAhv:       true,
		HasAlv:       true,
		IsNbuInsured: false,
	}
}

func allSubjectItem(amount string) CalculationItem {
	return CalculationItem{
		TypeCode: "1000",
		Amount:   dec(amount),
		Flags: itemtype.ItemType{
			SubjectToAhv: true,
			SubjectToAlv: true,
			SubjectToNbu: true,
			SubjectToBvg: true,
			SubjectToQst: true,
		},
		KnownType: true,
	}
}

func findDeduction(t *testing.T, rows []payroll.Deduction, kind payroll.DeductionKind) payroll.Deduction {
	t.Helper()
	for _, d := range rows {
		if d.Kind == kind {
			return d
		}
	}
	t.Fatalf("no %s deduction in %v", kind, rows)
	return payroll.Deduction{}
}

func hasDeduction(rows []payroll.Deduction, kind payroll.DeductionKind) bool {
	for _, d := range rows {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func TestCalculateStandardMonthlySalary(t *testing.T) {
	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: testEmployee(),
		Items:    []CalculationItem{allSubjectItem("5000")},
	})

	assert.Equal(t, "5000.00", money.Format(result.GrossSalary))

	ahv := findDeduction(t, result.Deductions, payroll.DeductionAhv)
	assert.Equal(t, "265.00", money.Format(ahv.Amount))
	require.NotNil(t, ahv.BaseAmount)
	assert.Equal(t, "5000.00", money.Format(*ahv.BaseAmount))

	alv := findDeduction(t, result.Deductions, payroll.DeductionAlv)
	assert.Equal(t, "55.00", money.Format(alv.Amount))

	assert.Equal(t, "320.00", money.Format(result.TotalDeductions))
	assert.Equal(t, "4680.00", money.Format(result.NetSalary))
}

func TestCalculateAlvCeilingSplit(t *testing.T) {
	// 147000 already used up: 1200 headroom left of the 148200 ceiling.
	// A 5000 wage splits 1200 at tier 1 and 3800 at tier 2.
	result := Calculate(CalculationInput{
		Company:             testCompany(),
		Employee:            testEmployee(),
		Items:               []CalculationItem{allSubjectItem("5000")},
		PriorAlvSubjectWage: dec("147000"),
	})

	alv := findDeduction(t, result.Deductions, payroll.DeductionAlv)
	assert.Equal(t, "13.20", money.Format(alv.Amount))
	require.NotNil(t, alv.BaseAmount)
	assert.Equal(t, "1200.00", money.Format(*alv.BaseAmount))

	alv2 := findDeduction(t, result.Deductions, payroll.DeductionAlv2)
	assert.Equal(t, "19.00", money.Format(alv2.Amount))
	require.NotNil(t, alv2.BaseAmount)
	assert.Equal(t, "3800.00", money.Format(*alv2.BaseAmount))
}

func TestCalculateAlvCeilingExhausted(t *testing.T) {
	result := Calculate(CalculationInput{
		Company:             testCompany(),
		Employee:            testEmployee(),
		Items:               []CalculationItem{allSubjectItem("5000")},
		PriorAlvSubjectWage: dec("150000"),
	})

	assert.False(t, hasDeduction(result.Deductions, payroll.DeductionAlv))
	alv2 := findDeduction(t, result.Deductions, payroll.DeductionAlv2)
	assert.Equal(t, "25.00", money.Format(alv2.Amount))
}

func TestCalculateAlv2Disabled(t *testing.T) {
	comp := testCompany()
	comp.Alv2EmployeeRate = decimal.Zero

	result := Calculate(CalculationInput{
		Company:             comp,
		Employee:            testEmployee(),
		Items:               []CalculationItem{allSubjectItem("5000")},
		PriorAlvSubjectWage: dec("150000"),
	})

	assert.False(t, hasDeduction(result.Deductions, payroll.DeductionAlv))
	assert.False(t, hasDeduction(result.Deductions, payroll.DeductionAlv2))
}

func TestCalculateRentnerAllowance(t *testing.T) {
	emp := testEmployee()
	emp.IsRentner = true

	// Base below the allowance: no AHV row at all.
	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("1000")},
	})
	assert.False(t, hasDeduction(result.Deductions, payroll.DeductionAhv))

	// Base above the allowance: only the excess is AHV wage.
	result = Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("5000")},
	})
	ahv := findDeduction(t, result.Deductions, payroll.DeductionAhv)
	require.NotNil(t, ahv.BaseAmount)
	assert.Equal(t, "3600.00", money.Format(*ahv.BaseAmount))
	assert.Equal(t, "190.80", money.Format(ahv.Amount))
}

func TestCalculateNoAhvFlag(t *testing.T) {
	emp := testEmployee()
	emp.HasAhv = false

	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("5000")},
	})
	assert.False(t, hasDeduction(result.Deductions, payroll.DeductionAhv))
}

func TestCalculateNbuGenderRate(t *testing.T) {
	emp := testEmployee()
	emp.IsNbuInsured = true

	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("5000")},
	})
	nbu := findDeduction(t, result.Deductions, payroll.DeductionNbu)
	assert.Equal(t, "60.00", money.Format(nbu.Amount)) // 1.2% male rate

	emp.Gender = employee.GenderFemale
	result = Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("5000")},
	})
	nbu = findDeduction(t, result.Deductions, payroll.DeductionNbu)
	assert.Equal(t, "55.00", money.Format(nbu.Amount)) // 1.1% female rate
}

func TestCalculateBvgFixedWinsOverPercentage(t *testing.T) {
	emp := testEmployee()
	fixed := dec("250")
	pct := dec("7.5")
	emp.BvgDeductionAmount = &fixed
	emp.BvgDeductionPercentage = &pct

	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("5000")},
	})
	bvg := findDeduction(t, result.Deductions, payroll.DeductionBvg)
	assert.Equal(t, "250.00", money.Format(bvg.Amount))
	assert.Nil(t, bvg.Rate)
	assert.Nil(t, bvg.BaseAmount)
}

func TestCalculateBvgPercentage(t *testing.T) {
	emp := testEmployee()
	pct := dec("7.5")
	emp.BvgDeductionPercentage = &pct

	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("5000")},
	})
	bvg := findDeduction(t, result.Deductions, payroll.DeductionBvg)
	assert.Equal(t, "375.00", money.Format(bvg.Amount))
}

func TestCalculateQst(t *testing.T) {
	emp := testEmployee()
	emp.IsQstSubject = true
	rate := dec("12")
	emp.QstRate = &rate

	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: emp,
		Items:    []CalculationItem{allSubjectItem("5000")},
	})
	qst := findDeduction(t, result.Deductions, payroll.DeductionQst)
	assert.Equal(t, "600.00", money.Format(qst.Amount))
}

func TestCalculateUnknownTypeCode(t *testing.T) {
	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: testEmployee(),
		Items: []CalculationItem{
			allSubjectItem("5000"),
			{TypeCode: "9999", Amount: dec("300"), KnownType: false},
		},
	})

	// Unknown codes count toward gross but toward no deduction base.
	assert.Equal(t, "5300.00", money.Format(result.GrossSalary))
	ahv := findDeduction(t, result.Deductions, payroll.DeductionAhv)
	require.NotNil(t, ahv.BaseAmount)
	assert.Equal(t, "5000.00", money.Format(*ahv.BaseAmount))
	assert.Equal(t, []string{"9999"}, result.UnknownTypeCodes)
}

func TestCalculateManualDeductions(t *testing.T) {
	label := "Verpflegung"
	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: testEmployee(),
		Items:    []CalculationItem{allSubjectItem("5000")},
		ManualDeductions: []payroll.Deduction{
			{Label: &label, Amount: dec("120")},
		},
	})

	other := findDeduction(t, result.Deductions, payroll.DeductionOther)
	assert.Equal(t, "120.00", money.Format(other.Amount))
	assert.Equal(t, "Verpflegung", other.DisplayLabel())
	assert.Equal(t, "440.00", money.Format(result.TotalDeductions))
}

func TestCalculateIdempotent(t *testing.T) {
	in := CalculationInput{
		Company:  testCompany(),
		Employee: testEmployee(),
		Items:    []CalculationItem{allSubjectItem("5000"), allSubjectItem("433.35")},
	}

	first := Calculate(in)
	second := Calculate(in)

	assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
	assert.True(t, first.TotalDeductions.Equal(second.TotalDeductions))
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	require.Equal(t, len(first.Deductions), len(second.Deductions))
	for i := range first.Deductions {
		assert.True(t, first.Deductions[i].Amount.Equal(second.Deductions[i].Amount))
	}
}

func TestCalculateGrossEqualsNetPlusDeductions(t *testing.T) {
	result := Calculate(CalculationInput{
		Company:  testCompany(),
		Employee: testEmployee(),
		Items:    []CalculationItem{allSubjectItem("4333.33")},
	})

	assert.True(t, result.GrossSalary.Equal(result.NetSalary.Add(result.TotalDeductions)))
}

func TestProrateCeiling(t *testing.T) {
	cases := []struct {
		name      string
		this      string
		prior     string
		ceiling   string
		wantBelow string
		wantAbove string
	}{
		{"all below", "5000", "0", "148200", "5000", "0"},
		{"split", "5000", "147000", "148200", "1200", "3800"},
		{"exhausted", "5000", "148200", "148200", "0", "5000"},
		{"prior beyond ceiling", "5000", "200000", "148200", "0", "5000"},
		{"no ceiling configured", "5000", "100000", "0", "5000", "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			below, above := prorateCeiling(dec(c.this), dec(c.prior), dec(c.ceiling))
			assert.True(t, below.Equal(dec(c.wantBelow)), "below = %s", below)
			assert.True(t, above.Equal(dec(c.wantAbove)), "above = %s", above)
		})
	}
}
