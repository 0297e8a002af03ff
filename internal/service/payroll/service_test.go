package payroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing the service tests. They mirror the
// persistence contract: Update refuses locked payments, the cumulative
// queries sum stored base amounts and honor the exclude ID.

type fakePaymentRepo struct {
	payments map[string]payroll.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]payroll.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, p payroll.Payment) (payroll.Payment, error) {
	r.payments[p.ID] = p
	return p, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id string) (payroll.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) List(_ context.Context, q payroll.ListPaymentsQuery) ([]payroll.Payment, error) {
	result := make([]payroll.Payment, 0)
	for _, p := range r.payments {
		if q.Year != nil && p.PaymentYear != *q.Year {
			continue
		}
		if q.Month != nil && p.PaymentMonth != *q.Month {
			continue
		}
		if q.EmployeeID != nil && p.EmployeeID != *q.EmployeeID {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, id string, p payroll.Payment) (payroll.Payment, error) {
	existing, ok := r.payments[id]
	if !ok {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	if existing.IsLocked {
		return payroll.Payment{}, payroll.ErrPaymentLocked
	}
	p.ID = id
	r.payments[id] = p
	return p, nil
}

func (r *fakePaymentRepo) SetLocked(_ context.Context, id string, locked bool) error {
	p, ok := r.payments[id]
	if !ok {
		return payroll.ErrPaymentNotFound
	}
	p.IsLocked = locked
	r.payments[id] = p
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id string) error {
	p, ok := r.payments[id]
	if !ok {
		return payroll.ErrPaymentNotFound
	}
	if p.IsLocked {
		return payroll.ErrPaymentLocked
	}
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) cumulative(kind payroll.DeductionKind, employeeID string, year int, excludeID *string) payroll.CumulativeData {
	var data payroll.CumulativeData
	for _, p := range r.payments {
		if p.EmployeeID != employeeID || p.PaymentYear != year {
			continue
		}
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		counted := false
		for _, d := range p.Deductions {
			if d.Kind != kind {
				continue
			}
			if d.BaseAmount != nil {
				data.SubjectAmount = data.SubjectAmount.Add(*d.BaseAmount)
			}
			data.DeductionAmount = data.DeductionAmount.Add(d.Amount)
			counted = true
		}
		if counted {
			data.PaymentsCount++
		}
	}
	return data
}

func (r *fakePaymentRepo) GetCumulativeAlvData(_ context.Context, employeeID string, year int, excludeID *string) (payroll.CumulativeData, error) {
	return r.cumulative(payroll.DeductionAlv, employeeID, year, excludeID), nil
}

func (r *fakePaymentRepo) GetCumulativeNbuData(_ context.Context, employeeID string, year int, excludeID *string) (payroll.CumulativeData, error) {
	return r.cumulative(payroll.DeductionNbu, employeeID, year, excludeID), nil
}

type fakeTemplateRepo struct {
	templates map[string]payroll.Template
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]payroll.Template)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, t payroll.Template) (payroll.Template, error) {
	for _, existing := range r.templates {
		if existing.Name == t.Name {
			return payroll.Template{}, payroll.ErrTemplateNameExists
		}
	}
	r.templates[t.ID] = t
	return t, nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (payroll.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return payroll.Template{}, payroll.ErrTemplateNotFound
	}
	return t, nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]payroll.Template, error) {
	result := make([]payroll.Template, 0, len(r.templates))
	for _, t := range r.templates {
		result = append(result, t)
	}
	return result, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, id string, t payroll.Template) (payroll.Template, error) {
	if _, ok := r.templates[id]; !ok {
		return payroll.Template{}, payroll.ErrTemplateNotFound
	}
	t.ID = id
	r.templates[id] = t
	return t, nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.templates[id]; !ok {
		return payroll.ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ bool) ([]employee.Employee, error) {
	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		result = append(result, e)
	}
	return result, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, id string, e employee.Employee) (employee.Employee, error) {
	e.ID = id
	r.employees[id] = e
	return e, nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

type fakeCompanyRepo struct {
	company company.Company
}

func (r *fakeCompanyRepo) Get(_ context.Context) (company.Company, error) {
	return r.company, nil
}

func (r *fakeCompanyRepo) Save(_ context.Context, c company.Company) (company.Company, error) {
	r.company = c
	return c, nil
}

type fakeItemTypeRepo struct {
	types []itemtype.ItemType
}

func (r *fakeItemTypeRepo) Create(_ context.Context, t itemtype.ItemType) (itemtype.ItemType, error) {
	r.types = append(r.types, t)
	return t, nil
}

func (r *fakeItemTypeRepo) GetByCode(_ context.Context, code string) (itemtype.ItemType, error) {
	for _, t := range r.types {
		if t.Code == code {
			return t, nil
		}
	}
	return itemtype.ItemType{}, itemtype.ErrItemTypeNotFound
}

func (r *fakeItemTypeRepo) List(_ context.Context, _ bool) ([]itemtype.ItemType, error) {
	return r.types, nil
}

func (r *fakeItemTypeRepo) Update(_ context.Context, id string, t itemtype.ItemType) (itemtype.ItemType, error) {
	t.ID = id
	return t, nil
}

func (r *fakeItemTypeRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *fakeItemTypeRepo) Count(_ context.Context) (int, error) {
	return len(r.types), nil
}

func newTestService(t *testing.T) (payroll.PayrollService, *fakePaymentRepo) {
	t.Helper()

	paymentRepo := newFakePaymentRepo()
	svc := NewPayrollService(
		paymentRepo,
		newFakeTemplateRepo(),
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"e1": {
				ID:        "e1",
				FirstName: "Anna",
				LastName:  "Muster",
				Gender:    employee.GenderFemale,
				HasAhv:    true,
				HasAlv:    true,
				IsActive:  true,
			},
		}},
		&fakeCompanyRepo{company: company.Company{
			ID:                  "c1",
			Name:                "Muster AG",
			AhvEmployeeRate:     decimal.RequireFromString("5.3"),
			AhvRentnerAllowance: decimal.RequireFromString("1400"),
			AlvEmployeeRate:     decimal.RequireFromString("1.1"),
			AlvMaxIncomePerYear: decimal.RequireFromString("148200"),
			Alv2EmployeeRate:    decimal.RequireFromString("0.5"),
			NbuMaleRate:         decimal.RequireFromString("1.2"),
			NbuFemaleRate:       decimal.RequireFromString("1.1"),
			NbuMaxIncomePerYear: decimal.RequireFromString("148200"),
		}},
		&fakeItemTypeRepo{types: []itemtype.ItemType{
			{
				ID: "t1", Code: "1000", Name: "Monatslohn",
				SubjectToAhv: true, SubjectToAlv: true, SubjectToNbu: true,
				SubjectToBvg: true, SubjectToQst: true, IsActive: true,
			},
		}},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return svc, paymentRepo
}

func monthlyRequest() payroll.CreatePaymentRequest {
	return payroll.CreatePaymentRequest{
		EmployeeID:  "e1",
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-31",
		PaymentDate: "2025-03-25",
		Items: []payroll.ItemRequest{
			{TypeCode: "1000", Amount: "5000"},
		},
	}
}

func TestCreatePaymentComputesTotalsServerSide(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.CreatePayment(context.Background(), monthlyRequest())
	require.NoError(t, err)

	assert.Equal(t, "5000.00", resp.GrossSalary)
	assert.Equal(t, "320.00", resp.TotalDeductions)
	assert.Equal(t, "4680.00", resp.NetSalary)
	assert.Equal(t, 3, resp.PaymentMonth)
	assert.Equal(t, 2025, resp.PaymentYear)
	require.Len(t, resp.Deductions, 2)
	assert.Equal(t, "AHV", resp.Deductions[0].Kind)
}

func TestCreatePaymentMonthOverride(t *testing.T) {
	svc, _ := newTestService(t)

	req := monthlyRequest()
	month := 13
	req.PaymentMonth = &month
	req.PeriodStart = "2025-12-01"
	req.PeriodEnd = "2025-12-31"
	req.PaymentDate = "2025-12-20"

	resp, err := svc.CreatePayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 13, resp.PaymentMonth)
}

func TestCreatePaymentUnknownEmployee(t *testing.T) {
	svc, _ := newTestService(t)

	req := monthlyRequest()
	req.EmployeeID = "missing"
	_, err := svc.CreatePayment(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, _ := newTestService(t)

	req := monthlyRequest()
	req.Items[0].Amount = "12.345"
	_, err := svc.CreatePayment(context.Background(), req)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "items[0].amount")
}

func TestUpdateLockedPaymentRejected(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.CreatePayment(context.Background(), monthlyRequest())
	require.NoError(t, err)
	require.NoError(t, svc.LockPayment(context.Background(), created.ID))

	_, err = svc.UpdatePayment(context.Background(), created.ID, payroll.UpdatePaymentRequest{
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-31",
		PaymentDate: "2025-03-25",
		Items: []payroll.ItemRequest{
			{TypeCode: "1000", Amount: "6000"},
		},
	})
	assert.ErrorIs(t, err, payroll.ErrPaymentLocked)

	// The stored payment is untouched.
	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "5000", stored.GrossSalary.String())
}

func TestDeleteLockedPaymentRejected(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreatePayment(context.Background(), monthlyRequest())
	require.NoError(t, err)
	require.NoError(t, svc.LockPayment(context.Background(), created.ID))

	err = svc.DeletePayment(context.Background(), created.ID)
	assert.ErrorIs(t, err, payroll.ErrPaymentLocked)

	require.NoError(t, svc.UnlockPayment(context.Background(), created.ID))
	assert.NoError(t, svc.DeletePayment(context.Background(), created.ID))
}

func TestUpdateExcludesOwnCeilingBasis(t *testing.T) {
	svc, _ := newTestService(t)

	// First payment consumes 145000 of the 148200 ALV ceiling.
	req := monthlyRequest()
	req.Items[0].Amount = "145000"
	first, err := svc.CreatePayment(context.Background(), req)
	require.NoError(t, err)

	// Editing the same payment must not count its own 145000 again: the
	// full 5000 replacement wage stays below the ceiling.
	updated, err := svc.UpdatePayment(context.Background(), first.ID, payroll.UpdatePaymentRequest{
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-31",
		PaymentDate: "2025-03-25",
		Items: []payroll.ItemRequest{
			{TypeCode: "1000", Amount: "5000"},
		},
	})
	require.NoError(t, err)

	for _, d := range updated.Deductions {
		if d.Kind == "ALV" {
			assert.Equal(t, "55.00", d.Amount)
			return
		}
	}
	t.Fatal("ALV deduction missing")
}

func TestSecondPaymentSeesCumulativeCeiling(t *testing.T) {
	svc, _ := newTestService(t)

	req := monthlyRequest()
	req.Items[0].Amount = "147000"
	_, err := svc.CreatePayment(context.Background(), req)
	require.NoError(t, err)

	// 1200 headroom left: 5000 splits into 13.20 tier 1 and 19.00 tier 2.
	second := monthlyRequest()
	second.PeriodStart = "2025-04-01"
	second.PeriodEnd = "2025-04-30"
	second.PaymentDate = "2025-04-25"
	resp, err := svc.CreatePayment(context.Background(), second)
	require.NoError(t, err)

	amounts := map[string]string{}
	for _, d := range resp.Deductions {
		amounts[d.Kind] = d.Amount
	}
	assert.Equal(t, "13.20", amounts["ALV"])
	assert.Equal(t, "19.00", amounts["ALV2"])
}

func TestPreviewDoesNotPersist(t *testing.T) {
	svc, repo := newTestService(t)

	resp, err := svc.PreviewDeductions(context.Background(), payroll.PreviewRequest{
		EmployeeID:  "e1",
		PaymentDate: "2025-03-25",
		Items: []payroll.ItemRequest{
			{TypeCode: "1000", Amount: "5000"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "4680.00", resp.NetSalary)
	assert.Empty(t, repo.payments)
}

func TestValidateImportWithinTolerance(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ValidateImport(context.Background(), payroll.ImportValidationRequest{
		EmployeeID:  "e1",
		PaymentDate: "2025-03-25",
		Items: []payroll.ItemRequest{
			{TypeCode: "1000", Amount: "5000"},
		},
		// 4 Rappen off: inside the 0.05 tolerance.
		ImportedGrossSalary:     "5000.00",
		ImportedTotalDeductions: "320.04",
		ImportedNetSalary:       "4679.96",
	})
	require.NoError(t, err)
	assert.True(t, resp.InTolerance)
	assert.Empty(t, resp.Differences)
}

func TestValidateImportOutOfTolerance(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ValidateImport(context.Background(), payroll.ImportValidationRequest{
		EmployeeID:  "e1",
		PaymentDate: "2025-03-25",
		Items: []payroll.ItemRequest{
			{TypeCode: "1000", Amount: "5000"},
		},
		ImportedGrossSalary:     "5000.00",
		ImportedTotalDeductions: "310.00",
		ImportedNetSalary:       "4690.00",
	})
	require.NoError(t, err)
	assert.False(t, resp.InTolerance)
	require.Len(t, resp.Differences, 2)
	assert.Equal(t, "total_deductions", resp.Differences[0].Field)
}

func TestCreatePaymentUnknownTypeCode(t *testing.T) {
	svc, _ := newTestService(t)

	req := monthlyRequest()
	req.Items = append(req.Items, payroll.ItemRequest{TypeCode: "9999", Amount: "300"})

	resp, err := svc.CreatePayment(context.Background(), req)
	require.NoError(t, err)

	// Unknown codes count toward gross only.
	assert.Equal(t, "5300.00", resp.GrossSalary)
	assert.Equal(t, "320.00", resp.TotalDeductions)
}

func TestTemplateLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, payroll.SaveTemplateRequest{
		Name:    "Monatslohn Standard",
		Payload: []byte(`{"items":[{"type_code":"1000","amount":"5000"}]}`),
	})
	require.NoError(t, err)

	_, err = svc.CreateTemplate(ctx, payroll.SaveTemplateRequest{
		Name:    "Monatslohn Standard",
		Payload: []byte(`{}`),
	})
	assert.ErrorIs(t, err, payroll.ErrTemplateNameExists)

	_, err = svc.CreateTemplate(ctx, payroll.SaveTemplateRequest{
		Name:    "Broken",
		Payload: []byte(`{not json`),
	})
	var errs validator.ValidationErrors
	assert.True(t, errors.As(err, &errs))

	got, err := svc.GetTemplate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monatslohn Standard", got.Name)

	require.NoError(t, svc.DeleteTemplate(ctx, created.ID))
	_, err = svc.GetTemplate(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrTemplateNotFound)
}
