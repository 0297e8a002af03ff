package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/money"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	paymentRepo  payroll.PaymentRepository
	templateRepo payroll.TemplateRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	itemTypeRepo itemtype.ItemTypeRepository
	logger       *slog.Logger
	locks        *employeeYearLocks
}

func NewPayrollService(
	paymentRepo payroll.PaymentRepository,
	templateRepo payroll.TemplateRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	itemTypeRepo itemtype.ItemTypeRepository,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		paymentRepo:  paymentRepo,
		templateRepo: templateRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		itemTypeRepo: itemTypeRepo,
		logger:       logger,
		locks:        newEmployeeYearLocks(),
	}
}

// ========== PAYMENTS ==========

func (s *PayrollServiceImpl) CreatePayment(ctx context.Context, req payroll.CreatePaymentRequest) (payroll.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	periodStart, _ := validator.IsValidDate(req.PeriodStart)
	periodEnd, _ := validator.IsValidDate(req.PeriodEnd)
	paymentDate, _ := validator.IsValidDate(req.PaymentDate)

	// Serialize against concurrent writes for the same employee/year so the
	// ceiling basis read below stays valid until the payment is committed.
	unlock := s.locks.acquire(emp.ID, paymentDate.Year())
	defer unlock()

	items, result, err := s.compute(ctx, emp, paymentDate.Year(), nil, req.Items, req.ManualDeductions)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	p := payroll.Payment{
		ID:              uuid.Must(uuid.NewV7()).String(),
		EmployeeID:      emp.ID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		PaymentDate:     paymentDate,
		PaymentMonth:    paymentMonth(req.PaymentMonth, paymentDate),
		PaymentYear:     paymentDate.Year(),
		GrossSalary:     result.GrossSalary,
		TotalDeductions: result.TotalDeductions,
		NetSalary:       result.NetSalary,
		Notes:           req.Notes,
		Items:           items,
		Deductions:      result.Deductions,
	}
	assignChildIDs(&p)

	created, err := s.paymentRepo.Create(ctx, p)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	return payroll.NewPaymentResponse(created), nil
}

func (s *PayrollServiceImpl) GetPayment(ctx context.Context, id string) (payroll.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}
	return payroll.NewPaymentResponse(p), nil
}

func (s *PayrollServiceImpl) ListPayments(ctx context.Context, q payroll.ListPaymentsQuery) ([]payroll.PaymentResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payroll.NewPaymentResponse(p))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) UpdatePayment(ctx context.Context, id string, req payroll.UpdatePaymentRequest) (payroll.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentResponse{}, err
	}

	existing, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}
	// Early check for a friendly error; the repository re-checks the flag
	// inside the update transaction, which is the authoritative guard.
	if existing.IsLocked {
		return payroll.PaymentResponse{}, payroll.ErrPaymentLocked
	}

	emp, err := s.employeeRepo.GetByID(ctx, existing.EmployeeID)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	periodStart, _ := validator.IsValidDate(req.PeriodStart)
	periodEnd, _ := validator.IsValidDate(req.PeriodEnd)
	paymentDate, _ := validator.IsValidDate(req.PaymentDate)

	unlock := s.locks.acquire(emp.ID, paymentDate.Year())
	defer unlock()

	// The payment under edit is excluded from its own ceiling basis.
	items, result, err := s.compute(ctx, emp, paymentDate.Year(), &id, req.Items, req.ManualDeductions)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	p := payroll.Payment{
		ID:              id,
		EmployeeID:      existing.EmployeeID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		PaymentDate:     paymentDate,
		PaymentMonth:    paymentMonth(req.PaymentMonth, paymentDate),
		PaymentYear:     paymentDate.Year(),
		GrossSalary:     result.GrossSalary,
		TotalDeductions: result.TotalDeductions,
		NetSalary:       result.NetSalary,
		Notes:           req.Notes,
		Items:           items,
		Deductions:      result.Deductions,
	}
	assignChildIDs(&p)

	updated, err := s.paymentRepo.Update(ctx, id, p)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	return payroll.NewPaymentResponse(updated), nil
}

func (s *PayrollServiceImpl) LockPayment(ctx context.Context, id string) error {
	return s.paymentRepo.SetLocked(ctx, id, true)
}

func (s *PayrollServiceImpl) UnlockPayment(ctx context.Context, id string) error {
	return s.paymentRepo.SetLocked(ctx, id, false)
}

func (s *PayrollServiceImpl) DeletePayment(ctx context.Context, id string) error {
	return s.paymentRepo.Delete(ctx, id)
}

// ========== PREVIEW ==========

func (s *PayrollServiceImpl) PreviewDeductions(ctx context.Context, req payroll.PreviewRequest) (payroll.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PreviewResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}

	paymentDate, _ := validator.IsValidDate(req.PaymentDate)

	_, result, err := s.compute(ctx, emp, paymentDate.Year(), req.ExcludePaymentID, req.Items, req.ManualDeductions)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}

	return newPreviewResponse(result), nil
}

// ========== IMPORT VALIDATION ==========

func (s *PayrollServiceImpl) ValidateImport(ctx context.Context, req payroll.ImportValidationRequest) (payroll.ImportValidationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ImportValidationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.ImportValidationResponse{}, err
	}

	paymentDate, _ := validator.IsValidDate(req.PaymentDate)

	_, result, err := s.compute(ctx, emp, paymentDate.Year(), nil, req.Items, req.ManualDeductions)
	if err != nil {
		return payroll.ImportValidationResponse{}, err
	}

	resp := payroll.ImportValidationResponse{
		InTolerance: true,
		Tolerance:   money.Format(payroll.ImportTolerance),
		Computed:    newPreviewResponse(result),
	}

	compare := func(field, imported string, computed decimal.Decimal) {
		importedDec, err := money.ParseAmount(imported)
		if err != nil {
			// Validate has already vetted the strings.
			return
		}
		diff := importedDec.Sub(computed)
		if diff.Abs().GreaterThan(payroll.ImportTolerance) {
			resp.InTolerance = false
			resp.Differences = append(resp.Differences, payroll.ImportDifference{
				Field:      field,
				Imported:   money.Format(importedDec),
				Computed:   money.Format(computed),
				Difference: money.Format(diff),
			})
		}
	}
	compare("gross_salary", req.ImportedGrossSalary, result.GrossSalary)
	compare("total_deductions", req.ImportedTotalDeductions, result.TotalDeductions)
	compare("net_salary", req.ImportedNetSalary, result.NetSalary)

	if !resp.InTolerance {
		s.logger.Warn("imported payslip totals out of tolerance",
			slog.String("employee_id", emp.ID),
			slog.Int("differences", len(resp.Differences)),
		)
	}

	return resp, nil
}

// ========== TEMPLATES ==========

func (s *PayrollServiceImpl) CreateTemplate(ctx context.Context, req payroll.SaveTemplateRequest) (payroll.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.TemplateResponse{}, err
	}

	t := payroll.Template{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Name:    req.Name,
		Payload: []byte(req.Payload),
	}

	created, err := s.templateRepo.Create(ctx, t)
	if err != nil {
		return payroll.TemplateResponse{}, err
	}
	return payroll.NewTemplateResponse(created), nil
}

func (s *PayrollServiceImpl) GetTemplate(ctx context.Context, id string) (payroll.TemplateResponse, error) {
	t, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.TemplateResponse{}, err
	}
	return payroll.NewTemplateResponse(t), nil
}

func (s *PayrollServiceImpl) ListTemplates(ctx context.Context) ([]payroll.TemplateResponse, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, payroll.NewTemplateResponse(t))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) UpdateTemplate(ctx context.Context, id string, req payroll.SaveTemplateRequest) (payroll.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.TemplateResponse{}, err
	}

	t := payroll.Template{
		Name:    req.Name,
		Payload: []byte(req.Payload),
	}
	updated, err := s.templateRepo.Update(ctx, id, t)
	if err != nil {
		return payroll.TemplateResponse{}, err
	}
	return payroll.NewTemplateResponse(updated), nil
}

func (s *PayrollServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}

// ========== HELPERS ==========

// compute parses the wage items, resolves their type flags, reads the
// cumulative ceiling data and runs the calculator. It is the shared path of
// create, update, preview and import validation, so persisted and previewed
// figures can never drift apart.
func (s *PayrollServiceImpl) compute(
	ctx context.Context,
	emp employee.Employee,
	year int,
	excludePaymentID *string,
	itemReqs []payroll.ItemRequest,
	manualReqs []payroll.ManualDeductionRequest,
) ([]payroll.Item, CalculationResult, error) {
	comp, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, CalculationResult{}, err
	}

	types, err := s.itemTypeRepo.List(ctx, false)
	if err != nil {
		return nil, CalculationResult{}, err
	}
	typesByCode := make(map[string]itemtype.ItemType, len(types))
	for _, t := range types {
		typesByCode[t.Code] = t
	}

	items := make([]payroll.Item, 0, len(itemReqs))
	calcItems := make([]CalculationItem, 0, len(itemReqs))
	for i, ir := range itemReqs {
		amount, err := money.ParseAmount(ir.Amount)
		if err != nil {
			return nil, CalculationResult{}, validator.ValidationErrors{{
				Field:   fmt.Sprintf("items[%d].amount", i),
				Message: err.Error(),
			}}
		}
		item := payroll.Item{
			TypeCode:    ir.TypeCode,
			Description: ir.Description,
			Amount:      amount,
		}
		if ir.Hours != nil {
			hours, err := money.ParseRate(*ir.Hours)
			if err != nil {
				return nil, CalculationResult{}, validator.ValidationErrors{{
					Field:   fmt.Sprintf("items[%d].hours", i),
					Message: err.Error(),
				}}
			}
			item.Hours = &hours
		}
		if ir.HourlyRate != nil {
			rate, err := money.ParseAmount(*ir.HourlyRate)
			if err != nil {
				return nil, CalculationResult{}, validator.ValidationErrors{{
					Field:   fmt.Sprintf("items[%d].hourly_rate", i),
					Message: err.Error(),
				}}
			}
			item.HourlyRate = &rate
		}
		items = append(items, item)

		flags, known := typesByCode[ir.TypeCode]
		calcItems = append(calcItems, CalculationItem{
			TypeCode:  ir.TypeCode,
			Amount:    amount,
			Flags:     flags,
			KnownType: known,
		})
	}

	manual := make([]payroll.Deduction, 0, len(manualReqs))
	for i, mr := range manualReqs {
		amount, err := money.ParseAmount(mr.Amount)
		if err != nil {
			return nil, CalculationResult{}, validator.ValidationErrors{{
				Field:   fmt.Sprintf("manual_deductions[%d].amount", i),
				Message: err.Error(),
			}}
		}
		label := mr.Label
		manual = append(manual, payroll.Deduction{
			Kind:        payroll.DeductionOther,
			Label:       &label,
			Description: mr.Description,
			Amount:      amount,
		})
	}

	alvData, err := s.paymentRepo.GetCumulativeAlvData(ctx, emp.ID, year, excludePaymentID)
	if err != nil {
		return nil, CalculationResult{}, err
	}
	nbuData, err := s.paymentRepo.GetCumulativeNbuData(ctx, emp.ID, year, excludePaymentID)
	if err != nil {
		return nil, CalculationResult{}, err
	}

	result := Calculate(CalculationInput{
		Company:             comp,
		Employee:            emp,
		Items:               calcItems,
		PriorAlvSubjectWage: alvData.SubjectAmount,
		PriorNbuSubjectWage: nbuData.SubjectAmount,
		ManualDeductions:    manual,
	})

	for _, code := range result.UnknownTypeCodes {
		s.logger.Warn("payroll item type not found, item counts toward gross only",
			slog.String("type_code", code),
			slog.String("employee_id", emp.ID),
		)
	}

	return items, result, nil
}

func paymentMonth(override *int, paymentDate time.Time) int {
	if override != nil {
		return *override
	}
	return int(paymentDate.Month())
}

func assignChildIDs(p *payroll.Payment) {
	for i := range p.Items {
		p.Items[i].ID = uuid.Must(uuid.NewV7()).String()
		p.Items[i].PaymentID = p.ID
	}
	for i := range p.Deductions {
		p.Deductions[i].ID = uuid.Must(uuid.NewV7()).String()
		p.Deductions[i].PaymentID = p.ID
	}
}

func newPreviewResponse(result CalculationResult) payroll.PreviewResponse {
	resp := payroll.PreviewResponse{
		GrossSalary:     money.Format(result.GrossSalary),
		TotalDeductions: money.Format(result.TotalDeductions),
		NetSalary:       money.Format(result.NetSalary),
		Deductions:      make([]payroll.DeductionResponse, 0, len(result.Deductions)),
	}
	for _, d := range result.Deductions {
		resp.Deductions = append(resp.Deductions, payroll.NewDeductionResponse(d))
	}
	return resp
}
