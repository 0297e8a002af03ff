package report

import (
	"context"
	"log/slog"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/report"
)

type ReportServiceImpl struct {
	paymentRepo  payroll.PaymentRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	itemTypeRepo itemtype.ItemTypeRepository
	logger       *slog.Logger
}

func NewReportService(
	paymentRepo payroll.PaymentRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	itemTypeRepo itemtype.ItemTypeRepository,
	logger *slog.Logger,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		itemTypeRepo: itemTypeRepo,
		logger:       logger,
	}
}

func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	payments, err := s.paymentRepo.List(ctx, payroll.ListPaymentsQuery{
		Year:  &req.Year,
		Month: &req.Month,
	})
	if err != nil {
		return report.MonthlyReport{}, err
	}

	names, err := s.typeNames(ctx)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	return buildMonthlyReport(req.Year, req.Month, payments, names), nil
}

func (s *ReportServiceImpl) YearlyReport(ctx context.Context, req report.YearlyReportRequest) (report.YearlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.YearlyReport{}, err
	}

	payments, err := s.paymentRepo.List(ctx, payroll.ListPaymentsQuery{Year: &req.Year})
	if err != nil {
		return report.YearlyReport{}, err
	}

	employees, err := s.employeeRepo.List(ctx, false)
	if err != nil {
		return report.YearlyReport{}, err
	}

	types, err := s.typesByCode(ctx)
	if err != nil {
		return report.YearlyReport{}, err
	}

	return buildYearlyReport(req.Year, payments, employees, types), nil
}

func (s *ReportServiceImpl) EmployeeOverview(ctx context.Context, req report.EmployeeOverviewRequest) (report.EmployeeOverview, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeOverview{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.EmployeeOverview{}, err
	}

	payments, err := s.paymentRepo.List(ctx, payroll.ListPaymentsQuery{
		Year:       &req.Year,
		EmployeeID: &req.EmployeeID,
	})
	if err != nil {
		return report.EmployeeOverview{}, err
	}

	names, err := s.typeNames(ctx)
	if err != nil {
		return report.EmployeeOverview{}, err
	}

	return buildEmployeeOverview(emp, req.Year, payments, names), nil
}

func (s *ReportServiceImpl) Lohnausweis(ctx context.Context, req report.LohnausweisRequest) (report.LohnausweisData, error) {
	if err := req.Validate(); err != nil {
		return report.LohnausweisData{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.LohnausweisData{}, err
	}

	comp, err := s.companyRepo.Get(ctx)
	if err != nil {
		return report.LohnausweisData{}, err
	}

	payments, err := s.paymentRepo.List(ctx, payroll.ListPaymentsQuery{
		Year:       &req.Year,
		EmployeeID: &req.EmployeeID,
	})
	if err != nil {
		return report.LohnausweisData{}, err
	}

	return buildLohnausweis(emp, comp, req.Year, payments), nil
}

func (s *ReportServiceImpl) typeNames(ctx context.Context) (map[string]string, error) {
	types, err := s.itemTypeRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(types))
	for _, t := range types {
		names[t.Code] = t.Name
	}
	return names, nil
}

func (s *ReportServiceImpl) typesByCode(ctx context.Context) (map[string]itemtype.ItemType, error) {
	types, err := s.itemTypeRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]itemtype.ItemType, len(types))
	for _, t := range types {
		byCode[t.Code] = t
	}
	return byCode, nil
}
