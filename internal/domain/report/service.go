package report

import "context"

type ReportService interface {
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
	YearlyReport(ctx context.Context, req YearlyReportRequest) (YearlyReport, error)
	EmployeeOverview(ctx context.Context, req EmployeeOverviewRequest) (EmployeeOverview, error)
	Lohnausweis(ctx context.Context, req LohnausweisRequest) (LohnausweisData, error)
}
