package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/config"
	appHTTP "github.com/Ricsst/swiss-payroll-system-sub000/internal/handler/http"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/database"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/repository/postgresql"
	companyService "github.com/Ricsst/swiss-payroll-system-sub000/internal/service/company"
	employeeService "github.com/Ricsst/swiss-payroll-system-sub000/internal/service/employee"
	itemTypeService "github.com/Ricsst/swiss-payroll-system-sub000/internal/service/itemtype"
	payrollService "github.com/Ricsst/swiss-payroll-system-sub000/internal/service/payroll"
	reportService "github.com/Ricsst/swiss-payroll-system-sub000/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "swiss-payroll"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	itemTypeRepo := postgresql.NewItemTypeRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	templateRepo := postgresql.NewTemplateRepository(db)

	itemTypeSvc := itemTypeService.NewItemTypeService(itemTypeRepo, logger)
	companySvc := companyService.NewCompanyService(companyRepo, itemTypeSvc, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, logger)
	payrollSvc := payrollService.NewPayrollService(paymentRepo, templateRepo, employeeRepo, companyRepo, itemTypeRepo, logger)
	reportSvc := reportService.NewReportService(paymentRepo, employeeRepo, companyRepo, itemTypeRepo, logger)

	router := appHTTP.NewRouter(
		appHTTP.NewCompanyHandler(companySvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewItemTypeHandler(itemTypeSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", slog.String("addr", addr), slog.String("env", cfg.App.Env))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
