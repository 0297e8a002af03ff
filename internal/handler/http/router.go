package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	itemTypeHandler ItemTypeHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "swiss-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/company", func(r chi.Router) {
			r.Get("/", companyHandler.Get)
			r.Put("/", companyHandler.Save)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetByID)
				r.Put("/", employeeHandler.Update)
				r.Delete("/", employeeHandler.Delete)
				r.Get("/overview", reportHandler.EmployeeOverview)
				r.Get("/lohnausweis", reportHandler.Lohnausweis)
			})
		})

		r.Route("/item-types", func(r chi.Router) {
			r.Get("/", itemTypeHandler.List)
			r.Post("/", itemTypeHandler.Create)
			r.Get("/code/{code}", itemTypeHandler.GetByCode)
			r.Put("/{id}", itemTypeHandler.Update)
			r.Delete("/{id}", itemTypeHandler.Delete)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", payrollHandler.ListPayments)
			r.Post("/", payrollHandler.CreatePayment)
			r.Post("/preview", payrollHandler.PreviewDeductions)
			r.Post("/validate-import", payrollHandler.ValidateImport)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetPayment)
				r.Patch("/", payrollHandler.UpdatePayment)
				r.Delete("/", payrollHandler.DeletePayment)
				r.Post("/lock", payrollHandler.LockPayment)
				r.Post("/unlock", payrollHandler.UnlockPayment)
			})
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", payrollHandler.ListTemplates)
			r.Post("/", payrollHandler.CreateTemplate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetTemplate)
				r.Put("/", payrollHandler.UpdateTemplate)
				r.Delete("/", payrollHandler.DeleteTemplate)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly", reportHandler.Monthly)
			r.Get("/yearly", reportHandler.Yearly)
		})
	})
	return r
}
