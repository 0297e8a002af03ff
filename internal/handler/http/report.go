package http

import (
	"net/http"
	"strconv"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/report"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Yearly(w http.ResponseWriter, r *http.Request)
	EmployeeOverview(w http.ResponseWriter, r *http.Request)
	Lohnausweis(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Monthly implements ReportHandler.
func (h *ReportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	year, ok := intQueryParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := intQueryParam(w, r, "month")
	if !ok {
		return
	}

	result, err := h.reportService.MonthlyReport(r.Context(), report.MonthlyReportRequest{
		Year:  year,
		Month: month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Yearly implements ReportHandler.
func (h *ReportHandlerImpl) Yearly(w http.ResponseWriter, r *http.Request) {
	year, ok := intQueryParam(w, r, "year")
	if !ok {
		return
	}

	result, err := h.reportService.YearlyReport(r.Context(), report.YearlyReportRequest{Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeOverview implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeOverview(w http.ResponseWriter, r *http.Request) {
	year, ok := intQueryParam(w, r, "year")
	if !ok {
		return
	}

	result, err := h.reportService.EmployeeOverview(r.Context(), report.EmployeeOverviewRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Lohnausweis implements ReportHandler.
func (h *ReportHandlerImpl) Lohnausweis(w http.ResponseWriter, r *http.Request) {
	year, ok := intQueryParam(w, r, "year")
	if !ok {
		return
	}

	result, err := h.reportService.Lohnausweis(r.Context(), report.LohnausweisRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func intQueryParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		response.BadRequest(w, "Missing "+name+" parameter", nil)
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		response.BadRequest(w, "Invalid "+name+" parameter", nil)
		return 0, false
	}
	return n, true
}
