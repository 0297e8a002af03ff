package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreatePayment(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	UpdatePayment(w http.ResponseWriter, r *http.Request)
	LockPayment(w http.ResponseWriter, r *http.Request)
	UnlockPayment(w http.ResponseWriter, r *http.Request)
	DeletePayment(w http.ResponseWriter, r *http.Request)
	PreviewDeductions(w http.ResponseWriter, r *http.Request)
	ValidateImport(w http.ResponseWriter, r *http.Request)
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	GetTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	UpdateTemplate(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// CreatePayment implements PayrollHandler.
func (h *PayrollHandlerImpl) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreatePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment created successfully", result)
}

// GetPayment implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.GetPayment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPayments implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	q := payroll.ListPaymentsQuery{}

	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid year parameter", nil)
			return
		}
		q.Year = &year
	}
	if v := r.URL.Query().Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid month parameter", nil)
			return
		}
		q.Month = &month
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		q.EmployeeID = &v
	}

	result, err := h.payrollService.ListPayments(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdatePayment implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payroll.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpdatePayment(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment updated successfully", result)
}

// LockPayment implements PayrollHandler.
func (h *PayrollHandlerImpl) LockPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.LockPayment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment locked", nil)
}

// UnlockPayment implements PayrollHandler.
func (h *PayrollHandlerImpl) UnlockPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.UnlockPayment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment unlocked", nil)
}

// DeletePayment implements PayrollHandler.
func (h *PayrollHandlerImpl) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.DeletePayment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment deleted successfully", nil)
}

// PreviewDeductions implements PayrollHandler.
func (h *PayrollHandlerImpl) PreviewDeductions(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Preview deductions decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.PreviewDeductions(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ValidateImport implements PayrollHandler.
func (h *PayrollHandlerImpl) ValidateImport(w http.ResponseWriter, r *http.Request) {
	var req payroll.ImportValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Validate import decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.ValidateImport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateTemplate implements PayrollHandler.
func (h *PayrollHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req payroll.SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create template decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreateTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Template created successfully", result)
}

// GetTemplate implements PayrollHandler.
func (h *PayrollHandlerImpl) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.GetTemplate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTemplates implements PayrollHandler.
func (h *PayrollHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateTemplate implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payroll.SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update template decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpdateTemplate(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template updated successfully", result)
}

// DeleteTemplate implements PayrollHandler.
func (h *PayrollHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.DeleteTemplate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template deleted successfully", nil)
}
