package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/handler/http/response"
)

type CompanyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Get implements CompanyHandler.
func (h *CompanyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Save implements CompanyHandler.
func (h *CompanyHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req company.SaveCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Save company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.companyService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company saved successfully", result)
}
