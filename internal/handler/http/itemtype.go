package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ItemTypeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByCode(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ItemTypeHandlerImpl struct {
	itemTypeService itemtype.ItemTypeService
}

func NewItemTypeHandler(itemTypeService itemtype.ItemTypeService) ItemTypeHandler {
	return &ItemTypeHandlerImpl{itemTypeService: itemTypeService}
}

// Create implements ItemTypeHandler.
func (h *ItemTypeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req itemtype.SaveItemTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create item type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.itemTypeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Item type created successfully", result)
}

// GetByCode implements ItemTypeHandler.
func (h *ItemTypeHandlerImpl) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	result, err := h.itemTypeService.GetByCode(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ItemTypeHandler.
func (h *ItemTypeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.itemTypeService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements ItemTypeHandler.
func (h *ItemTypeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req itemtype.SaveItemTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update item type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.itemTypeService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item type updated successfully", result)
}

// Delete implements ItemTypeHandler.
func (h *ItemTypeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.itemTypeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item type deleted successfully", nil)
}
