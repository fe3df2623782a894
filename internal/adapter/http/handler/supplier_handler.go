package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duepay/payables/internal/adapter/http/dto"
	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/usecase"
)

// SupplierService defines the behavior needed by SupplierHandler.
type SupplierService interface {
	CreateSupplier(ctx context.Context, tenantID string, input usecase.CreateSupplierInput) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, tenantID, id string, input usecase.UpdateSupplierInput) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, tenantID, id string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, tenantID string) ([]*domain.Supplier, error)
}

// SupplierHandler handles supplier-related HTTP requests.
type SupplierHandler struct {
	supplierUC SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierUC SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierUC: supplierUC}
}

// Create creates a new supplier.
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	var req dto.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	supplier, err := h.supplierUC.CreateSupplier(r.Context(), tenant, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SupplierFromDomain(supplier))
}

// Update edits an existing supplier.
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	var req dto.UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	supplier, err := h.supplierUC.UpdateSupplier(r.Context(), tenant, id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SupplierFromDomain(supplier))
}

// Get retrieves a supplier by ID.
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	supplier, err := h.supplierUC.GetSupplier(r.Context(), tenant, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SupplierFromDomain(supplier))
}

// List lists the tenant's suppliers.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	suppliers, err := h.supplierUC.ListSuppliers(r.Context(), tenant)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list suppliers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SuppliersFromDomain(suppliers))
}
