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

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	RecordPayment(ctx context.Context, tenantID string, input usecase.RecordPaymentInput) (*domain.PaymentRecord, error)
	ListHistory(ctx context.Context, tenantID string, filter usecase.HistoryFilter) ([]*usecase.HistoryEntry, error)
}

// PaymentHandler handles settlement HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Record settles one occurrence of an account.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(accountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	record, err := h.paymentUC.RecordPayment(r.Context(), tenant, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(record))
}

// History lists settled occurrences, filtered by supplier and date ranges.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	filter := usecase.HistoryFilter{
		SupplierID: r.URL.Query().Get("supplier_id"),
	}

	var err error
	if filter.PaidFrom, err = parseDateQuery(r, "paid_from"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid paid_from date", err.Error())
		return
	}
	if filter.PaidTo, err = parseDateQuery(r, "paid_to"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid paid_to date", err.Error())
		return
	}
	if filter.DueFrom, err = parseDateQuery(r, "due_from"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid due_from date", err.Error())
		return
	}
	if filter.DueTo, err = parseDateQuery(r, "due_to"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid due_to date", err.Error())
		return
	}

	entries, err := h.paymentUC.ListHistory(r.Context(), tenant, filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payment history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromUseCase(entries))
}
