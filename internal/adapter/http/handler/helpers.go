package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/duepay/payables/internal/adapter/http/dto"
	"github.com/duepay/payables/internal/adapter/http/middleware"
	"github.com/duepay/payables/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSupplierNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPaymentAlreadyRecorded):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSupplierName),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDayOfMonth),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrInvalidEndDate),
		errors.Is(err, domain.ErrInvalidCostCenters),
		errors.Is(err, domain.ErrInvalidCostCenterPct),
		errors.Is(err, domain.ErrEmptyInvoiceNumbers),
		errors.Is(err, domain.ErrEmptyRecipient),
		errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// tenantID extracts the tenant set by the tenant middleware; it writes a 500
// when a route was wired outside the tenant scope by mistake.
func tenantID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "tenant missing from context", "")
		return "", false
	}

	return id, true
}

// parseDateQuery parses a "2006-01-02" query parameter, nil when absent.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
