package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/duepay/payables/internal/adapter/http/dto"
	"github.com/duepay/payables/internal/domain"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	ListOpenOccurrences(ctx context.Context, tenantID string, asOf time.Time) ([]*domain.Occurrence, error)
	GetSchedule(ctx context.Context, tenantID string, asOf time.Time) (domain.Schedule, error)
}

// ScheduleHandler serves the derived occurrence schedule.
type ScheduleHandler struct {
	scheduleUC ScheduleService
	now        func() time.Time
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC, now: time.Now}
}

// asOf resolves the reference date: the as_of query parameter when present,
// the current time otherwise.
func (h *ScheduleHandler) asOf(r *http.Request) (time.Time, error) {
	val := r.URL.Query().Get("as_of")
	if val == "" {
		return h.now(), nil
	}

	return time.Parse("2006-01-02", val)
}

// List returns the flat ordered occurrence list.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	asOf, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date", err.Error())
		return
	}

	occurrences, err := h.scheduleUC.ListOpenOccurrences(r.Context(), tenant, asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to expand schedule", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OccurrencesFromDomain(occurrences))
}

// Grouped returns the occurrences split into overdue, upcoming and paid.
func (h *ScheduleHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	asOf, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date", err.Error())
		return
	}

	schedule, err := h.scheduleUC.GetSchedule(r.Context(), tenant, asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to expand schedule", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}
