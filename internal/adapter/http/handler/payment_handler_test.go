package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duepay/payables/internal/adapter/http/dto"
	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/usecase"
)

type paymentServiceStub struct {
	recordFn  func(ctx context.Context, tenantID string, input usecase.RecordPaymentInput) (*domain.PaymentRecord, error)
	historyFn func(ctx context.Context, tenantID string, filter usecase.HistoryFilter) ([]*usecase.HistoryEntry, error)
}

func (s *paymentServiceStub) RecordPayment(ctx context.Context, tenantID string, input usecase.RecordPaymentInput) (*domain.PaymentRecord, error) {
	return s.recordFn(ctx, tenantID, input)
}

func (s *paymentServiceStub) ListHistory(ctx context.Context, tenantID string, filter usecase.HistoryFilter) ([]*usecase.HistoryEntry, error) {
	return s.historyFn(ctx, tenantID, filter)
}

func TestPaymentHandler_Record_Success(t *testing.T) {
	var captured usecase.RecordPaymentInput

	h := NewPaymentHandler(&paymentServiceStub{
		recordFn: func(ctx context.Context, tenantID string, input usecase.RecordPaymentInput) (*domain.PaymentRecord, error) {
			captured = input
			return &domain.PaymentRecord{
				ID:             "pay-1",
				AccountID:      input.AccountID,
				PaidMonth:      input.Period,
				PaidDate:       time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC),
				Amount:         decimal.NewFromInt(1000),
				InvoiceNumbers: input.InvoiceNumbers,
				Recipient:      input.Recipient,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.RecordPaymentRequest{
		Period:         "2025-03",
		InvoiceNumbers: []string{"NF-100"},
		Recipient:      "Acme Utilities",
	})

	req := withTenant(httptest.NewRequest(http.MethodPost, "/accounts/acc-1/payments", bytes.NewReader(body)))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AccountID != "acc-1" {
		t.Errorf("expected account from URL, got %q", captured.AccountID)
	}
	if captured.Period != (domain.Period{Year: 2025, Month: time.March}) {
		t.Errorf("unexpected period: %v", captured.Period)
	}

	var resp dto.PaymentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PaidMonth != "2025-03" {
		t.Errorf("expected paid_month 2025-03, got %q", resp.PaidMonth)
	}
}

func TestPaymentHandler_Record_DuplicateConflict(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{
		recordFn: func(ctx context.Context, tenantID string, input usecase.RecordPaymentInput) (*domain.PaymentRecord, error) {
			return nil, domain.ErrPaymentAlreadyRecorded
		},
	})

	body, _ := json.Marshal(dto.RecordPaymentRequest{
		Period:         "2025-03",
		InvoiceNumbers: []string{"NF-100"},
		Recipient:      "Acme",
	})

	req := withTenant(httptest.NewRequest(http.MethodPost, "/accounts/acc-1/payments", bytes.NewReader(body)))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestPaymentHandler_Record_BadPeriod(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{})

	body, _ := json.Marshal(dto.RecordPaymentRequest{
		Period:         "March 2025",
		InvoiceNumbers: []string{"NF-100"},
		Recipient:      "Acme",
	})

	req := withTenant(httptest.NewRequest(http.MethodPost, "/accounts/acc-1/payments", bytes.NewReader(body)))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentHandler_History_Filters(t *testing.T) {
	var captured usecase.HistoryFilter

	h := NewPaymentHandler(&paymentServiceStub{
		historyFn: func(ctx context.Context, tenantID string, filter usecase.HistoryFilter) ([]*usecase.HistoryEntry, error) {
			captured = filter
			return nil, nil
		},
	})

	url := "/payments?supplier_id=sup-1&paid_from=2025-01-01&paid_to=2025-03-31"
	req := withTenant(httptest.NewRequest(http.MethodGet, url, nil))
	rec := httptest.NewRecorder()

	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.SupplierID != "sup-1" {
		t.Errorf("expected supplier filter, got %q", captured.SupplierID)
	}
	if captured.PaidFrom == nil || !captured.PaidFrom.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected paid_from: %v", captured.PaidFrom)
	}
	if captured.PaidTo == nil {
		t.Error("expected paid_to to be set")
	}
}

func TestPaymentHandler_History_BadDate(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{})

	req := withTenant(httptest.NewRequest(http.MethodGet, "/payments?paid_from=notadate", nil))
	rec := httptest.NewRecorder()

	h.History(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
