package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/infrastructure/metrics"
)

// PaymentUseCase handles settlement recording and payment history.
type PaymentUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	paymentRepo PaymentRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
	metrics     *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	paymentRepo PaymentRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
		metrics:     m,
	}
}

// RecordPaymentInput represents input for settling one occurrence.
type RecordPaymentInput struct {
	AccountID      string
	Period         domain.Period
	InvoiceNumbers []string
	Recipient      string
	PaidDate       time.Time
}

// RecordPayment settles the (account, period) occurrence. The cost-center
// snapshot is frozen from the account's current allocation; later account
// edits never touch it. A record that already exists for the period surfaces
// as domain.ErrPaymentAlreadyRecorded — the store's uniqueness constraint is
// the final arbiter, the pre-check only gives a friendlier fast path.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, tenantID string, input RecordPaymentInput) (*domain.PaymentRecord, error) {
	invoiceNumbers := trimNonEmpty(input.InvoiceNumbers)
	if len(invoiceNumbers) == 0 {
		return nil, domain.ErrEmptyInvoiceNumbers
	}

	if strings.TrimSpace(input.Recipient) == "" {
		return nil, domain.ErrEmptyRecipient
	}

	account, err := uc.accountRepo.GetByID(ctx, tenantID, input.AccountID)
	if err != nil {
		return nil, err
	}

	_, err = uc.paymentRepo.GetByAccountAndPeriod(ctx, tenantID, input.AccountID, input.Period)
	switch {
	case err == nil:
		uc.countConflict()
		return nil, domain.ErrPaymentAlreadyRecorded
	case !errors.Is(err, domain.ErrPaymentNotFound):
		return nil, err
	}

	now := time.Now().UTC()

	paidDate := input.PaidDate
	if paidDate.IsZero() {
		paidDate = now
	}

	record := &domain.PaymentRecord{
		ID:                  uc.idGen.Generate(),
		TenantID:            tenantID,
		AccountID:           account.ID,
		PaidMonth:           input.Period,
		PaidDate:            domain.DateOnly(paidDate),
		Amount:              account.Amount,
		InvoiceNumbers:      invoiceNumbers,
		Recipient:           strings.TrimSpace(input.Recipient),
		CostCentersSnapshot: domain.SnapshotCostCenters(account.CostCenters, account.Amount),
		CreatedAt:           now,
	}

	insert := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.paymentRepo.Create(ctx, tx, record); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, insert)
	} else {
		err = insert()
	}

	if err != nil {
		if errors.Is(err, domain.ErrPaymentAlreadyRecorded) {
			uc.countConflict()
		}

		return nil, err
	}

	uc.audit(ctx, tenantID, record)
	uc.invalidateSchedule(ctx, tenantID)

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.Inc()
	}

	return record, nil
}

// HistoryFilter narrows the settled-occurrence history view.
type HistoryFilter struct {
	SupplierID string
	PaidFrom   *time.Time
	PaidTo     *time.Time
	DueFrom    *time.Time
	DueTo      *time.Time
}

// HistoryEntry is one settled occurrence joined with its account context.
// The cost-center snapshot comes from the payment record, never from the
// account's current allocation.
type HistoryEntry struct {
	Record      *domain.PaymentRecord
	Description string
	SupplierID  string
	DueDate     time.Time
}

// ListHistory returns settled occurrences, most recent payment first. The
// due date shown for each entry places the account's due day in the paid
// month, clamped to the month's length.
func (uc *PaymentUseCase) ListHistory(ctx context.Context, tenantID string, filter HistoryFilter) ([]*HistoryEntry, error) {
	records, err := uc.paymentRepo.List(ctx, tenantID, PaymentFilter{
		PaidFrom: filter.PaidFrom,
		PaidTo:   filter.PaidTo,
	})
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, nil
	}

	accounts, err := uc.accountRepo.ListByIDs(ctx, tenantID, uniqueAccountIDs(records))
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	var entries []*HistoryEntry
	for _, record := range records {
		account := accountMap[record.AccountID]
		if account == nil {
			continue
		}

		if filter.SupplierID != "" && account.SupplierID != filter.SupplierID {
			continue
		}

		dueDate := historyDueDate(record.PaidMonth, account.DueDay)
		if filter.DueFrom != nil && dueDate.Before(domain.DateOnly(*filter.DueFrom)) {
			continue
		}
		if filter.DueTo != nil && dueDate.After(domain.DateOnly(*filter.DueTo)) {
			continue
		}

		entries = append(entries, &HistoryEntry{
			Record:      record,
			Description: account.Description,
			SupplierID:  account.SupplierID,
			DueDate:     dueDate,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Record.PaidDate.After(entries[j].Record.PaidDate)
	})

	return entries, nil
}

// historyDueDate places the due day inside the paid month. The history view
// keeps the original behavior of not applying the issue-day roll-over.
func historyDueDate(period domain.Period, dueDay int) time.Time {
	day := dueDay
	if max := period.Days(); day > max {
		day = max
	}

	return time.Date(period.Year, period.Month, day, 0, 0, 0, 0, time.UTC)
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func uniqueAccountIDs(records []*domain.PaymentRecord) []string {
	seen := make(map[string]bool, len(records))

	var ids []string
	for _, r := range records {
		if !seen[r.AccountID] {
			seen[r.AccountID] = true
			ids = append(ids, r.AccountID)
		}
	}

	return ids
}

func (uc *PaymentUseCase) countConflict() {
	if uc.metrics != nil {
		uc.metrics.PaymentConflicts.Inc()
	}
}

func (uc *PaymentUseCase) invalidateSchedule(ctx context.Context, tenantID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, scheduleCacheKey(tenantID))
}

func (uc *PaymentUseCase) audit(ctx context.Context, tenantID string, record *domain.PaymentRecord) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		TenantID:     tenantID,
		Action:       string(domain.AuditActionPaymentRecord),
		ResourceType: "payment",
		ResourceID:   record.ID,
		AfterState:   domain.MarshalState(record),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
