package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/usecase"
	"github.com/duepay/payables/internal/usecase/mocks"
)

type paymentMocks struct {
	txManager   *mocks.MockTransactionManager
	tx          *mocks.MockTransaction
	accountRepo *mocks.MockAccountRepository
	paymentRepo *mocks.MockPaymentRepository
	retrier     *mocks.MockRetrier
	cache       *mocks.MockCache
	idGen       *mocks.MockIDGenerator
}

func newPaymentMocks(ctrl *gomock.Controller) *paymentMocks {
	m := &paymentMocks{
		txManager:   mocks.NewMockTransactionManager(ctrl),
		tx:          mocks.NewMockTransaction(ctrl),
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		paymentRepo: mocks.NewMockPaymentRepository(ctrl),
		retrier:     mocks.NewMockRetrier(ctrl),
		cache:       mocks.NewMockCache(ctrl),
		idGen:       mocks.NewMockIDGenerator(ctrl),
	}

	m.idGen.EXPECT().Generate().Return("pay-1").AnyTimes()

	return m
}

func (m *paymentMocks) useCase() *usecase.PaymentUseCase {
	return usecase.NewPaymentUseCase(
		m.txManager, m.accountRepo, m.paymentRepo, nil, m.idGen, m.retrier, m.cache, nil,
	)
}

// passthroughRetry makes the mock retrier run the operation once.
func (m *paymentMocks) passthroughRetry() {
	m.retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op func() error) error {
			return op()
		})
}

func paymentAccount() *domain.Account {
	return &domain.Account{
		ID:          "acc-1",
		TenantID:    testTenant,
		SupplierID:  "sup-1",
		Description: "Office electricity",
		Amount:      decimal.NewFromInt(1000),
		IssueDay:    10,
		DueDay:      20,
		CostCenters: []domain.CostCenter{
			{Code: "ADM", Percent: decimal.NewFromInt(60)},
			{Code: "OPS", Percent: decimal.NewFromInt(40)},
		},
		CreatedAt: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPaymentUseCase_RecordPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPaymentMocks(ctrl)

	period := domain.Period{Year: 2025, Month: time.March}

	m.accountRepo.EXPECT().GetByID(gomock.Any(), testTenant, "acc-1").Return(paymentAccount(), nil)
	m.paymentRepo.EXPECT().GetByAccountAndPeriod(gomock.Any(), testTenant, "acc-1", period).
		Return(nil, domain.ErrPaymentNotFound)
	m.passthroughRetry()
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.paymentRepo.EXPECT().Create(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	m.cache.EXPECT().Delete(gomock.Any(), "schedule:"+testTenant).Return(nil)

	record, err := m.useCase().RecordPayment(context.Background(), testTenant, usecase.RecordPaymentInput{
		AccountID:      "acc-1",
		Period:         period,
		InvoiceNumbers: []string{" NF-100 ", ""},
		Recipient:      "Acme Utilities",
		PaidDate:       time.Date(2025, time.March, 18, 14, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, period, record.PaidMonth)
	assert.Equal(t, []string{"NF-100"}, record.InvoiceNumbers)
	assert.Equal(t, "Acme Utilities", record.Recipient)
	assert.True(t, record.Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC), record.PaidDate)

	// The allocation is frozen at settlement time with exact values.
	require.Len(t, record.CostCentersSnapshot, 2)
	assert.True(t, record.CostCentersSnapshot[0].Value.Equal(decimal.NewFromInt(600)))
	assert.True(t, record.CostCentersSnapshot[1].Value.Equal(decimal.NewFromInt(400)))
}

func TestPaymentUseCase_RecordPayment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.RecordPaymentInput
		wantErr error
	}{
		{
			name: "no invoice numbers",
			input: usecase.RecordPaymentInput{
				AccountID: "acc-1",
				Recipient: "Acme",
			},
			wantErr: domain.ErrEmptyInvoiceNumbers,
		},
		{
			name: "only blank invoice numbers",
			input: usecase.RecordPaymentInput{
				AccountID:      "acc-1",
				InvoiceNumbers: []string{"  ", ""},
				Recipient:      "Acme",
			},
			wantErr: domain.ErrEmptyInvoiceNumbers,
		},
		{
			name: "blank recipient",
			input: usecase.RecordPaymentInput{
				AccountID:      "acc-1",
				InvoiceNumbers: []string{"NF-1"},
				Recipient:      "   ",
			},
			wantErr: domain.ErrEmptyRecipient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newPaymentMocks(ctrl)

			_, err := m.useCase().RecordPayment(context.Background(), testTenant, tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaymentUseCase_RecordPayment_AlreadyRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPaymentMocks(ctrl)

	period := domain.Period{Year: 2025, Month: time.March}

	m.accountRepo.EXPECT().GetByID(gomock.Any(), testTenant, "acc-1").Return(paymentAccount(), nil)
	m.paymentRepo.EXPECT().GetByAccountAndPeriod(gomock.Any(), testTenant, "acc-1", period).
		Return(&domain.PaymentRecord{ID: "pay-0"}, nil)

	_, err := m.useCase().RecordPayment(context.Background(), testTenant, usecase.RecordPaymentInput{
		AccountID:      "acc-1",
		Period:         period,
		InvoiceNumbers: []string{"NF-1"},
		Recipient:      "Acme",
	})

	require.ErrorIs(t, err, domain.ErrPaymentAlreadyRecorded)
}

func TestPaymentUseCase_RecordPayment_UniqueConstraintRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPaymentMocks(ctrl)

	period := domain.Period{Year: 2025, Month: time.March}

	// The pre-check misses a concurrent writer; the store constraint wins.
	m.accountRepo.EXPECT().GetByID(gomock.Any(), testTenant, "acc-1").Return(paymentAccount(), nil)
	m.paymentRepo.EXPECT().GetByAccountAndPeriod(gomock.Any(), testTenant, "acc-1", period).
		Return(nil, domain.ErrPaymentNotFound)
	m.passthroughRetry()
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.paymentRepo.EXPECT().Create(gomock.Any(), m.tx, gomock.Any()).
		Return(domain.ErrPaymentAlreadyRecorded)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	_, err := m.useCase().RecordPayment(context.Background(), testTenant, usecase.RecordPaymentInput{
		AccountID:      "acc-1",
		Period:         period,
		InvoiceNumbers: []string{"NF-1"},
		Recipient:      "Acme",
	})

	require.ErrorIs(t, err, domain.ErrPaymentAlreadyRecorded)
}

func TestPaymentUseCase_ListHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPaymentMocks(ctrl)

	records := []*domain.PaymentRecord{
		{
			ID:        "pay-1",
			AccountID: "acc-1",
			PaidMonth: domain.Period{Year: 2025, Month: time.February},
			PaidDate:  time.Date(2025, time.February, 25, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(1000),
		},
		{
			ID:        "pay-2",
			AccountID: "acc-1",
			PaidMonth: domain.Period{Year: 2025, Month: time.March},
			PaidDate:  time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(1000),
		},
	}

	m.paymentRepo.EXPECT().List(gomock.Any(), testTenant, usecase.PaymentFilter{}).Return(records, nil)
	m.accountRepo.EXPECT().ListByIDs(gomock.Any(), testTenant, []string{"acc-1"}).
		Return([]*domain.Account{paymentAccount()}, nil)

	entries, err := m.useCase().ListHistory(context.Background(), testTenant, usecase.HistoryFilter{})

	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent payment first.
	assert.Equal(t, "pay-2", entries[0].Record.ID)
	assert.Equal(t, "pay-1", entries[1].Record.ID)

	// Due day 20 placed inside each paid month.
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
	assert.Equal(t, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC), entries[1].DueDate)
	assert.Equal(t, "sup-1", entries[0].SupplierID)
}

func TestPaymentUseCase_ListHistory_DueDayClampedToShortMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPaymentMocks(ctrl)

	account := paymentAccount()
	account.DueDay = 31

	records := []*domain.PaymentRecord{
		{
			ID:        "pay-1",
			AccountID: "acc-1",
			PaidMonth: domain.Period{Year: 2025, Month: time.February},
			PaidDate:  time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(1000),
		},
	}

	m.paymentRepo.EXPECT().List(gomock.Any(), testTenant, usecase.PaymentFilter{}).Return(records, nil)
	m.accountRepo.EXPECT().ListByIDs(gomock.Any(), testTenant, []string{"acc-1"}).
		Return([]*domain.Account{account}, nil)

	entries, err := m.useCase().ListHistory(context.Background(), testTenant, usecase.HistoryFilter{})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
}

func TestPaymentUseCase_ListHistory_SupplierFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPaymentMocks(ctrl)

	other := paymentAccount()
	other.ID = "acc-2"
	other.SupplierID = "sup-2"

	records := []*domain.PaymentRecord{
		{
			ID:        "pay-1",
			AccountID: "acc-1",
			PaidMonth: domain.Period{Year: 2025, Month: time.March},
			PaidDate:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(1000),
		},
		{
			ID:        "pay-2",
			AccountID: "acc-2",
			PaidMonth: domain.Period{Year: 2025, Month: time.March},
			PaidDate:  time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(500),
		},
	}

	m.paymentRepo.EXPECT().List(gomock.Any(), testTenant, usecase.PaymentFilter{}).Return(records, nil)
	m.accountRepo.EXPECT().ListByIDs(gomock.Any(), testTenant, []string{"acc-1", "acc-2"}).
		Return([]*domain.Account{paymentAccount(), other}, nil)

	entries, err := m.useCase().ListHistory(context.Background(), testTenant, usecase.HistoryFilter{SupplierID: "sup-2"})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pay-2", entries[0].Record.ID)
}
