package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/infrastructure/metrics"
)

// AccountUseCase handles recurring account business logic.
type AccountUseCase struct {
	accountRepo  AccountRepository
	supplierRepo SupplierRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	cache        Cache
	metrics      *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	supplierRepo SupplierRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	cache Cache,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:  accountRepo,
		supplierRepo: supplierRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
		cache:        cache,
		metrics:      m,
	}
}

// CreateAccountInput represents input for creating a recurring account.
type CreateAccountInput struct {
	SupplierID  string
	Description string
	Amount      decimal.Decimal
	IssueDay    int
	DueDay      int
	CostCenters []domain.CostCenter
	EndDate     *time.Time
}

// CreateAccount validates and persists a new recurring account. The
// recurrence starts in the month of creation.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, tenantID string, input CreateAccountInput) (*domain.Account, error) {
	if _, err := uc.supplierRepo.GetByID(ctx, tenantID, input.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		TenantID:    tenantID,
		SupplierID:  input.SupplierID,
		Description: input.Description,
		Amount:      input.Amount,
		IssueDay:    input.IssueDay,
		DueDay:      input.DueDay,
		CostCenters: input.CostCenters,
		CreatedAt:   now,
		EndDate:     input.EndDate,
		UpdatedAt:   now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.audit(ctx, tenantID, domain.AuditActionAccountCreate, account.ID, nil, account)
	uc.invalidateSchedule(ctx, tenantID)

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// UpdateAccountInput represents input for editing a recurring account.
type UpdateAccountInput struct {
	SupplierID  string
	Description string
	Amount      decimal.Decimal
	IssueDay    int
	DueDay      int
	CostCenters []domain.CostCenter
	EndDate     *time.Time
}

// UpdateAccount edits an account definition. Historical payment records keep
// their frozen cost-center snapshots; only future settlements see the new
// allocation.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, tenantID, id string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.SupplierID != account.SupplierID {
		if _, err := uc.supplierRepo.GetByID(ctx, tenantID, input.SupplierID); err != nil {
			return nil, err
		}
	}

	before := *account

	account.SupplierID = input.SupplierID
	account.Description = input.Description
	account.Amount = input.Amount
	account.IssueDay = input.IssueDay
	account.DueDay = input.DueDay
	account.CostCenters = input.CostCenters
	account.EndDate = input.EndDate
	account.UpdatedAt = time.Now().UTC()

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.audit(ctx, tenantID, domain.AuditActionAccountUpdate, account.ID, &before, account)
	uc.invalidateSchedule(ctx, tenantID)

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, tenantID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, tenantID, id)
}

// ListAccounts lists all recurring accounts of a tenant.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, tenantID string) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, tenantID)
}

func (uc *AccountUseCase) invalidateSchedule(ctx context.Context, tenantID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, scheduleCacheKey(tenantID))
}

func (uc *AccountUseCase) audit(ctx context.Context, tenantID string, action domain.AuditAction, resourceID string, before, after any) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		TenantID:     tenantID,
		Action:       string(action),
		ResourceType: "account",
		ResourceID:   resourceID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
