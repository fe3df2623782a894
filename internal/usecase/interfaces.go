package usecase

import (
	"context"
	"time"

	"github.com/duepay/payables/internal/domain"
)

// SupplierRepository defines data access for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	Update(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Supplier, error)
	List(ctx context.Context, tenantID string) ([]*domain.Supplier, error)
}

// AccountRepository defines data access for recurring account definitions.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Account, error)
	List(ctx context.Context, tenantID string) ([]*domain.Account, error)
	ListByIDs(ctx context.Context, tenantID string, ids []string) ([]*domain.Account, error)
}

// PaymentFilter narrows payment-record listings.
type PaymentFilter struct {
	PaidFrom *time.Time
	PaidTo   *time.Time
}

// PaymentRepository defines data access for payment records. Records are
// append-only; the store enforces uniqueness per (account, paid month).
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.PaymentRecord) error
	GetByAccountAndPeriod(ctx context.Context, tenantID, accountID string, period domain.Period) (*domain.PaymentRecord, error)
	List(ctx context.Context, tenantID string, filter PaymentFilter) ([]*domain.PaymentRecord, error)
	ListByAccount(ctx context.Context, tenantID, accountID string) ([]*domain.PaymentRecord, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient store errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
