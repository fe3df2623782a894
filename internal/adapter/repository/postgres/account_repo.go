package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duepay/payables/internal/domain"
)

// AccountRepository implements usecase.AccountRepository. Cost-center
// allocations are stored as a JSONB document on the account row.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, tenant_id, supplier_id, description, amount, issue_day, due_day,
	cost_centers, end_date, created_at, updated_at`

// Create inserts a new recurring account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	costCenters, err := costCentersJSON(account.CostCenters)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		account.ID,
		account.TenantID,
		account.SupplierID,
		account.Description,
		decimalToNumeric(account.Amount),
		account.IssueDay,
		account.DueDay,
		costCenters,
		account.EndDate,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// Update rewrites an account's recurrence rule. CreatedAt is immutable: the
// recurrence window always starts at the original creation month.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	costCenters, err := costCentersJSON(account.CostCenters)
	if err != nil {
		return err
	}

	query := `
		UPDATE accounts
		SET supplier_id = $3, description = $4, amount = $5, issue_day = $6,
		    due_day = $7, cost_centers = $8, end_date = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		account.TenantID,
		account.ID,
		account.SupplierID,
		account.Description,
		decimalToNumeric(account.Amount),
		account.IssueDay,
		account.DueDay,
		costCenters,
		account.EndDate,
		account.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// GetByID retrieves an account by ID within a tenant.
func (r *AccountRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND id = $2`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// List lists a tenant's recurring accounts.
func (r *AccountRepository) List(ctx context.Context, tenantID string) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY created_at, id`

	return r.queryAccounts(ctx, query, tenantID)
}

// ListByIDs retrieves the given accounts within a tenant.
func (r *AccountRepository) ListByIDs(ctx context.Context, tenantID string, ids []string) ([]*domain.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND id = ANY($2)`

	return r.queryAccounts(ctx, query, tenantID, ids)
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a           domain.Account
		amount      pgtype.Numeric
		costCenters []byte
		endDate     *time.Time
	)

	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.SupplierID,
		&a.Description,
		&amount,
		&a.IssueDay,
		&a.DueDay,
		&costCenters,
		&endDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Amount = numericToDecimal(amount)
	a.EndDate = endDate

	if len(costCenters) > 0 {
		if err := json.Unmarshal(costCenters, &a.CostCenters); err != nil {
			return nil, err
		}
	}

	return &a, nil
}

func costCentersJSON(centers []domain.CostCenter) ([]byte, error) {
	if len(centers) == 0 {
		return nil, nil
	}

	return json.Marshal(centers)
}
