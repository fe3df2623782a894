package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// PaymentRepository implements usecase.PaymentRepository against the
// account_payment_history table. The UNIQUE (account_id, paid_month)
// constraint is what ultimately guarantees one settlement per occurrence.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, tenant_id, account_id, paid_month, paid_date, amount,
	invoice_numbers, recipient, cost_centers, created_at`

// Create inserts a settlement record inside the given transaction. A unique
// violation on (account_id, paid_month) maps to ErrPaymentAlreadyRecorded.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.PaymentRecord) error {
	snapshot, err := snapshotJSON(record.CostCentersSnapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO account_payment_history (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	pgxTx := tx.(*Tx).PgxTx()

	_, err = pgxTx.Exec(ctx, query,
		record.ID,
		record.TenantID,
		record.AccountID,
		record.PaidMonth.Key(),
		record.PaidDate,
		decimalToNumeric(record.Amount),
		record.InvoiceNumbers,
		record.Recipient,
		snapshot,
		record.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrPaymentAlreadyRecorded
		}

		return err
	}

	return nil
}

// GetByAccountAndPeriod retrieves the settlement of one occurrence.
func (r *PaymentRepository) GetByAccountAndPeriod(ctx context.Context, tenantID, accountID string, period domain.Period) (*domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM account_payment_history
		WHERE tenant_id = $1 AND account_id = $2 AND paid_month = $3
	`

	record, err := scanPayment(r.pool.QueryRow(ctx, query, tenantID, accountID, period.Key()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return record, nil
}

// List lists a tenant's settlement records, optionally bounded by paid date.
func (r *PaymentRepository) List(ctx context.Context, tenantID string, filter usecase.PaymentFilter) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM account_payment_history
		WHERE tenant_id = $1
	`

	args := []any{tenantID}

	if filter.PaidFrom != nil {
		args = append(args, *filter.PaidFrom)
		query += ` AND paid_date >= $` + argn(len(args))
	}

	if filter.PaidTo != nil {
		args = append(args, *filter.PaidTo)
		query += ` AND paid_date <= $` + argn(len(args))
	}

	query += ` ORDER BY paid_date DESC, id`

	return r.queryPayments(ctx, query, args...)
}

// ListByAccount lists the settlement records of one account.
func (r *PaymentRepository) ListByAccount(ctx context.Context, tenantID, accountID string) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM account_payment_history
		WHERE tenant_id = $1 AND account_id = $2
		ORDER BY paid_month DESC
	`

	return r.queryPayments(ctx, query, tenantID, accountID)
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*domain.PaymentRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.PaymentRecord
	for rows.Next() {
		record, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.PaymentRecord, error) {
	var (
		p         domain.PaymentRecord
		paidMonth string
		amount    pgtype.Numeric
		snapshot  []byte
	)

	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.AccountID,
		&paidMonth,
		&p.PaidDate,
		&amount,
		&p.InvoiceNumbers,
		&p.Recipient,
		&snapshot,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.PaidMonth, err = domain.ParsePeriod(paidMonth); err != nil {
		return nil, err
	}

	p.Amount = numericToDecimal(amount)

	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &p.CostCentersSnapshot); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

func snapshotJSON(shares []domain.CostCenterShare) ([]byte, error) {
	if len(shares) == 0 {
		return nil, nil
	}

	return json.Marshal(shares)
}

func argn(n int) string {
	return strconv.Itoa(n)
}
