package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duepay/payables/internal/domain"
)

// SupplierRepository implements usecase.SupplierRepository.
type SupplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository creates a new SupplierRepository.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{pool: pool}
}

const supplierColumns = `id, tenant_id, name, tax_id, invoice_by_email, invoice_by_portal,
	portal_url, portal_login, portal_password, observations, active, created_at, updated_at`

// Create inserts a new supplier.
func (r *SupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		supplier.ID,
		supplier.TenantID,
		supplier.Name,
		supplier.TaxID,
		supplier.InvoiceByEmail,
		supplier.InvoiceByPortal,
		supplier.PortalURL,
		supplier.PortalLogin,
		supplier.PortalPassword,
		supplier.Observations,
		supplier.Active,
		supplier.CreatedAt,
		supplier.UpdatedAt,
	)

	return err
}

// Update rewrites a supplier's mutable fields.
func (r *SupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $3, tax_id = $4, invoice_by_email = $5, invoice_by_portal = $6,
		    portal_url = $7, portal_login = $8, portal_password = $9,
		    observations = $10, active = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		supplier.TenantID,
		supplier.ID,
		supplier.Name,
		supplier.TaxID,
		supplier.InvoiceByEmail,
		supplier.InvoiceByPortal,
		supplier.PortalURL,
		supplier.PortalLogin,
		supplier.PortalPassword,
		supplier.Observations,
		supplier.Active,
		supplier.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}

	return nil
}

// GetByID retrieves a supplier by ID within a tenant.
func (r *SupplierRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE tenant_id = $1 AND id = $2`

	supplier, err := scanSupplier(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}

		return nil, err
	}

	return supplier, nil
}

// List lists a tenant's suppliers ordered by name.
func (r *SupplierRepository) List(ctx context.Context, tenantID string) ([]*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE tenant_id = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*domain.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}

		suppliers = append(suppliers, supplier)
	}

	return suppliers, rows.Err()
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier

	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.Name,
		&s.TaxID,
		&s.InvoiceByEmail,
		&s.InvoiceByPortal,
		&s.PortalURL,
		&s.PortalLogin,
		&s.PortalPassword,
		&s.Observations,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
