package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/infrastructure/metrics"
)

// SupplierUseCase handles supplier business logic.
type SupplierUseCase struct {
	supplierRepo SupplierRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewSupplierUseCase creates a new SupplierUseCase.
func NewSupplierUseCase(supplierRepo SupplierRepository, auditRepo AuditRepository, idGen IDGenerator, m *metrics.Metrics) *SupplierUseCase {
	return &SupplierUseCase{
		supplierRepo: supplierRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
		metrics:      m,
	}
}

// CreateSupplierInput represents input for creating a supplier.
type CreateSupplierInput struct {
	Name            string
	TaxID           string
	InvoiceByEmail  bool
	InvoiceByPortal bool
	PortalURL       string
	PortalLogin     string
	PortalPassword  string
	Observations    string
	Active          bool
}

// CreateSupplier creates a new supplier.
func (uc *SupplierUseCase) CreateSupplier(ctx context.Context, tenantID string, input CreateSupplierInput) (*domain.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidSupplierName
	}

	now := time.Now().UTC()

	supplier := &domain.Supplier{
		ID:              uc.idGen.Generate(),
		TenantID:        tenantID,
		Name:            strings.TrimSpace(input.Name),
		TaxID:           input.TaxID,
		InvoiceByEmail:  input.InvoiceByEmail,
		InvoiceByPortal: input.InvoiceByPortal,
		PortalURL:       input.PortalURL,
		PortalLogin:     input.PortalLogin,
		PortalPassword:  input.PortalPassword,
		Observations:    input.Observations,
		Active:          input.Active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Portal credentials only make sense for portal-delivered invoices.
	if !supplier.InvoiceByPortal {
		supplier.PortalURL = ""
		supplier.PortalLogin = ""
		supplier.PortalPassword = ""
	}

	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	uc.audit(ctx, tenantID, domain.AuditActionSupplierCreate, supplier.ID, nil, supplier)

	if uc.metrics != nil {
		uc.metrics.SuppliersCreated.Inc()
	}

	return supplier, nil
}

// UpdateSupplierInput represents input for updating a supplier.
type UpdateSupplierInput struct {
	Name            string
	TaxID           string
	InvoiceByEmail  bool
	InvoiceByPortal bool
	PortalURL       string
	PortalLogin     string
	PortalPassword  string
	Observations    string
	Active          bool
}

// UpdateSupplier updates an existing supplier.
func (uc *SupplierUseCase) UpdateSupplier(ctx context.Context, tenantID, id string, input UpdateSupplierInput) (*domain.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidSupplierName
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	before := *supplier

	supplier.Name = strings.TrimSpace(input.Name)
	supplier.TaxID = input.TaxID
	supplier.InvoiceByEmail = input.InvoiceByEmail
	supplier.InvoiceByPortal = input.InvoiceByPortal
	supplier.PortalURL = input.PortalURL
	supplier.PortalLogin = input.PortalLogin
	supplier.PortalPassword = input.PortalPassword
	supplier.Observations = input.Observations
	supplier.Active = input.Active
	supplier.UpdatedAt = time.Now().UTC()

	if !supplier.InvoiceByPortal {
		supplier.PortalURL = ""
		supplier.PortalLogin = ""
		supplier.PortalPassword = ""
	}

	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	uc.audit(ctx, tenantID, domain.AuditActionSupplierUpdate, supplier.ID, &before, supplier)

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID.
func (uc *SupplierUseCase) GetSupplier(ctx context.Context, tenantID, id string) (*domain.Supplier, error) {
	return uc.supplierRepo.GetByID(ctx, tenantID, id)
}

// ListSuppliers lists all suppliers of a tenant, ordered by name.
func (uc *SupplierUseCase) ListSuppliers(ctx context.Context, tenantID string) ([]*domain.Supplier, error) {
	return uc.supplierRepo.List(ctx, tenantID)
}

func (uc *SupplierUseCase) audit(ctx context.Context, tenantID string, action domain.AuditAction, resourceID string, before, after any) {
	if uc.auditRepo == nil {
		return
	}

	// Audit failures never fail the operation itself.
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		TenantID:     tenantID,
		Action:       string(action),
		ResourceType: "supplier",
		ResourceID:   resourceID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
