package domain

import "time"

// Supplier represents a vendor that issues recurring invoices.
type Supplier struct {
	ID             string
	TenantID       string
	Name           string
	TaxID          string
	InvoiceByEmail bool
	InvoiceByPortal bool
	PortalURL      string
	PortalLogin    string
	PortalPassword string
	Observations   string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
