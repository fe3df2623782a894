package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/usecase"
)

// CreateSupplierRequest represents a request to create a supplier.
type CreateSupplierRequest struct {
	Name            string `json:"name"`
	TaxID           string `json:"tax_id,omitempty"`
	InvoiceByEmail  bool   `json:"invoice_by_email"`
	InvoiceByPortal bool   `json:"invoice_by_portal"`
	PortalURL       string `json:"portal_url,omitempty"`
	PortalLogin     string `json:"portal_login,omitempty"`
	PortalPassword  string `json:"portal_password,omitempty"`
	Observations    string `json:"observations,omitempty"`
	Active          bool   `json:"active"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSupplierRequest) ToUseCaseInput() usecase.CreateSupplierInput {
	return usecase.CreateSupplierInput{
		Name:            r.Name,
		TaxID:           r.TaxID,
		InvoiceByEmail:  r.InvoiceByEmail,
		InvoiceByPortal: r.InvoiceByPortal,
		PortalURL:       r.PortalURL,
		PortalLogin:     r.PortalLogin,
		PortalPassword:  r.PortalPassword,
		Observations:    r.Observations,
		Active:          r.Active,
	}
}

// UpdateSupplierRequest represents a request to update a supplier.
type UpdateSupplierRequest struct {
	Name            string `json:"name"`
	TaxID           string `json:"tax_id,omitempty"`
	InvoiceByEmail  bool   `json:"invoice_by_email"`
	InvoiceByPortal bool   `json:"invoice_by_portal"`
	PortalURL       string `json:"portal_url,omitempty"`
	PortalLogin     string `json:"portal_login,omitempty"`
	PortalPassword  string `json:"portal_password,omitempty"`
	Observations    string `json:"observations,omitempty"`
	Active          bool   `json:"active"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSupplierRequest) ToUseCaseInput() usecase.UpdateSupplierInput {
	return usecase.UpdateSupplierInput{
		Name:            r.Name,
		TaxID:           r.TaxID,
		InvoiceByEmail:  r.InvoiceByEmail,
		InvoiceByPortal: r.InvoiceByPortal,
		PortalURL:       r.PortalURL,
		PortalLogin:     r.PortalLogin,
		PortalPassword:  r.PortalPassword,
		Observations:    r.Observations,
		Active:          r.Active,
	}
}

// CostCenterItem is one allocation slice in account requests.
type CostCenterItem struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
}

// CreateAccountRequest represents a request to create a recurring account.
type CreateAccountRequest struct {
	SupplierID  string           `json:"supplier_id"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	IssueDay    int              `json:"issue_day"`
	DueDay      int              `json:"due_day"`
	CostCenters []CostCenterItem `json:"cost_centers,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		SupplierID:  r.SupplierID,
		Description: r.Description,
		Amount:      r.Amount,
		IssueDay:    r.IssueDay,
		DueDay:      r.DueDay,
		CostCenters: costCentersToDomain(r.CostCenters),
		EndDate:     r.EndDate,
	}
}

// UpdateAccountRequest represents a request to edit a recurring account.
type UpdateAccountRequest struct {
	SupplierID  string           `json:"supplier_id"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	IssueDay    int              `json:"issue_day"`
	DueDay      int              `json:"due_day"`
	CostCenters []CostCenterItem `json:"cost_centers,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		SupplierID:  r.SupplierID,
		Description: r.Description,
		Amount:      r.Amount,
		IssueDay:    r.IssueDay,
		DueDay:      r.DueDay,
		CostCenters: costCentersToDomain(r.CostCenters),
		EndDate:     r.EndDate,
	}
}

func costCentersToDomain(items []CostCenterItem) []domain.CostCenter {
	if len(items) == 0 {
		return nil
	}

	centers := make([]domain.CostCenter, len(items))
	for i, item := range items {
		centers[i] = domain.CostCenter{Code: item.Code, Percent: item.Percent}
	}

	return centers
}

// RecordPaymentRequest represents a request to settle one occurrence.
type RecordPaymentRequest struct {
	Period         string     `json:"period"`
	InvoiceNumbers []string   `json:"invoice_numbers"`
	Recipient      string     `json:"recipient"`
	PaidDate       *time.Time `json:"paid_date,omitempty"`
}

// ToUseCaseInput converts to use case input. The period string is parsed as
// "YYYY-MM".
func (r *RecordPaymentRequest) ToUseCaseInput(accountID string) (usecase.RecordPaymentInput, error) {
	period, err := domain.ParsePeriod(r.Period)
	if err != nil {
		return usecase.RecordPaymentInput{}, err
	}

	input := usecase.RecordPaymentInput{
		AccountID:      accountID,
		Period:         period,
		InvoiceNumbers: r.InvoiceNumbers,
		Recipient:      r.Recipient,
	}

	if r.PaidDate != nil {
		input.PaidDate = *r.PaidDate
	}

	return input, nil
}
