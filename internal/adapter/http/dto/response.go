package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/usecase"
)

const dateLayout = "2006-01-02"

// SupplierResponse represents a supplier in API responses. Portal passwords
// never leave the service.
type SupplierResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TaxID           string    `json:"tax_id,omitempty"`
	InvoiceByEmail  bool      `json:"invoice_by_email"`
	InvoiceByPortal bool      `json:"invoice_by_portal"`
	PortalURL       string    `json:"portal_url,omitempty"`
	PortalLogin     string    `json:"portal_login,omitempty"`
	Observations    string    `json:"observations,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SupplierFromDomain converts a domain supplier to a response.
func SupplierFromDomain(s *domain.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:              s.ID,
		Name:            s.Name,
		TaxID:           s.TaxID,
		InvoiceByEmail:  s.InvoiceByEmail,
		InvoiceByPortal: s.InvoiceByPortal,
		PortalURL:       s.PortalURL,
		PortalLogin:     s.PortalLogin,
		Observations:    s.Observations,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// SuppliersFromDomain converts domain suppliers to responses.
func SuppliersFromDomain(suppliers []*domain.Supplier) []*SupplierResponse {
	result := make([]*SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		result[i] = SupplierFromDomain(s)
	}
	return result
}

// CostCenterResponse is one allocation slice in account responses.
type CostCenterResponse struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
}

// AccountResponse represents a recurring account in API responses.
type AccountResponse struct {
	ID          string               `json:"id"`
	SupplierID  string               `json:"supplier_id"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	IssueDay    int                  `json:"issue_day"`
	DueDay      int                  `json:"due_day"`
	CostCenters []CostCenterResponse `json:"cost_centers,omitempty"`
	EndDate     *string              `json:"end_date,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:          a.ID,
		SupplierID:  a.SupplierID,
		Description: a.Description,
		Amount:      a.Amount,
		IssueDay:    a.IssueDay,
		DueDay:      a.DueDay,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if len(a.CostCenters) > 0 {
		resp.CostCenters = make([]CostCenterResponse, len(a.CostCenters))
		for i, cc := range a.CostCenters {
			resp.CostCenters[i] = CostCenterResponse{Code: cc.Code, Percent: cc.Percent}
		}
	}

	if a.EndDate != nil {
		end := a.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}

	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// OccurrenceResponse represents one derived monthly occurrence.
type OccurrenceResponse struct {
	AccountID      string          `json:"account_id"`
	SupplierID     string          `json:"supplier_id"`
	Description    string          `json:"description"`
	Period         string          `json:"period"`
	IssueDate      string          `json:"issue_date"`
	DueDate        string          `json:"due_date"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	Paid           bool            `json:"paid"`
	InvoiceNumbers []string        `json:"invoice_numbers,omitempty"`
	Recipient      string          `json:"recipient,omitempty"`
	PaidDate       *string         `json:"paid_date,omitempty"`
}

// OccurrenceFromDomain converts a domain occurrence to a response.
func OccurrenceFromDomain(o *domain.Occurrence) *OccurrenceResponse {
	resp := &OccurrenceResponse{
		AccountID:      o.AccountID,
		SupplierID:     o.SupplierID,
		Description:    o.Description,
		Period:         o.Period.Key(),
		IssueDate:      o.IssueDate.Format(dateLayout),
		DueDate:        o.DueDate.Format(dateLayout),
		Amount:         o.Amount,
		Status:         string(o.Status),
		Paid:           o.Paid,
		InvoiceNumbers: o.InvoiceNumbers,
		Recipient:      o.Recipient,
	}

	if !o.PaidDate.IsZero() {
		paid := o.PaidDate.Format(dateLayout)
		resp.PaidDate = &paid
	}

	return resp
}

// OccurrencesFromDomain converts domain occurrences to responses.
func OccurrencesFromDomain(occurrences []*domain.Occurrence) []*OccurrenceResponse {
	result := make([]*OccurrenceResponse, len(occurrences))
	for i, o := range occurrences {
		result[i] = OccurrenceFromDomain(o)
	}
	return result
}

// ScheduleResponse groups occurrences the way the dashboard renders them.
type ScheduleResponse struct {
	Overdue  []*OccurrenceResponse `json:"overdue"`
	Upcoming []*OccurrenceResponse `json:"upcoming"`
	Paid     []*OccurrenceResponse `json:"paid"`
}

// ScheduleFromDomain converts a grouped schedule to a response.
func ScheduleFromDomain(s domain.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		Overdue:  OccurrencesFromDomain(s.Overdue),
		Upcoming: OccurrencesFromDomain(s.Upcoming),
		Paid:     OccurrencesFromDomain(s.Paid),
	}
}

// CostCenterShareResponse is one slice of a frozen settlement allocation.
type CostCenterShareResponse struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
	Value   decimal.Decimal `json:"value"`
}

// PaymentResponse represents a settlement record in API responses.
type PaymentResponse struct {
	ID             string                    `json:"id"`
	AccountID      string                    `json:"account_id"`
	PaidMonth      string                    `json:"paid_month"`
	PaidDate       string                    `json:"paid_date"`
	Amount         decimal.Decimal           `json:"amount"`
	InvoiceNumbers []string                  `json:"invoice_numbers"`
	Recipient      string                    `json:"recipient"`
	CostCenters    []CostCenterShareResponse `json:"cost_centers,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// PaymentFromDomain converts a domain payment record to a response.
func PaymentFromDomain(p *domain.PaymentRecord) *PaymentResponse {
	resp := &PaymentResponse{
		ID:             p.ID,
		AccountID:      p.AccountID,
		PaidMonth:      p.PaidMonth.Key(),
		PaidDate:       p.PaidDate.Format(dateLayout),
		Amount:         p.Amount,
		InvoiceNumbers: p.InvoiceNumbers,
		Recipient:      p.Recipient,
		CreatedAt:      p.CreatedAt,
	}

	if len(p.CostCentersSnapshot) > 0 {
		resp.CostCenters = make([]CostCenterShareResponse, len(p.CostCentersSnapshot))
		for i, share := range p.CostCentersSnapshot {
			resp.CostCenters[i] = CostCenterShareResponse{
				Code:    share.Code,
				Percent: share.Percent,
				Value:   share.Value,
			}
		}
	}

	return resp
}

// PaymentsFromDomain converts domain payment records to responses.
func PaymentsFromDomain(records []*domain.PaymentRecord) []*PaymentResponse {
	result := make([]*PaymentResponse, len(records))
	for i, p := range records {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// HistoryEntryResponse is one settled occurrence with its account context.
type HistoryEntryResponse struct {
	Payment     *PaymentResponse `json:"payment"`
	Description string           `json:"description"`
	SupplierID  string           `json:"supplier_id"`
	DueDate     string           `json:"due_date"`
}

// HistoryFromUseCase converts history entries to responses.
func HistoryFromUseCase(entries []*usecase.HistoryEntry) []*HistoryEntryResponse {
	result := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &HistoryEntryResponse{
			Payment:     PaymentFromDomain(e.Record),
			Description: e.Description,
			SupplierID:  e.SupplierID,
			DueDate:     e.DueDate.Format(dateLayout),
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
