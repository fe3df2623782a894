package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CostCenter is one slice of an account's cost allocation.
type CostCenter struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
}

// Account defines a recurring supplier invoice: a nominal issue day and due
// day per month, an amount, and an optional end of the recurrence. Monthly
// occurrences are derived from it, never stored.
type Account struct {
	ID          string
	TenantID    string
	SupplierID  string
	Description string
	Amount      decimal.Decimal
	IssueDay    int
	DueDay      int
	CostCenters []CostCenter
	CreatedAt   time.Time
	EndDate     *time.Time
	UpdatedAt   time.Time
}

// Validate checks the recurrence rule fields. The expansion engine assumes
// accounts have passed this before being persisted.
func (a *Account) Validate() error {
	if err := ValidateDayOfMonth(a.IssueDay); err != nil {
		return err
	}

	if err := ValidateDayOfMonth(a.DueDay); err != nil {
		return err
	}

	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	desc := strings.TrimSpace(a.Description)
	if len(desc) < 3 || len(desc) > 200 {
		return ErrInvalidDescription
	}

	if a.EndDate != nil && PeriodOf(*a.EndDate).Before(PeriodOf(a.CreatedAt)) {
		return ErrInvalidEndDate
	}

	return ValidateCostCenters(a.CostCenters)
}

// ValidateDayOfMonth checks a nominal day-of-month recurrence field.
func ValidateDayOfMonth(day int) error {
	if day < 1 || day > 31 {
		return ErrInvalidDayOfMonth
	}

	return nil
}

// ValidateCostCenters checks that percentages are positive and sum to exactly
// 100. An empty list is allowed: the account then has no allocation.
func ValidateCostCenters(centers []CostCenter) error {
	if len(centers) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, cc := range centers {
		if cc.Percent.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidCostCenterPct
		}

		total = total.Add(cc.Percent)
	}

	if !total.Equal(decimal.NewFromInt(100)) {
		return ErrInvalidCostCenters
	}

	return nil
}

// FirstPeriod returns the first period the account can generate an occurrence
// for: the month it was created in.
func (a *Account) FirstPeriod() Period {
	return PeriodOf(a.CreatedAt)
}

// LastPeriod returns the final period the recurrence covers, capped by the
// end date when one is set. ok is false for open-ended accounts.
func (a *Account) LastPeriod() (p Period, ok bool) {
	if a.EndDate == nil {
		return Period{}, false
	}

	return PeriodOf(*a.EndDate), true
}
