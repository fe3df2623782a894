package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostCenterShare is a frozen allocation line inside a payment record. Values
// are computed from the account's cost centers at settlement time and never
// recomputed afterwards.
type CostCenterShare struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
	Value   decimal.Decimal `json:"value"`
}

// PaymentRecord marks one occurrence of an account as settled. The period it
// settles, not the payment date, is its identity together with the account:
// at most one record exists per (AccountID, PaidMonth).
type PaymentRecord struct {
	ID                  string
	TenantID            string
	AccountID           string
	PaidMonth           Period
	PaidDate            time.Time
	Amount              decimal.Decimal
	InvoiceNumbers      []string
	Recipient           string
	CostCentersSnapshot []CostCenterShare
	CreatedAt           time.Time
}

// SnapshotCostCenters computes the frozen allocation lines for a settlement
// of amount across the given cost centers. Each value is the percentage of
// the amount rounded to cents; the rounding remainder goes to the last line
// so the snapshot always sums to the full amount.
func SnapshotCostCenters(centers []CostCenter, amount decimal.Decimal) []CostCenterShare {
	if len(centers) == 0 {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	shares := make([]CostCenterShare, len(centers))

	allocated := decimal.Zero
	for i, cc := range centers {
		value := amount.Mul(cc.Percent).Div(hundred).Round(2)
		if i == len(centers)-1 {
			value = amount.Sub(allocated)
		}

		shares[i] = CostCenterShare{
			Code:    cc.Code,
			Percent: cc.Percent,
			Value:   value,
		}
		allocated = allocated.Add(value)
	}

	return shares
}
