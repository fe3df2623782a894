package domain

import "errors"

var (
	// Supplier errors
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrInvalidSupplierName = errors.New("supplier name is required")

	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidDayOfMonth    = errors.New("day of month must be between 1 and 31")
	ErrInvalidDescription   = errors.New("description must be between 3 and 200 characters")
	ErrInvalidEndDate       = errors.New("end date cannot precede the creation month")
	ErrInvalidCostCenters   = errors.New("cost center percentages must sum to 100")
	ErrInvalidCostCenterPct = errors.New("cost center percentage must be positive")

	// Payment errors
	ErrPaymentNotFound        = errors.New("payment record not found")
	ErrPaymentAlreadyRecorded = errors.New("payment already recorded for this period")
	ErrEmptyInvoiceNumbers    = errors.New("at least one invoice number is required")
	ErrEmptyRecipient         = errors.New("recipient is required")

	// Period errors
	ErrInvalidPeriod = errors.New("invalid period key")
)
