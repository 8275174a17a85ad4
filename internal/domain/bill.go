package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

// ValidBillStatus reports whether s is a known bill status.
func ValidBillStatus(s BillStatus) bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue:
		return true
	}

	return false
}

// Bill is a payable obligation detected in a message. TransactionID points at
// the transaction created in the same ingestion, when there was one; bills can
// outlive their transaction (FK is SET NULL on delete).
type Bill struct {
	ID            string
	TransactionID *string
	AccountID     string
	Merchant      string
	Amount        decimal.Decimal
	DueDate       time.Time
	Status        BillStatus
	IsRecurring   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks invariants before persistence.
func (b *Bill) Validate() error {
	if b.AccountID == "" {
		return ErrAccountRequired
	}

	if b.Merchant == "" {
		return ErrMerchantRequired
	}

	if b.DueDate.IsZero() {
		return ErrDueDateRequired
	}

	if !ValidBillStatus(b.Status) {
		return ErrInvalidBillStatus
	}

	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// BillStats aggregates bill amounts for one account.
type BillStats struct {
	TotalBills    int
	TotalAmount   decimal.Decimal
	PendingAmount decimal.Decimal
	OverdueAmount decimal.Decimal
	PaidAmount    decimal.Decimal
}
