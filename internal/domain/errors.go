package domain

import "errors"

var (
	// Ingestion errors
	ErrIngestionFailed = errors.New("message ingestion failed")
	ErrEmptyMessage    = errors.New("message text is empty")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidDirection    = errors.New("direction must be debit or credit")
	ErrInvalidSource       = errors.New("source must be sms or manual")
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrAccountRequired     = errors.New("account id is required")

	// Bill errors
	ErrBillNotFound      = errors.New("bill not found")
	ErrInvalidBillStatus = errors.New("bill status must be pending, paid or overdue")
	ErrDueDateRequired   = errors.New("bill due date is required")
	ErrMerchantRequired  = errors.New("merchant is required")
)
