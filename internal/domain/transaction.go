package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction moves money out of or into
// an account.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Source tags where a transaction came from.
type Source string

const (
	SourceMessage Source = "sms"
	SourceManual  Source = "manual"
)

// Category is a spending category assigned by the classifier.
type Category string

const (
	CategoryUtilities     Category = "utilities"
	CategoryGroceries     Category = "groceries"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// MaxDescriptionLen is the maximum number of runes stored in a transaction
// description.
const MaxDescriptionLen = 500

// Transaction is a durable financial record extracted from a message or
// entered manually. Never mutated after creation by this service.
type Transaction struct {
	ID          string
	AccountID   string
	Amount      decimal.Decimal
	Direction   Direction
	Category    Category
	Merchant    string
	Source      Source
	Description string
	CreatedAt   time.Time
}

// Validate checks invariants before persistence.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return ErrAccountRequired
	}

	if t.Direction != DirectionDebit && t.Direction != DirectionCredit {
		return ErrInvalidDirection
	}

	if t.Source != SourceMessage && t.Source != SourceManual {
		return ErrInvalidSource
	}

	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// TruncateDescription shortens free text to MaxDescriptionLen runes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDescriptionLen {
		return s
	}

	return string(runes[:MaxDescriptionLen])
}
