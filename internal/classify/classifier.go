// Package classify derives transaction signals from keyword tables matched
// against merchant names and raw message text. All functions are pure:
// classifying the same input twice yields identical results.
package classify

import (
	"strings"

	"github.com/mehdib/finsms/internal/domain"
)

// Signals are the four independent outputs of classification. IsBill covers
// keyword hits only; the ingestion pipeline additionally treats an extracted
// due date as bill evidence.
type Signals struct {
	Direction   domain.Direction
	Category    domain.Category
	IsBill      bool
	IsRecurring bool
}

// Classify computes all signals for one message.
func Classify(merchant, rawText string) Signals {
	return Signals{
		Direction:   Direction(rawText),
		Category:    Categorize(merchant, rawText),
		IsBill:      IsBill(rawText),
		IsRecurring: IsRecurring(rawText),
	}
}

// Direction returns credit when any credit keyword appears in the text,
// debit otherwise. Absent text defaults to debit.
func Direction(rawText string) domain.Direction {
	if containsAny(strings.ToLower(rawText), creditKeywords) {
		return domain.DirectionCredit
	}

	return domain.DirectionDebit
}

// Categorize returns the first matching category from the priority-ordered
// table, checking both the merchant name and the raw text. Falls back to
// "other".
func Categorize(merchant, rawText string) domain.Category {
	merchant = strings.ToLower(merchant)
	rawText = strings.ToLower(rawText)

	for _, rule := range categoryTable {
		for _, kw := range rule.Keywords {
			if strings.Contains(merchant, kw) || strings.Contains(rawText, kw) {
				return rule.Category
			}
		}
	}

	return domain.CategoryOther
}

// IsBill reports whether any bill keyword appears in the text.
func IsBill(rawText string) bool {
	return containsAny(strings.ToLower(rawText), billKeywords)
}

// IsRecurring reports whether any recurrence keyword appears in the text.
func IsRecurring(rawText string) bool {
	return containsAny(strings.ToLower(rawText), recurringKeywords)
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}

	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}
