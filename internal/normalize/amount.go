// Package normalize turns loosely formatted message literals into exact values.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// amountScale is the number of fractional digits kept on normalized amounts.
const amountScale = 2

// Amount converts a currency literal into an exact decimal rounded to two
// fractional digits. It is a heuristic, not a locale-aware parser: a lone
// comma is always treated as the decimal point, so European thousands-only
// literals like "1,234" parse as 1.23. Unparseable input degrades to 0.00
// rather than failing the pipeline.
func Amount(literal string) decimal.Decimal {
	cleaned := stripNonNumeric(literal)
	if cleaned == "" {
		return decimal.Zero.Round(amountScale)
	}

	switch {
	case strings.Contains(cleaned, ",") && !strings.Contains(cleaned, "."):
		// Comma as decimal separator (European format).
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Contains(cleaned, ","):
		// Comma as thousands separator; period stays the decimal point.
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero.Round(amountScale)
	}

	return d.Round(amountScale)
}

// stripNonNumeric drops everything but digits, commas and periods.
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
