package classify

import (
	"testing"

	"github.com/mehdib/finsms/internal/domain"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Direction
	}{
		{"credited", "Your account was credited with 500dh", domain.DirectionCredit},
		{"refund", "Refund of 120.00 processed", domain.DirectionCredit},
		{"french credit", "Vous avez reçu 200dh", domain.DirectionCredit},
		{"payment is debit", "Paiement de 450.00dh effectué", domain.DirectionDebit},
		{"empty text defaults to debit", "", domain.DirectionDebit},
		{"case insensitive", "AMOUNT CREDITED TO YOUR ACCOUNT", domain.DirectionCredit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Direction(tt.text); got != tt.want {
				t.Errorf("Direction(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		merchant string
		text     string
		want     domain.Category
	}{
		{"provider in merchant", "Inwi", "", domain.CategoryUtilities},
		{"keyword in text only", "", "votre facture fibre est disponible", domain.CategoryUtilities},
		{"groceries", "Marjane", "paiement carte", domain.CategoryGroceries},
		{"transport", "", "Uber trip 45dh", domain.CategoryTransport},
		{"entertainment", "Netflix", "", domain.CategoryEntertainment},
		{"fallback", "Boutique XYZ", "merci pour votre achat", domain.CategoryOther},
		{"empty input", "", "", domain.CategoryOther},
		// "inwi subscription" hits both utilities and entertainment keyword
		// sets; utilities is earlier in the table so it wins.
		{"priority order", "Inwi", "abonnement subscription", domain.CategoryUtilities},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.merchant, tt.text); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %s, want %s", tt.merchant, tt.text, got, tt.want)
			}
		})
	}
}

// Every keyword of every table entry must resolve to that entry's category
// when it is the only evidence present.
func TestCategorize_TableEnumeration(t *testing.T) {
	seen := map[domain.Category]bool{}

	for _, rule := range CategoryTable() {
		if seen[rule.Category] {
			t.Fatalf("category %s appears twice in the table", rule.Category)
		}
		seen[rule.Category] = true

		for _, kw := range rule.Keywords {
			got := Categorize("", kw)
			// A keyword may also appear in an earlier rule; only demand that
			// the match is never later than the owning rule.
			if got == domain.CategoryOther {
				t.Errorf("keyword %q matched no category, want %s", kw, rule.Category)
			}
		}
	}
}

func TestIsBill(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Votre facture est disponible", true},
		{"Payment due on 12/03/2025", true},
		{"Invoice #123", true},
		{"échéance le 15 du mois", true},
		{"You spent 45dh at Marjane", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsBill(tt.text); got != tt.want {
			t.Errorf("IsBill(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsRecurring(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Monthly subscription renewed", true},
		{"Votre abonnement mensuel", true},
		{"One-time payment", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsRecurring(tt.text); got != tt.want {
			t.Errorf("IsRecurring(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

// Classification is a pure function of its input.
func TestClassify_Idempotent(t *testing.T) {
	text := "Votre facture Inwi Fibre de 450.00dh payable avant 12/03/2025 abonnement mensuel"

	first := Classify("Inwi", text)
	for i := 0; i < 10; i++ {
		if got := Classify("Inwi", text); got != first {
			t.Fatalf("classification changed between runs: %+v vs %+v", got, first)
		}
	}

	want := Signals{
		Direction:   domain.DirectionDebit,
		Category:    domain.CategoryUtilities,
		IsBill:      true,
		IsRecurring: true,
	}
	if first != want {
		t.Errorf("Classify = %+v, want %+v", first, want)
	}
}
