package classify

import "github.com/mehdib/finsms/internal/domain"

// CategoryRule pairs a keyword set with the category it assigns.
type CategoryRule struct {
	Category domain.Category
	Keywords []string
}

// categoryTable is matched in order; the first rule with a hit wins and
// exactly one category is ever assigned. Keyword sets are static
// configuration, not user-editable at runtime.
var categoryTable = []CategoryRule{
	{
		Category: domain.CategoryUtilities,
		Keywords: []string{
			"electricity", "water", "internet", "phone", "mobile",
			"telecom", "inwi", "iam", "orange", "maroc telecom",
			"fibre", "wifi", "électricité", "eau",
		},
	},
	{
		Category: domain.CategoryGroceries,
		Keywords: []string{"grocery", "supermarket", "marjane", "carrefour", "acima"},
	},
	{
		Category: domain.CategoryTransport,
		Keywords: []string{"uber", "taxi", "fuel", "careem", "transport", "parking"},
	},
	{
		Category: domain.CategoryEntertainment,
		Keywords: []string{"netflix", "spotify", "cinema", "game", "subscription"},
	},
}

var creditKeywords = []string{
	"credited", "received", "deposited", "refund", "credit", "reçu",
}

var billKeywords = []string{
	"bill", "invoice", "due", "payment due", "facture",
	"payable", "échéance", "montant à payer",
}

var recurringKeywords = []string{
	"monthly", "subscription", "recurring", "mensuel",
	"abonnement", "récurrent",
}

// CategoryTable exposes the ordered rules so tests can enumerate every entry.
func CategoryTable() []CategoryRule {
	return categoryTable
}
