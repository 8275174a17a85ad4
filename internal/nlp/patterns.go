package nlp

import "github.com/mehdib/finsms/internal/domain"

// DefaultPatterns is the built-in recognition model, tuned for the carrier
// and merchant messages this service sees most (Moroccan providers, French
// and English wording). A deployment can replace it with a JSON model file
// via NER_MODEL_PATH.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Label:   domain.LabelProvider,
			Pattern: `(?i)\b(inwi|iam|maroc telecom|orange|lydec|redal|onee|netflix|spotify|uber|careem|marjane|carrefour|acima)\b`,
			Group:   1,
		},
		{
			Label:   domain.LabelService,
			Pattern: `(?i)\b(fibre|adsl|4g|mobile|internet|wifi|fixe)\b`,
			Group:   1,
		},
		{
			Label:   domain.LabelAccount,
			Pattern: `(?i)(?:num[ée]ro|n°|no\.?|r[ée]f(?:[ée]rence)?\.?|contrat|account)\s*:?\s*(\d{6,})`,
			Group:   1,
		},
		{
			Label:   domain.LabelBillMonth,
			Pattern: `(?i)\b((?:janvier|f[ée]vrier|mars|avril|mai|juin|juillet|ao[ûu]t|septembre|octobre|novembre|d[ée]cembre|january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4})\b`,
			Group:   1,
		},
		{
			Label:   domain.LabelAmount,
			Pattern: `(?i)\b(\d[\d.,]*\s?(?:dh|dhs|mad|dirhams?|eur|euros?|usd)\b|\d[\d.,]*\s?[€$])`,
			Group:   1,
		},
		{
			Label:   domain.LabelDueDate,
			Pattern: `(?i)(?:payable\s+avant|avant(?:\s+le)?|before|due(?:\s+on|\s+by)?|[ée]ch[ée]ance(?:\s+le)?)\s+(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|\d{4}-\d{1,2}-\d{1,2})`,
			Group:   1,
		},
		{
			Label:   domain.LabelURL,
			Pattern: `(?i)\b((?:https?://)?(?:[a-z0-9-]+\.)+[a-z]{2,}(?:/[^\s]*)?)`,
			Group:   1,
		},
	}
}
