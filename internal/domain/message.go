package domain

// Entity labels produced by the text extractor.
const (
	LabelProvider  = "PROVIDER"
	LabelService   = "SERVICE"
	LabelAccount   = "ACCOUNT"
	LabelBillMonth = "BILL_MONTH"
	LabelAmount    = "AMOUNT"
	LabelDueDate   = "DUE_DATE"
	LabelURL       = "URL"
)

// ParsedMessage is the flat field set extracted from one inbound message.
// Every field except RawText is optional; an empty string means the extractor
// found no matching entity. Immutable after creation.
type ParsedMessage struct {
	Provider       string
	Service        string
	AccountRef     string
	BillMonth      string
	AmountLiteral  string
	DueDateLiteral string
	URL            string
	RawText        string
}

// Merchant resolves the merchant name: provider first, then service,
// then "Unknown".
func (m ParsedMessage) Merchant() string {
	if m.Provider != "" {
		return m.Provider
	}

	if m.Service != "" {
		return m.Service
	}

	return "Unknown"
}
