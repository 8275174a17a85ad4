// Package nlp extracts labeled entities from raw message text using a
// pattern-based recognition model.
package nlp

import "github.com/mehdib/finsms/internal/domain"

// Extractor runs the recognition model over inbound messages. It is safe for
// concurrent use; the model is immutable after construction.
type Extractor struct {
	model *Model
}

// NewExtractor creates an Extractor over a compiled model.
func NewExtractor(model *Model) *Extractor {
	return &Extractor{model: model}
}

// Extract produces a ParsedMessage from one UTF-8 message string. Fields the
// model finds no entity for stay empty; downstream components tolerate full
// absence. Extraction is synchronous and side-effect-free.
func (e *Extractor) Extract(text string) domain.ParsedMessage {
	ents := e.model.entities(text)

	return domain.ParsedMessage{
		Provider:       ents[domain.LabelProvider],
		Service:        ents[domain.LabelService],
		AccountRef:     ents[domain.LabelAccount],
		BillMonth:      ents[domain.LabelBillMonth],
		AmountLiteral:  ents[domain.LabelAmount],
		DueDateLiteral: ents[domain.LabelDueDate],
		URL:            ents[domain.LabelURL],
		RawText:        text,
	}
}
