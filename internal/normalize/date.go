package normalize

import (
	"strings"
	"time"
)

// dateLayouts is tried top to bottom; the first structurally valid match wins.
// Day-first layouts come before month-first so "12/03/2025" reads as 12 March.
// Non-padded layouts so "2/3/2025" and "12/03/2025" both parse.
var dateLayouts = []string{
	"2/1/2006",
	"2006-1-2",
	"1/2/2006",
	"2-1-2006",
	"2.1.2006",
	"2006/1/2",
}

// Date parses a due-date literal against the known layouts. Returns nil when
// the literal is empty or matches none of them; callers treat nil as "no due
// date extracted".
func Date(literal string) *time.Time {
	literal = strings.TrimSpace(literal)
	if literal == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, literal)
		if err == nil {
			return &t
		}
	}

	return nil
}
