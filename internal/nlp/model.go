package nlp

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Pattern is one labeled recognition rule of the model file. Group selects
// the capture group holding the entity span; 0 means the whole match.
type Pattern struct {
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
	Group   int    `json:"group"`
}

type rule struct {
	label string
	re    *regexp.Regexp
	group int
}

// Model is the compiled recognition model. It is loaded once at process
// startup and shared read-only for the process lifetime; there is no
// teardown.
type Model struct {
	rules []rule
}

// NewModel compiles a pattern set. Any invalid pattern aborts model
// construction so the service can refuse to start instead of degrading
// per request.
func NewModel(patterns []Pattern) (*Model, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("recognition model has no patterns")
	}

	rules := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for label %s: %w", p.Label, err)
		}

		if p.Group < 0 || p.Group >= re.NumSubexp()+1 {
			return nil, fmt.Errorf("pattern for label %s: capture group %d out of range", p.Label, p.Group)
		}

		rules = append(rules, rule{label: p.Label, re: re, group: p.Group})
	}

	return &Model{rules: rules}, nil
}

// LoadModel reads a JSON pattern file and compiles it.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recognition model %s: %w", path, err)
	}

	var patterns []Pattern
	if err := json.Unmarshal(data, &patterns); err != nil {
		return nil, fmt.Errorf("parse recognition model %s: %w", path, err)
	}

	return NewModel(patterns)
}

// entities runs every rule over the text and returns the first matching span
// per label. Rules are ordered; a later rule never overrides an earlier hit
// for the same label.
func (m *Model) entities(text string) map[string]string {
	found := make(map[string]string)

	for _, r := range m.rules {
		if _, ok := found[r.label]; ok {
			continue
		}

		match := r.re.FindStringSubmatch(text)
		if match == nil || match[r.group] == "" {
			continue
		}

		found[r.label] = match[r.group]
	}

	return found
}
