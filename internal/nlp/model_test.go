package nlp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewModel_InvalidPattern(t *testing.T) {
	_, err := NewModel([]Pattern{{Label: "AMOUNT", Pattern: "([0-9"}})
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestNewModel_GroupOutOfRange(t *testing.T) {
	_, err := NewModel([]Pattern{{Label: "AMOUNT", Pattern: `\d+`, Group: 2}})
	if err == nil {
		t.Fatal("expected error for out-of-range capture group")
	}
}

func TestNewModel_Empty(t *testing.T) {
	_, err := NewModel(nil)
	if err == nil {
		t.Fatal("expected error for empty pattern set")
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	content := `[{"label": "AMOUNT", "pattern": "(?i)(\\d+)dh", "group": 1}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	model, err := LoadModel(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ents := model.entities("payer 450dh")
	if ents["AMOUNT"] != "450" {
		t.Errorf("expected amount 450, got %q", ents["AMOUNT"])
	}
}

func TestLoadModel_MissingFile(t *testing.T) {
	if _, err := LoadModel("/nonexistent/model.json"); err == nil {
		t.Fatal("expected error for missing model file")
	}
}

func TestLoadModel_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadModel(path); err == nil {
		t.Fatal("expected error for malformed model file")
	}
}

// A later rule must not override an earlier hit for the same label.
func TestModel_FirstMatchPerLabelWins(t *testing.T) {
	model, err := NewModel([]Pattern{
		{Label: "AMOUNT", Pattern: `first:(\d+)`, Group: 1},
		{Label: "AMOUNT", Pattern: `second:(\d+)`, Group: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	ents := model.entities("second:2 first:1")
	if ents["AMOUNT"] != "1" {
		t.Errorf("expected first rule to win, got %q", ents["AMOUNT"])
	}
}
