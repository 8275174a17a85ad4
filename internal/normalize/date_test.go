package normalize

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    time.Time
	}{
		{"slash day first", "12/03/2025", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"iso", "2025-03-12", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"dash day first", "12-03-2025", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"dot day first", "12.03.2025", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"slash year first", "2025/03/12", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"single digit fields", "2/3/2025", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", " 12/03/2025 ", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Date(tt.literal)
			if got == nil {
				t.Fatalf("Date(%q) = nil, want %s", tt.literal, tt.want)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Date(%q) = %s, want %s", tt.literal, got, tt.want)
			}
		})
	}
}

// "12/03/2025" must read as 12 March, not December 3: the day-first layout is
// tried before the month-first one even though both would match.
func TestDate_DayFirstPrecedence(t *testing.T) {
	got := Date("12/03/2025")
	if got == nil {
		t.Fatal("expected a parsed date")
	}

	if got.Day() != 12 || got.Month() != time.March || got.Year() != 2025 {
		t.Errorf("expected 12 March 2025, got %s", got)
	}
}

func TestDate_Unparseable(t *testing.T) {
	for _, literal := range []string{"", "  ", "Mars 2025", "99/99/2025", "not a date"} {
		if got := Date(literal); got != nil {
			t.Errorf("Date(%q) = %s, want nil", literal, got)
		}
	}
}
