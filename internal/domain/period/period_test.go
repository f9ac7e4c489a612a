package period

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	p, err := Parse("2024-02")
	if err != nil {
		t.Fatalf("Parse(2024-02) returned error: %v", err)
	}
	if p.Year != 2024 || p.Month != time.February {
		t.Errorf("Parse(2024-02) = %v", p)
	}

	invalid := []string{"", "2024", "2024-13", "2024-1", "02-2024", "2024-02-01"}
	for _, s := range invalid {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestString(t *testing.T) {
	p := Period{Year: 2024, Month: time.March}
	if got := p.String(); got != "2024-03" {
		t.Errorf("String() = %q, want 2024-03", got)
	}
}

func TestStartEndContains(t *testing.T) {
	p := Period{Year: 2024, Month: time.February}

	if got := p.Start(); !got.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start() = %v", got)
	}
	if !p.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)) {
		t.Error("Contains(last leap day) = false")
	}
	if p.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Contains(next month start) = true")
	}
}

func TestDays(t *testing.T) {
	cases := []struct {
		period string
		want   int
	}{
		{"2024-02", 29},
		{"2023-02", 28},
		{"2024-01", 31},
		{"2024-04", 30},
	}
	for _, c := range cases {
		p, err := Parse(c.period)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.period, err)
		}
		if got := len(p.Days()); got != c.want {
			t.Errorf("len(Days()) for %s = %d, want %d", c.period, got, c.want)
		}
	}
}

func TestPrev(t *testing.T) {
	p := Period{Year: 2024, Month: time.January}
	prev := p.Prev()
	if prev.Year != 2023 || prev.Month != time.December {
		t.Errorf("Prev() = %v, want 2023-12", prev)
	}
}
