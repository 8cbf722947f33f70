package engine

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	now := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	if d := Today(now); d != "2024-01-31" {
		t.Fatalf("Today=%q", d)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d != "2024-02-29" {
		t.Fatalf("d=%q", d)
	}

	zero, err := ParseDate("")
	if err != nil {
		t.Fatalf("ParseDate empty: %v", err)
	}
	if !zero.IsZero() {
		t.Fatalf("empty input should map to the zero Date")
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestAddDaysAcrossBoundaries(t *testing.T) {
	cases := []struct {
		in   Date
		n    int
		want Date
	}{
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-01", -1, "2024-02-29"},
		{"", 1, ""},
	}
	for _, c := range cases {
		if got := c.in.AddDays(c.n); got != c.want {
			t.Fatalf("%q.AddDays(%d)=%q, want %q", c.in, c.n, got, c.want)
		}
	}
}
