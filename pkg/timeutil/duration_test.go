package timeutil

import (
	"testing"
	"time"
)

func TestParseSpanComposite(t *testing.T) {
	days, label, err := ParseSpan("2w6d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 20 {
		t.Fatalf("expected 20 days, got %d", days)
	}
	if label != "2w6d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseSpanCanonical(t *testing.T) {
	days, label, err := ParseSpan("14 days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 14 || label != "2w" {
		t.Fatalf("expected 14 days as 2w, got %d %s", days, label)
	}
}

func TestParseSpanErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "3h", "0d"} {
		if _, _, err := ParseSpan(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Weekday() != time.Sunday || d.Hour() != 0 {
		t.Fatalf("expected Sunday midnight, got %v", d)
	}
	if FormatDate(d) != "2025-03-09" {
		t.Fatalf("unexpected format %s", FormatDate(d))
	}
	if _, err := ParseDate("09/03/2025"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
}

func TestResolveEnd(t *testing.T) {
	start, _ := ParseDate("2025-03-01")

	abs, err := ResolveEnd(start, "2025-03-21")
	if err != nil || FormatDate(abs) != "2025-03-21" {
		t.Fatalf("absolute end: %v %v", abs, err)
	}
	rel, err := ResolveEnd(start, "2w6d")
	if err != nil || FormatDate(rel) != "2025-03-21" {
		t.Fatalf("relative end: %v %v", rel, err)
	}
	if _, err := ResolveEnd(start, "soon"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseSpanBounded(t *testing.T) {
	if days, _, err := ParseSpan("521w3d"); err != nil || days != MaxSpanDays {
		t.Fatalf("expected the cap itself to parse, got %d %v", days, err)
	}
	for _, in := range []string{"3651d", "5000000w", "1317624576693539401w", "521w4d", "99999999999999999999d"} {
		if days, _, err := ParseSpan(in); err == nil {
			t.Fatalf("expected error for %q, got %d days", in, days)
		}
	}
}

func TestResolveEndBounded(t *testing.T) {
	start, _ := ParseDate("2025-03-03")
	if _, err := ResolveEnd(start, "5000000w"); err == nil {
		t.Fatalf("expected error for a huge span")
	}
	if _, err := ResolveEnd(start, "9999-12-31"); err == nil {
		t.Fatalf("expected error for a far away end date")
	}
	if end, err := ResolveEnd(start, "2035-02-28"); err != nil || FormatDate(end) != "2035-02-28" {
		t.Fatalf("expected an end inside the cap, got %v %v", end, err)
	}
}
