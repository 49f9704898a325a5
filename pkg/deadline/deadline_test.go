package deadline

import (
	"testing"
	"time"

	"tableflip.dev/bizdesk/pkg/record"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func sundays(from, to time.Time) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			n++
		}
	}
	return n
}

func TestBusinessDaysFromToday(t *testing.T) {
	today := day(2025, 6, 10)
	now := today.Add(13 * time.Hour)
	end := today.AddDate(0, 0, 20)

	got := BusinessDays(now, today, end)
	want := 20 - sundays(today, today.AddDate(0, 0, 19))
	if got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestBusinessDaysThreeSundays(t *testing.T) {
	// 2025-03-01 is a Saturday; the 20 days through 03-20 hold three Sundays.
	start := day(2025, 3, 1)
	end := day(2025, 3, 20)
	now := day(2025, 2, 1)

	if got := BusinessDays(now, start, end); got != 17 {
		t.Fatalf("expected 17, got %d", got)
	}
}

func TestBusinessDaysNoSundays(t *testing.T) {
	start := day(2025, 3, 3)
	end := day(2025, 3, 8)
	if got := BusinessDays(start, start, end); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestBusinessDaysEndBeforeStart(t *testing.T) {
	start := day(2025, 3, 10)
	end := day(2025, 3, 1)
	if got := BusinessDays(day(2025, 1, 1), start, end); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestBusinessDaysStartInPast(t *testing.T) {
	now := day(2025, 3, 17)
	if got := BusinessDays(now, day(2025, 3, 1), day(2025, 3, 20)); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

// window returns an end date giving exactly n business days from start, which
// must not be a Sunday.
func window(start time.Time, n int) time.Time {
	end := start
	count := 1
	for count < n {
		end = end.AddDate(0, 0, 1)
		if end.Weekday() != time.Sunday {
			count++
		}
	}
	return end
}

func TestWatcherThreshold(t *testing.T) {
	start := day(2025, 3, 3)
	w := NewWatcher()
	w.Now = func() time.Time { return start }

	end16 := window(start, 16)
	r, days, ok := w.Apply(record.Record{"id": "p1"}, &start, &end16)
	if !ok || days != 16 {
		t.Fatalf("expected 16 days, got %d ok=%v", days, ok)
	}
	if r.String(DefaultField) != "16" {
		t.Fatalf("expected field 16, got %q", r.String(DefaultField))
	}
	if n := len(w.Notifications()); n != 0 {
		t.Fatalf("expected no notification at 16, got %d", n)
	}

	end15 := window(start, 15)
	_, days, _ = w.Apply(r, &start, &end15)
	if days != 15 {
		t.Fatalf("expected 15 days, got %d", days)
	}
	notes := w.Notifications()
	if len(notes) != 1 {
		t.Fatalf("expected one notification, got %d", len(notes))
	}
	if notes[0].Field != "Remaining Days" {
		t.Fatalf("unexpected field %q", notes[0].Field)
	}
	if notes[0].Message != "Only 15 day(s) left until project deadline!" {
		t.Fatalf("unexpected message %q", notes[0].Message)
	}
	if notes[0].Until != end15.Format("2006-01-02") {
		t.Fatalf("unexpected until %q", notes[0].Until)
	}

	end3 := window(start, 3)
	w.Apply(r, &start, &end15)
	w.Apply(r, &start, &end3)
	notes = w.Notifications()
	if len(notes) != 1 {
		t.Fatalf("expected still one notification, got %d", len(notes))
	}
	if notes[0].Message != "Only 15 day(s) left until project deadline!" {
		t.Fatalf("notification must not be updated, got %q", notes[0].Message)
	}

	w.Reset()
	if n := len(w.Notifications()); n != 0 {
		t.Fatalf("expected reset, got %d", n)
	}
}

func TestWatcherMissingDate(t *testing.T) {
	w := NewWatcher()
	in := record.Record{"id": "p1"}
	start := day(2025, 3, 3)
	out, _, ok := w.Apply(in, &start, nil)
	if ok {
		t.Fatalf("expected no computation without end date")
	}
	if _, set := out["Remaining Days"]; set {
		t.Fatalf("record must be unchanged")
	}
}

func TestWatcherApplyFields(t *testing.T) {
	w := NewWatcher()
	w.Now = func() time.Time { return day(2025, 2, 1) }
	in := record.Record{"Start Date": "2025-03-01", "End Date": "2025-03-20"}

	out, days, ok := w.ApplyFields(in, "Start Date", "End Date")
	if !ok || days != 17 || out.String("Remaining Days") != "17" {
		t.Fatalf("expected 17, got %d ok=%v", days, ok)
	}
	if _, set := in["Remaining Days"]; set {
		t.Fatalf("input record must not be modified")
	}

	if _, _, ok := w.ApplyFields(record.Record{"Start Date": "tomorrow"}, "Start Date", "End Date"); ok {
		t.Fatalf("expected unparsable dates to be treated as unset")
	}
}
