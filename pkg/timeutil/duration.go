// Package timeutil parses the calendar dates and day spans used by record
// date fields.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of every stored date field.
const DateLayout = "2006-01-02"

// MaxSpanDays bounds spans and resolved end dates to about ten years.
const MaxSpanDays = 3650

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitDays    = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseDate reads a YYYY-MM-DD date at local midnight.
func ParseDate(input string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(input), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", input)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseSpan parses a calendar span such as "20d", "3w" or "2w6d" and returns the
// number of days along with a canonical representation.
func ParseSpan(input string) (int, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", fmt.Errorf("empty span")
	}

	total := 0
	for len(remaining) > 0 {
		matches := spanPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid span segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid span value %q: %w", matches[1], err)
		}
		mult, ok := unitDays[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported span unit %q", matches[2])
		}
		if value > MaxSpanDays/mult || total+value*mult > MaxSpanDays {
			return 0, "", fmt.Errorf("span %q is longer than %d days", strings.TrimSpace(input), MaxSpanDays)
		}
		total += value * mult
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("span must be greater than zero")
	}
	return total, FormatSpan(total), nil
}

// FormatSpan renders a day count using week and day tokens.
func FormatSpan(days int) string {
	if days <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}

// ResolveEnd reads an end date that is either absolute (YYYY-MM-DD) or a span
// counted from start. Ends more than MaxSpanDays after start are rejected.
func ResolveEnd(start time.Time, input string) (time.Time, error) {
	if t, err := ParseDate(input); err == nil {
		if t.After(start.AddDate(0, 0, MaxSpanDays)) {
			return time.Time{}, fmt.Errorf("end %q is more than %d days after start", input, MaxSpanDays)
		}
		return t, nil
	}
	if !spanPattern.MatchString(strings.ToLower(input)) {
		return time.Time{}, fmt.Errorf("invalid end %q: want YYYY-MM-DD or a span like 3w", input)
	}
	days, _, err := ParseSpan(input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end %q: %w", input, err)
	}
	return start.AddDate(0, 0, days), nil
}
