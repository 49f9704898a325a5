// Package deadline turns a start/end date pair into a business-day countdown
// and raises a one-shot notification when the deadline gets close.
package deadline

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/timeutil"
)

const (
	// DefaultThreshold is the countdown at or below which a notification fires.
	DefaultThreshold = 15
	// DefaultField receives the countdown.
	DefaultField = "Remaining Days"
)

// Notification is an in-memory alert about a single record field.
type Notification struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Until   string `json:"until"`
}

// BusinessDays counts the days from max(now, start) through end, skipping
// Sundays. Days are stepped one calendar day at a time and compared as
// instants, so an effective start later in the day than end's time of day
// excludes end itself.
func BusinessDays(now, start, end time.Time) int {
	from := start
	if now.After(from) {
		from = now
	}
	count := 0
	for d := from; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// Watcher recomputes the countdown of a record and keeps the notifications it
// raised. Notifications are only ever appended, at most one per field, until
// Reset.
type Watcher struct {
	Threshold int
	Field     string
	Now       func() time.Time

	mu            sync.Mutex
	notifications []Notification
}

// NewWatcher returns a Watcher with the default threshold and field.
func NewWatcher() *Watcher {
	return &Watcher{Threshold: DefaultThreshold, Field: DefaultField, Now: time.Now}
}

func (w *Watcher) field() string {
	if w.Field == "" {
		return DefaultField
	}
	return w.Field
}

func (w *Watcher) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

// Apply writes the countdown into a copy of r when both dates are set, and
// raises a notification if it is within the threshold and none exists yet for
// the field. The boolean is false when a date is missing and r is returned
// unchanged.
func (w *Watcher) Apply(r record.Record, start, end *time.Time) (record.Record, int, bool) {
	if start == nil || end == nil {
		return r, 0, false
	}
	days := BusinessDays(w.now(), *start, *end)
	field := w.field()
	out := r.With(field, strconv.Itoa(days))

	w.mu.Lock()
	defer w.mu.Unlock()
	if days <= w.Threshold && !w.hasLocked(field) {
		w.notifications = append(w.notifications, Notification{
			Field:   field,
			Message: fmt.Sprintf("Only %d day(s) left until project deadline!", days),
			Until:   timeutil.FormatDate(*end),
		})
	}
	return out, days, true
}

// ApplyFields reads startField and endField from r as YYYY-MM-DD dates and
// applies them. Blank or unparsable dates count as unset.
func (w *Watcher) ApplyFields(r record.Record, startField, endField string) (record.Record, int, bool) {
	return w.Apply(r, dateField(r, startField), dateField(r, endField))
}

func dateField(r record.Record, field string) *time.Time {
	raw := r.String(field)
	if raw == "" {
		return nil
	}
	t, err := timeutil.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &t
}

func (w *Watcher) hasLocked(field string) bool {
	for _, n := range w.notifications {
		if n.Field == field {
			return true
		}
	}
	return false
}

// Notifications returns a copy of the raised notifications.
func (w *Watcher) Notifications() []Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Notification, len(w.notifications))
	copy(out, w.notifications)
	return out
}

// Reset drops every notification.
func (w *Watcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notifications = nil
}
