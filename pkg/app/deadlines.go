package app

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/deadline"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/timeutil"
)

// DeadlineResult is the countdown written to one record.
type DeadlineResult struct {
	Record        record.Record
	Days          int
	Notifications []deadline.Notification
}

// Deadline sets the start and end dates of the record with id, recomputes its
// countdown and saves it.
func (s *Service) Deadline(ctx context.Context, key, id string, start, end time.Time) (DeadlineResult, error) {
	if err := s.check(key); err != nil {
		return DeadlineResult{}, err
	}
	c := s.Collection(key)
	items := c.Load(ctx, collection.Seed(key))
	r, ok := c.Find(items, id)
	if !ok {
		return DeadlineResult{}, errors.Wrapf(collection.ErrNotFound, "%s %q", key, id)
	}

	r = r.With(collection.FieldStartDate, timeutil.FormatDate(start))
	r = r.With(collection.FieldEndDate, timeutil.FormatDate(end))

	w := s.Watcher()
	r, days, _ := w.Apply(r, &start, &end)
	res := DeadlineResult{Record: r, Days: days, Notifications: w.Notifications()}
	_, err := c.Upsert(ctx, items, r)
	return res, err
}

// ScanItem is one recomputed record of a scan.
type ScanItem struct {
	ID           string
	Days         int
	Notification *deadline.Notification
}

// ScanResult summarises ScanDeadlines.
type ScanResult struct {
	Key     string
	Items   []ScanItem
	Skipped int
}

// ScanDeadlines recomputes the countdown of every record under key that has
// both dates, then saves the whole collection once. Each record is judged
// against the threshold on its own.
func (s *Service) ScanDeadlines(ctx context.Context, key string) (ScanResult, error) {
	if err := s.check(key); err != nil {
		return ScanResult{}, err
	}
	c := s.Collection(key)
	items := c.Load(ctx, collection.Seed(key))

	res := ScanResult{Key: c.Key()}
	out := make([]record.Record, 0, len(items))
	for _, r := range items {
		w := s.Watcher()
		next, days, ok := w.ApplyFields(r, collection.FieldStartDate, collection.FieldEndDate)
		out = append(out, next)
		if !ok {
			res.Skipped++
			continue
		}
		item := ScanItem{ID: next.ID(c.IDField()), Days: days}
		if notes := w.Notifications(); len(notes) > 0 {
			item.Notification = &notes[0]
		}
		res.Items = append(res.Items, item)
	}

	if len(res.Items) == 0 {
		return res, nil
	}
	return res, c.ReplaceAll(ctx, out)
}
