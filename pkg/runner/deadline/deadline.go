// Package deadline provides runners that recompute project countdowns.
package deadline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
	"tableflip.dev/bizdesk/pkg/timeutil"
)

// Deadline sets the dates of one record and prints its countdown.
type Deadline struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Key     string
	ID      string
	// Start is YYYY-MM-DD; empty means today.
	Start string
	// End is YYYY-MM-DD or a span from Start such as "3w".
	End string
}

// Do writes the dates and countdown to the record.
func (d *Deadline) Do(ctx context.Context) error {
	if d.App == nil {
		return errors.New("can not set deadline, no store")
	}
	start, end, err := d.resolve()
	if err != nil {
		return err
	}

	res, err := d.App.Deadline(ctx, d.Key, d.ID, start, end)
	if res.Record == nil {
		return err
	}
	if d.Printer.Structured() {
		if perr := d.Printer.Value(res); perr != nil {
			return perr
		}
		return err
	}
	meta, _ := collection.Lookup(d.Key)
	d.Printer.Line("%s: %d business %s left (%s → %s)",
		res.Record.ID(meta.IDField), res.Days, dayWord(res.Days),
		timeutil.FormatDate(start), timeutil.FormatDate(end))
	d.Printer.Notifications(res.Notifications)
	return err
}

func (d *Deadline) resolve() (time.Time, time.Time, error) {
	var start time.Time
	if d.Start == "" {
		now := time.Now()
		if d.App.Now != nil {
			now = d.App.Now()
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	} else {
		var err error
		if start, err = timeutil.ParseDate(d.Start); err != nil {
			return start, start, err
		}
	}
	end, err := timeutil.ResolveEnd(start, d.End)
	return start, end, err
}

// Scan recomputes every dated record of Keys, or of every dated collection
// when Keys is empty.
type Scan struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Keys    []string
}

// Do runs the scan and prints one row per record.
func (s *Scan) Do(ctx context.Context) error {
	if s.App == nil {
		return errors.New("can not scan, no store")
	}
	keys := s.Keys
	if len(keys) == 0 {
		for _, m := range collection.Known() {
			if m.Dated {
				keys = append(keys, m.Key)
			}
		}
	}

	results := make([]app.ScanResult, 0, len(keys))
	var firstErr error
	for _, k := range keys {
		res, err := s.App.ScanDeadlines(ctx, k)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results = append(results, res)
	}

	if s.Printer.Structured() {
		if err := s.Printer.Value(results); err != nil {
			return err
		}
		return firstErr
	}

	bold := color.New(color.Bold)
	warn := color.New(color.FgYellow)
	for _, res := range results {
		meta, _ := collection.Lookup(res.Key)
		_, _ = bold.Fprintf(s.Printer.Out, "%s\n", meta.Title)
		if len(res.Items) == 0 {
			s.Printer.Faint("  no records with both dates")
			continue
		}
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint(meta.IDField), bold.Sprint("Days"), bold.Sprint("Alert"))
		for _, it := range res.Items {
			alert := ""
			if it.Notification != nil {
				alert = warn.Sprint(it.Notification.Message)
			}
			tbl.AddRow(it.ID, it.Days, alert)
		}
		_, _ = fmt.Fprintln(s.Printer.Out, tbl)
		if res.Skipped > 0 {
			s.Printer.Faint("  %d skipped without dates", res.Skipped)
		}
	}
	return firstErr
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
