// Package set provides the runner that adds or edits a record.
package set

import (
	"context"
	"errors"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
	"tableflip.dev/bizdesk/pkg/record"
)

// Set upserts Record into the collection under Key.
type Set struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Key     string
	Record  record.Record
	// Merge keeps stored fields that Record does not mention.
	Merge bool
	// Strict enforces the collection's required fields.
	Strict    bool
	CreatedBy string
}

// Do saves the record and prints it with any deadline alerts. The change is
// printed even when it could not be persisted, followed by the error.
func (s *Set) Do(ctx context.Context) error {
	if s.App == nil {
		return errors.New("can not set, no store")
	}
	meta, _ := collection.Lookup(s.Key)
	opts := app.SetOptions{Merge: s.Merge, CreatedBy: s.CreatedBy}
	if s.Strict {
		opts.Required = meta.Required
	}

	res, err := s.App.Set(ctx, s.Key, s.Record, opts)
	if res.Record == nil {
		return err
	}
	if s.Printer.Structured() {
		if perr := s.Printer.Value(res.Record); perr != nil {
			return perr
		}
		return err
	}

	verb := "updated"
	if res.Created {
		verb = "added"
	}
	if err == nil {
		s.Printer.Success("%s %s in %s", verb, res.Record.ID(meta.IDField), meta.Title)
	}
	if perr := s.Printer.Record(meta.IDField, res.Record); perr != nil {
		return perr
	}
	s.Printer.Notifications(res.Notifications)
	return err
}
