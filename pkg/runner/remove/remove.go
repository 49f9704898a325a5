// Package remove provides the runner that deletes records.
package remove

import (
	"context"
	"errors"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
)

// Remove deletes the records with IDs from the collection under Key.
type Remove struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Key     string
	IDs     []string
}

// Do removes each id in turn. Unknown ids are reported but not an error.
func (r *Remove) Do(ctx context.Context) error {
	if r.App == nil {
		return errors.New("can not remove, no store")
	}
	meta, _ := collection.Lookup(r.Key)
	for _, id := range r.IDs {
		_, removed, err := r.App.Remove(ctx, r.Key, id)
		if err != nil {
			return err
		}
		if removed {
			r.Printer.Success("removed %s from %s", id, meta.Title)
		} else {
			r.Printer.Faint("%s not in %s", id, meta.Title)
		}
	}
	return nil
}
