// Package watch provides the runner that follows store changes.
package watch

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
	"tableflip.dev/bizdesk/pkg/store"
)

// Watch prints a line, and optionally the collection, whenever a key changes.
type Watch struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	// Keys limits the output to these keys.
	Keys []string
	// Show reprints a changed collection.
	Show bool
}

// Do blocks until ctx is done.
func (w *Watch) Do(ctx context.Context) error {
	if w.App == nil {
		return errors.New("can not watch, no store")
	}
	events, err := w.App.Watch(ctx)
	if err != nil {
		return err
	}
	only := map[string]bool{}
	for _, k := range w.Keys {
		only[collection.Resolve(k)] = true
	}

	w.Printer.Faint("watching for changes, ctrl-c to stop")
	for ev := range events {
		if ev.Type == store.EventKeyChanged && (collection.Reserved(ev.Key) || len(only) > 0 && !only[ev.Key]) {
			continue
		}
		stamp := time.Now().Format("15:04:05")
		if ev.Type == store.EventInvalidated {
			w.Printer.Line("%s  %s", stamp, ev.Type)
			continue
		}
		w.Printer.Line("%s  %s %s", stamp, ev.Type, ev.Key)
		if !w.Show {
			continue
		}
		if collection.IsCollectionKey(ev.Key) {
			meta, _ := collection.Lookup(ev.Key)
			items, err := w.App.List(ctx, ev.Key, app.ListOptions{})
			if err != nil {
				w.Printer.Error(err)
				continue
			}
			if err := w.Printer.Records(meta.Title, meta.IDField, items); err != nil {
				return err
			}
		}
	}
	return nil
}
