// Package keys provides the runner that lists raw store keys.
package keys

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
)

// Keys prints every key in the store, marking the known collections.
type Keys struct {
	App     *app.Service
	Printer *printers.PrettyPrint
}

// Entry is one listed key.
type Entry struct {
	Key        string `json:"key"`
	Collection string `json:"collection,omitempty"`
}

// Do lists the keys.
func (k *Keys) Do(ctx context.Context) error {
	if k.App == nil {
		return errors.New("can not list keys, no store")
	}
	all, err := k.App.Keys(ctx)
	if err != nil {
		return err
	}
	entries := make([]Entry, 0, len(all))
	for _, key := range all {
		e := Entry{Key: key}
		if collection.IsCollectionKey(key) {
			m, _ := collection.Lookup(key)
			e.Collection = m.Title
		}
		entries = append(entries, e)
	}

	if k.Printer.Structured() {
		return k.Printer.Value(entries)
	}
	if len(entries) == 0 {
		k.Printer.Faint("no keys stored")
		return nil
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Collection"))
	for _, e := range entries {
		tbl.AddRow(e.Key, e.Collection)
	}
	_, err = fmt.Fprintln(k.Printer.Out, tbl)
	return err
}
