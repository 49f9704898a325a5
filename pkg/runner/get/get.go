// Package get provides the runner that prints collections and records.
package get

import (
	"context"
	"errors"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
)

// Get prints a whole collection, or one record when ID is set.
type Get struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Key     string
	ID      string
	// Fields limits the printed columns.
	Fields []string
	// Session hides records owned by someone else for non-admins.
	Session *auth.Session
}

// Do loads the collection, seeding it on first use, and prints it.
func (g *Get) Do(ctx context.Context) error {
	if g.App == nil {
		return errors.New("can not get, no store")
	}
	meta, _ := collection.Lookup(g.Key)

	if g.ID != "" {
		r, err := g.App.Get(ctx, g.Key, g.ID)
		if err != nil {
			return err
		}
		return g.Printer.Record(meta.IDField, r)
	}

	items, err := g.App.List(ctx, g.Key, app.ListOptions{Seed: true, Session: g.Session})
	if err != nil {
		return err
	}
	return g.Printer.Records(meta.Title, meta.IDField, items, g.Fields...)
}
