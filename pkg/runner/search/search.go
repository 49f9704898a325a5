// Package search provides the runner that filters a collection.
package search

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
	tuisearch "tableflip.dev/bizdesk/pkg/tui/search"
)

// Search prints the records of Key matching Query. In interactive mode the
// query is typed live and the chosen record is printed.
type Search struct {
	App         *app.Service
	Printer     *printers.PrettyPrint
	Key         string
	Query       string
	Fields      []string
	Interactive bool
}

// Do runs the search.
func (s *Search) Do(ctx context.Context) error {
	if s.App == nil {
		return errors.New("can not search, no store")
	}
	meta, _ := collection.Lookup(s.Key)
	fields := s.App.SearchFields(s.Key, s.Fields...)

	if !s.Interactive {
		items, err := s.App.Search(ctx, s.Key, s.Query, fields...)
		if err != nil {
			return err
		}
		return s.Printer.Records(meta.Title, meta.IDField, items)
	}

	items, err := s.App.List(ctx, s.Key, app.ListOptions{Seed: true})
	if err != nil {
		return err
	}
	m := tuisearch.New(meta.Title, items, meta.IDField, fields...)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if sel := final.(tuisearch.Model).Selected(); sel != nil {
		return s.Printer.Record(meta.IDField, sel)
	}
	return nil
}
