// Package info provides the runner describing configuration and storage.
package info

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/config"
	"tableflip.dev/bizdesk/pkg/printers"
)

// Info prints where data lives and what each collection holds.
type Info struct {
	Config  *config.Config
	App     *app.Service
	Printer *printers.PrettyPrint
}

// Summary is the structured form of Info.
type Summary struct {
	Config      *config.Config `json:"config"`
	Collections []Collection   `json:"collections"`
}

// Collection describes one registered collection.
type Collection struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	IDField string `json:"idField"`
	Stored  bool   `json:"stored"`
	Records int    `json:"records"`
	Corrupt bool   `json:"corrupt,omitempty"`
}

// Do prints the summary. Nothing is seeded.
func (n *Info) Do(ctx context.Context) error {
	if n.App == nil || n.Config == nil {
		return errors.New("can not describe, no store")
	}
	report, err := n.App.Report(ctx)
	if err != nil {
		return err
	}
	sum := Summary{Config: n.Config}
	for _, c := range report {
		sum.Collections = append(sum.Collections, Collection{
			Key:     c.Meta.Key,
			Title:   c.Meta.Title,
			IDField: c.Meta.IDField,
			Stored:  c.Stored,
			Records: c.Records,
			Corrupt: c.Corrupt,
		})
	}
	if n.Printer.Structured() {
		return n.Printer.Value(sum)
	}

	if override := os.Getenv("BIZDESK_CONFIG_PATH"); override != "" {
		n.Printer.Line("BIZDESK_CONFIG_PATH found on env, using %s", override)
	} else {
		n.Printer.Faint("BIZDESK_CONFIG_PATH env var not set")
	}
	file := n.Config.File
	if file == "" {
		file = "none"
	}
	n.Printer.Line("Config file: %s", file)
	n.Printer.Line("Store:       %s at %s", n.Config.Backend, n.Config.Path)
	n.Printer.Line("Auth server: %s", n.Config.AuthURL)
	n.Printer.Line("")

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Collection"), bold.Sprint("Key"), bold.Sprint("Records"), bold.Sprint("State"))
	for _, c := range sum.Collections {
		state := "stored"
		switch {
		case c.Corrupt:
			state = color.RedString("unreadable")
		case !c.Stored:
			state = "not created"
		}
		tbl.AddRow(c.Title, c.Key, c.Records, state)
	}
	_, err = fmt.Fprintln(n.Printer.Out, tbl)
	return err
}
