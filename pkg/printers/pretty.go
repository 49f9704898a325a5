// Package printers renders records and results for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"tableflip.dev/bizdesk/pkg/deadline"
	"tableflip.dev/bizdesk/pkg/record"
)

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// DefaultCellWidth is where long cell values are cut.
const DefaultCellWidth = 32

// PrettyPrint writes results to Out.
type PrettyPrint struct {
	Out       io.Writer
	Format    Format
	CellWidth uint

	title *color.Color
	faint *color.Color
	id    *color.Color
	bad   *color.Color
	warn  *color.Color
	good  *color.Color
}

// New returns a printer for out. Colors are dropped when out is not a
// terminal.
func New(out io.Writer, format string) (*PrettyPrint, error) {
	f := Format(strings.ToLower(strings.TrimSpace(format)))
	switch f {
	case "":
		f = FormatTable
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q, want table, json or yaml", format)
	}
	pp := &PrettyPrint{
		Out:       out,
		Format:    f,
		CellWidth: DefaultCellWidth,
		title:     color.New(color.Bold, color.Underline),
		faint:     color.New(color.Faint),
		id:        color.New(color.FgHiYellow, color.Faint),
		bad:       color.New(color.FgRed, color.Bold),
		warn:      color.New(color.FgYellow),
		good:      color.New(color.FgGreen),
	}
	if !IsTerminal(out) {
		for _, c := range []*color.Color{pp.title, pp.faint, pp.id, pp.bad, pp.warn, pp.good} {
			c.DisableColor()
		}
	}
	return pp, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Structured reports whether output is json or yaml.
func (pp *PrettyPrint) Structured() bool {
	return pp.Format == FormatJSON || pp.Format == FormatYAML
}

// Value writes v as json or yaml. In table format it falls back to json.
func (pp *PrettyPrint) Value(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding output")
	}
	if pp.Format == FormatYAML {
		if b, err = yaml.JSONToYAML(b); err != nil {
			return errors.Wrap(err, "encoding output")
		}
		_, err = pp.Out.Write(b)
		return err
	}
	_, err = fmt.Fprintln(pp.Out, string(b))
	return err
}

// Records prints a collection. With no fields, every field seen is shown,
// id field first.
func (pp *PrettyPrint) Records(title, idField string, items []record.Record, fields ...string) error {
	if pp.Structured() {
		if items == nil {
			items = []record.Record{}
		}
		return pp.Value(items)
	}

	_, _ = pp.title.Fprint(pp.Out, title)
	_, _ = pp.faint.Fprintf(pp.Out, " - %d %s\n", len(items), plural(len(items), "record", "records"))
	if len(items) == 0 {
		_, _ = pp.faint.Fprintln(pp.Out, "  none")
		return nil
	}

	if len(fields) == 0 {
		fields = Columns(idField, items)
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	header := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		header = append(header, pp.title.Sprint(f))
	}
	tbl.AddRow(header...)
	for _, r := range items {
		row := make([]interface{}, 0, len(fields))
		for _, f := range fields {
			v := pp.cell(r.String(f))
			if f == idField {
				v = pp.id.Sprint(v)
			}
			row = append(row, v)
		}
		tbl.AddRow(row...)
	}
	_, err := fmt.Fprintln(pp.Out, tbl)
	return err
}

// Record prints one record as field/value pairs.
func (pp *PrettyPrint) Record(idField string, r record.Record) error {
	if pp.Structured() {
		return pp.Value(r)
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	for _, f := range Columns(idField, []record.Record{r}) {
		tbl.AddRow(pp.faint.Sprint(f), r.String(f))
	}
	tbl.RightAlign(0)
	_, err := fmt.Fprintln(pp.Out, tbl)
	return err
}

// Notifications prints deadline alerts.
func (pp *PrettyPrint) Notifications(notes []deadline.Notification) {
	for _, n := range notes {
		_, _ = pp.warn.Fprintf(pp.Out, "⚠ %s (until %s)\n", n.Message, n.Until)
	}
}

// Success prints a one-line confirmation.
func (pp *PrettyPrint) Success(format string, args ...interface{}) {
	_, _ = pp.good.Fprintf(pp.Out, format+"\n", args...)
}

// Error prints a one-line error, the terminal's stand-in for a toast.
func (pp *PrettyPrint) Error(err error) {
	if err == nil {
		return
	}
	_, _ = pp.bad.Fprintf(pp.Out, "✗ %s\n", err)
}

// Line prints plain text.
func (pp *PrettyPrint) Line(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(pp.Out, format+"\n", args...)
}

// Faint prints dimmed text.
func (pp *PrettyPrint) Faint(format string, args ...interface{}) {
	_, _ = pp.faint.Fprintf(pp.Out, format+"\n", args...)
}

func (pp *PrettyPrint) cell(v string) string {
	v = strings.ReplaceAll(v, "\n", " ")
	if pp.CellWidth == 0 || ansi.PrintableRuneWidth(v) <= int(pp.CellWidth) {
		return v
	}
	return truncate.StringWithTail(v, pp.CellWidth, "…")
}

// Columns lists the fields present in items: idField first, then the rest
// sorted, with createdBy last.
func Columns(idField string, items []record.Record) []string {
	seen := map[string]bool{}
	var rest []string
	owner := false
	for _, r := range items {
		for k := range r {
			if seen[k] {
				continue
			}
			seen[k] = true
			switch k {
			case idField:
			case record.CreatedByField:
				owner = true
			default:
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	cols := make([]string, 0, len(rest)+2)
	if seen[idField] {
		cols = append(cols, idField)
	}
	cols = append(cols, rest...)
	if owner {
		cols = append(cols, record.CreatedByField)
	}
	return cols
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
