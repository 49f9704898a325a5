package options

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Output string

	out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().StringVarP(&po.Output, "output", "o", "table",
		"Output format. One of 'table', 'json' or 'yaml'.")
}

// Printer builds the printer for the selected format.
func (o *OutputOptions) Printer(out io.Writer) (*printers.PrettyPrint, error) {
	o.out = out
	return printers.New(out, o.Output)
}

// Structured reports whether json or yaml output was asked for.
func (o *OutputOptions) Structured() bool {
	return o.Output == string(printers.FormatJSON) || o.Output == string(printers.FormatYAML)
}

// HandleError prints err as a json object for structured output and swallows
// it; otherwise err is returned unchanged. The object goes to the writer last
// given to Printer, or color.Output.
func (o *OutputOptions) HandleError(err error) error {
	if o.Structured() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		w := o.out
		if w == nil {
			w = color.Output
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}
	return err
}
