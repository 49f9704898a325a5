package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func addVersion(topLevel *cobra.Command) {
	shortened := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get bizdesk version.",
		Example: `
bizdesk version
bizdesk version -o yaml
`,
		Run: func(_ *cobra.Command, _ []string) {
			format := output.Output
			if format != "yaml" {
				format = "json"
			}
			resp := goversion.FuncWithOutput(shortened, version, commit, date, format)
			fmt.Print(resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")

	topLevel.AddCommand(cmd)
}
