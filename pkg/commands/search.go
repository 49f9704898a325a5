package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/commands/options"
	"tableflip.dev/bizdesk/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Find records by a case-insensitive substring.",
		Long: `Find records whose searched fields contain the query, ignoring case.
An empty query matches everything. Each collection has default fields to
search; --fields overrides them.`,
		Example: `
bizdesk search acme
bizdesk search -c Employees --fields "Emp Name" priya
bizdesk search -c domains -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			pp, err := output.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s := search.Search{
				App:         e.App,
				Printer:     pp,
				Key:         co.Key,
				Query:       strings.Join(args, " "),
				Fields:      co.FieldList(),
				Interactive: i.Interactive,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddCollectionArgs(cmd, co, collection.KeyClients)
	options.AddFieldsArg(cmd, co, "Comma separated fields to search.")
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
