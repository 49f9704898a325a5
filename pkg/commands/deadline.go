package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/commands/options"
	"tableflip.dev/bizdesk/pkg/runner/deadline"
)

func addDeadline(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	var start, end string

	cmd := &cobra.Command{
		Use:   "deadline <id>",
		Short: "Set a project's dates and count the business days left.",
		Long: `Set the Start Date and End Date of a record and store the number of days
left before the end, skipping Sundays. The end is a date or a span from the
start such as 3w or 2w4d. A warning is printed when 15 days or fewer remain.`,
		Example: `
bizdesk deadline C1 --end 2025-03-20
bizdesk deadline C1 --start 2025-03-03 --end 3w
`,
		Args: cobra.ExactArgs(1),
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
			d := deadline.Deadline{
				App:     e.App,
				Printer: pp,
				Key:     co.Key,
				ID:      args[0],
				Start:   start,
				End:     end,
			}
			return output.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddCollectionArgs(cmd, co, collection.KeyClients)
	cmd.Flags().StringVar(&start, "start", "", "Start date as YYYY-MM-DD, defaults to today.")
	cmd.Flags().StringVar(&end, "end", "", "End date as YYYY-MM-DD or a span like 3w.")
	_ = cmd.MarkFlagRequired("end")

	addDeadlineScan(cmd)
	topLevel.AddCommand(cmd)
}

func addDeadlineScan(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "scan [collection...]",
		Short: "Recompute the countdown of every dated record.",
		Example: `
bizdesk deadline scan
bizdesk deadline scan Clients -o json
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
			s := deadline.Scan{App: e.App, Printer: pp, Keys: args}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	parent.AddCommand(cmd)
}
