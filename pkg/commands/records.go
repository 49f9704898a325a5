package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/commands/options"
	"tableflip.dev/bizdesk/pkg/runner/get"
	"tableflip.dev/bizdesk/pkg/runner/remove"
	"tableflip.dev/bizdesk/pkg/runner/set"
)

func addGet(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get [collection]",
		Short: "Print a collection or one record.",
		Long: `Print the records of a collection. Collections with default data are
seeded the first time they are read. When signed in as anything but Admin,
only records you created are shown.`,
		Example: `
bizdesk get Employees
bizdesk get Clients --fields "Client Name,Remaining Days"
bizdesk get domains --id 1 -o yaml
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: options.CollectionKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				co.Key = args[0]
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			pp, err := output.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, err := e.session(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			g := get.Get{
				App:     e.App,
				Printer: pp,
				Key:     co.Key,
				ID:      io.ID,
				Fields:  co.FieldList(),
				Session: s,
			}
			return output.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddCollectionArgs(cmd, co, collection.KeyClients)
	options.AddFieldsArg(cmd, co, "Comma separated columns to print.")
	options.AddIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addSet(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	ro := &options.RecordOptions{}

	cmd := &cobra.Command{
		Use:   "set [collection]",
		Short: "Add or edit a record.",
		Long: `Add a record, or edit the record with the same id. A new record without
an id gets one. Client records with a Start Date and End Date get their
Remaining Days recomputed and warn when the deadline is close.`,
		Example: `
bizdesk set Clients -s "Client Name=Acme" -s Purpose=Website -s "Contact No=9876543210" \
  -s "Start Date=2025-03-03" -s "End Date=2025-03-20"
bizdesk set @monthly_payments --json '{"clientName":"Acme","amount":2500,"date":"2025-03-01"}'
bizdesk set domains -s id=1 -s status=Expired
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: options.CollectionKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				co.Key = args[0]
			}
			r, err := ro.Record()
			if err != nil {
				return err
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			pp, err := output.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s := set.Set{
				App:     e.App,
				Printer: pp,
				Key:     co.Key,
				Record:  r,
				Merge:   ro.Merge,
				Strict:  ro.Strict,
			}
			if sess, err := e.session(cmd.Context()); err == nil && sess != nil {
				s.CreatedBy = sess.FirstName
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddCollectionArgs(cmd, co, collection.KeyClients)
	options.AddRecordArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}

	cmd := &cobra.Command{
		Use:     "remove [id...]",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete records by id.",
		Example: `
bizdesk remove -c Employees EMP1003
bizdesk rm -c hosting 2 3
`,
		Args: cobra.MinimumNArgs(1),
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
			r := remove.Remove{App: e.App, Printer: pp, Key: co.Key, IDs: args}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddCollectionArgs(cmd, co, collection.KeyClients)

	topLevel.AddCommand(cmd)
}
