package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/runner/info"
	"tableflip.dev/bizdesk/pkg/runner/keys"
	"tableflip.dev/bizdesk/pkg/runner/watch"
)

func addKeys(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List every key in the local store.",
		Example: `
bizdesk keys
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			k := keys.Keys{App: e.App, Printer: pp}
			return output.HandleError(k.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about collections and where they are stored.",
		Example: `
bizdesk info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			s := info.Info{Config: e.Config, App: e.App, Printer: pp}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command) {
	var show bool

	cmd := &cobra.Command{
		Use:   "watch [key...]",
		Short: "Follow changes other processes make to the store.",
		Example: `
bizdesk watch
bizdesk watch Clients --show
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
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			w := watch.Watch{App: e.App, Printer: pp, Keys: args, Show: show}
			return output.HandleError(w.Do(ctx))
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Reprint a collection when it changes.")

	topLevel.AddCommand(cmd)
}
