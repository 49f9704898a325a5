package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/bizdesk/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "bizdesk",
		Short: base.Wrap80("Manage clients, employees, projects, domains, hosting, SSL and payments from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addGet(topLevel)
	addSet(topLevel)
	addRemove(topLevel)
	addSearch(topLevel)
	addDeadline(topLevel)
	addKeys(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addLogin(topLevel)
	addRegister(topLevel)
	addLogout(topLevel)
	addWhoAmI(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
