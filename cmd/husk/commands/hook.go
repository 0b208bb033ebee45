package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Print the session hook shell function",
		Long: `Hook prints the POSIX function that wraps the manifest's intercepted
command, for sourcing into a shell that was not started by husk enter:

    eval "$(husk hook)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Hook(cmd.Context())
		},
	}
}
