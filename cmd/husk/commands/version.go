package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.husk.sh/husk/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "husk version %s (commit: %s, date: %s)\n",
				build.Version, build.Commit, build.Date)
			return nil
		},
	}
}
