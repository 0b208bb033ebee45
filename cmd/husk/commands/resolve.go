package commands

import (
	"github.com/spf13/cobra"

	"go.husk.sh/husk/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the manifest and print the resolution report",
		Long: `Resolve maps every manifest request to a concrete package reference and
prints the channel, toolchain and build inputs in final order. With --write
the outcome is pinned to .husk/husk.lock.json so later sessions skip the
catalog until the manifest changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			write, _ := cmd.Flags().GetBool("write")
			refresh, _ := cmd.Flags().GetBool("refresh")

			return c.app.Resolve(cmd.Context(), app.ResolveOptions{
				Write:   write,
				Refresh: refresh,
			})
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Pin the resolution to the lockfile")
	cmd.Flags().BoolP("refresh", "r", false, "Bypass the lockfile and catalog cache")
	return cmd
}
