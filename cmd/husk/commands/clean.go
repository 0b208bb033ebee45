package commands

import (
	"github.com/spf13/cobra"

	"go.husk.sh/husk/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove husk state from the project",
		Long: `Clean removes state the tool wrote under .husk/. Without flags the whole
state directory goes, lockfile included. With --cache or --sessions only
the named subdirectories are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, _ := cmd.Flags().GetBool("cache")
			sessions, _ := cmd.Flags().GetBool("sessions")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Cache:    cache,
				Sessions: sessions,
			})
		},
	}
	cmd.Flags().Bool("cache", false, "Remove only the catalog cache")
	cmd.Flags().Bool("sessions", false, "Remove only realized session scripts")
	return cmd
}
