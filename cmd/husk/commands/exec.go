package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run a single command inside the environment",
		Long: `Exec resolves the manifest, realizes the session environment and runs one
command inside it, routed through the hook interceptor. The command's exit
code becomes husk's exit code; command-not-found surfaces unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.app.Exec(cmd.Context(), args)
			c.exitCode = code
			return err
		},
	}
	// Stop flag parsing at the first positional so the wrapped command's own
	// flags pass through without a -- separator.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
