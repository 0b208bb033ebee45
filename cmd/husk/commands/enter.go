package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newEnterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enter",
		Short: "Start an interactive shell inside the environment",
		Long: `Enter resolves the manifest, realizes the session environment and spawns
an interactive shell with every build input's bin directory on PATH and the
session hook installed. The shell's exit code becomes husk's exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := c.app.Enter(cmd.Context())
			c.exitCode = code
			return err
		},
	}
}
