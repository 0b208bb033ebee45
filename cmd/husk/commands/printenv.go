package commands

import (
	"github.com/spf13/cobra"

	"go.husk.sh/husk/internal/app"
)

func (c *CLI) newPrintEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print-env",
		Short: "Print the realized session environment",
		Long: `Print-env resolves the manifest and prints the realized session variables.
The shell format emits eval-safe export lines; json emits a sorted object.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.PrintEnv(cmd.Context(), format)
		},
	}
	cmd.Flags().StringP("format", "f", app.FormatShell, "Output format: shell or json")
	return cmd
}
