// Package commands implements the CLI commands for husk.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.husk.sh/husk/internal/app"
	"go.husk.sh/husk/internal/build"
	"go.husk.sh/husk/internal/core/ports"
)

// Application represents the application logic interface.
type Application interface {
	Enter(ctx context.Context) (int, error)
	Exec(ctx context.Context, argv []string) (int, error)
	PrintEnv(ctx context.Context, format string) error
	Hook(ctx context.Context) error
	Resolve(ctx context.Context, opts app.ResolveOptions) error
	VaultItem(ctx context.Context, uuid string, asJSON bool) error
	VaultPassword(ctx context.Context, uuid string) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// CLI represents the command line interface for husk.
type CLI struct {
	app      Application
	logger   ports.Logger
	rootCmd  *cobra.Command
	exitCode int
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "husk",
		Short:         "Reproducible toolchain shells from a declarative manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("directory", "C", "", "Run as if husk was started in this directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.applyRootFlags

	rootCmd.AddCommand(c.newEnterCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newPrintEnvCmd())
	rootCmd.AddCommand(c.newHookCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newVaultCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// applyRootFlags configures the process from the persistent flags before any
// subcommand runs.
func (c *CLI) applyRootFlags(cmd *cobra.Command, _ []string) error {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		if err := os.Setenv("NO_COLOR", "1"); err != nil {
			return err
		}
		// Rebuild the log output so the profile change takes effect.
		if l, ok := c.logger.(interface{ SetOutput(w io.Writer) }); ok {
			l.SetOutput(os.Stderr)
		}
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		if l, ok := c.logger.(interface{ SetDebug(enable bool) }); ok {
			l.SetDebug(true)
		}
	}

	if dir, _ := cmd.Flags().GetString("directory"); dir != "" {
		if err := os.Chdir(dir); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// ExitCode returns the exit code the executed command produced. It is only
// meaningful after Execute returned nil; enter and exec relay the exit code
// of the process they ran.
func (c *CLI) ExitCode() int {
	return c.exitCode
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
