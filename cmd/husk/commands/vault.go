package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Read items from the session vault",
		Long: `Vault talks to the password manager CLI using the session token already
present in the environment (sign in first via the hook: op signin <account>).`,
	}
	cmd.AddCommand(c.newVaultItemCmd())
	cmd.AddCommand(c.newVaultPasswordCmd())
	return cmd
}

func (c *CLI) newVaultItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item <uuid>",
		Short: "Fetch a vault item",
		Long: `Item fetches and prints one vault item. The default view masks secret
values; --json prints the full item for scripting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.VaultItem(cmd.Context(), args[0], asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print the full item as JSON")
	return cmd
}

func (c *CLI) newVaultPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password <uuid>",
		Short: "Print a vault item's password",
		Long:  `Password prints the item's password alone, so it can feed a pipe.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.VaultPassword(cmd.Context(), args[0])
		},
	}
}
