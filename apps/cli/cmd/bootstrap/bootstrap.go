package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/cliconfig"
)

// Command groups bootstrap helpers.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Bootstrap hosting resources",
	}

	cmd.AddCommand(schemaCommand())
	return cmd
}

// schemaCommand applies the embedded DDL. Statements are idempotent so it is
// safe to run on every deploy.
func schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the hosting schema, tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, _, err := cliconfig.OpenStores(cmd.Context(), cmd, true)
			if err != nil {
				return err
			}
			defer stores.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Bootstrap complete. Hosting schema is ready.")
			return nil
		},
	}
}
