package root

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the hosting operator CLI. Subcommands (bootstrap, server, site, etc.) are attached here.
var rootCmd = &cobra.Command{
	Use:           "palmyra-hosting",
	Short:         "Palmyra hosting operator CLI",
	Long:          "Operator utilities for the hosting platform (schema bootstrap, server registry, templates, site provisioning).",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
