// Package cliconfig resolves configuration shared by every CLI command.
package cliconfig

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/apps/internal/stack"
	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
)

const (
	flagDatabaseURL = "database-url"
	flagLogLevel    = "log-level"
)

// AddPersistentFlags registers the flags every subcommand inherits.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(flagDatabaseURL, "", "PostgreSQL connection string (defaults to $DATABASE_URL)")
	cmd.PersistentFlags().String(flagLogLevel, "warn", "Log level for provisioning output")
}

// Load parses the stack configuration from the environment and applies flag overrides.
func Load(cmd *cobra.Command) (stack.Config, error) {
	var cfg stack.Config
	if err := env.Parse(&cfg); err != nil {
		return stack.Config{}, fmt.Errorf("load config: %w", err)
	}
	if url, _ := cmd.Flags().GetString(flagDatabaseURL); url != "" {
		cfg.DatabaseURL = url
	}
	return cfg, nil
}

// Logger builds a console logger honouring --log-level.
func Logger(cmd *cobra.Command) (*zap.Logger, error) {
	level, _ := cmd.Flags().GetString(flagLogLevel)
	return platformlogging.NewLogger(platformlogging.Config{
		Component: "hosting-cli",
		Level:     level,
		Format:    "console",
	})
}

// OpenStores loads configuration and connects to Postgres.
func OpenStores(ctx context.Context, cmd *cobra.Command, bootstrap bool) (*stack.Stores, stack.Config, error) {
	cfg, err := Load(cmd)
	if err != nil {
		return nil, stack.Config{}, err
	}
	stores, err := stack.Open(ctx, cfg, "hosting-cli", bootstrap)
	if err != nil {
		return nil, stack.Config{}, err
	}
	return stores, cfg, nil
}
