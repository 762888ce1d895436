// Package main provides the CLI entrypoint for the URL journal service.
// It wires subcommands (diff, watch), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"os"
	"urljournal/internal/config"
	"urljournal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// main sets up the root Cobra command, loads configuration and logging before
// any subcommand runs, and executes the CLI.
func main() {
	var (
		configPath string
		cfg        = new(config.Config)
	)

	rootCmd := &cobra.Command{
		Use:           "urljournal",
		Short:         "Snapshots web pages and reports what changed between snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
				return fmt.Errorf("could not setup logger: %w", err)
			}

			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Config File Path")

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		diffCommand(cfg),
		watchCommand(cfg),
	)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.Error(ctx, "command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
