// Package main is the entry point for the marketkit server. The root command
// loads configuration and sets up logging; subcommands serve the API, apply
// migrations or seed a demo marketplace.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"marketkit/internal/config"
)

var (
	// Global flags
	envFile string
	verbose bool

	// cfg is loaded by the root command before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "marketkit",
	Short: "marketkit - marketplace provisioning and catalog API",
	Long: `marketkit provisions marketplaces (tenants), manages their listing shapes
and renders localized category trees over a JSON HTTP API.

Configuration is read from the environment. A .env file is loaded first
when present; variables already set take precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		slog.SetDefault(newLogger(cfg, verbose))
		slog.Debug("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// newLogger returns a text logger in development and a JSON logger
// otherwise.
func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || cfg.IsDev() {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
