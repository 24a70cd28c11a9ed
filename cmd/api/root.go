package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/dormshop-backend/internal/config"
	"github.com/baharkarakas/dormshop-backend/internal/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "dormshop",
	Short: "Dorm Shop 'n' Swap API server",
	Long: `dormshop serves the Dorm Shop 'n' Swap marketplace API: users, items,
locations, posts, transactions and seller ratings.

Without a subcommand it runs the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil && cmd.Flags().Changed("env-file") {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// setup loads the configuration and installs the process logger.
func setup() (config.Config, *slog.Logger) {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	return cfg, log
}
