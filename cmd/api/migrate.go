package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/dormshop-backend/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runMigrate(ctx)
	},
}

func runMigrate(ctx context.Context) error {
	cfg, log := setup()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := db.RunMigrations(ctx, pool)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		log.Info("database is up to date")
		return nil
	}
	log.Info("migrations applied", "count", len(applied), "names", applied)
	return nil
}
