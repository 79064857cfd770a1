package main

import (
	"aura_journal/internal/storage"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded SQL migrations to POSTGRES_DSN",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pg, err := storage.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer pg.Close()

		applied, err := storage.Migrate(ctx, pg.Pool())
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := pg.Init(ctx); err != nil {
			return fmt.Errorf("init progress record: %w", err)
		}

		logger.Info("migrations applied", zap.Strings("files", applied))
		return nil
	},
}
