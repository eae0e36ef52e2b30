package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-engine/db"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DB.ConnectTimeout, db.PoolOptions{MaxOpenConns: 1})
			if err != nil {
				return err
			}
			defer dbConn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			start := time.Now()
			if err := db.Migrate(ctx, dbConn); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			logger.Info("schema applied", slog.Duration("duration", time.Since(start)))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "migration timeout")
	return cmd
}
