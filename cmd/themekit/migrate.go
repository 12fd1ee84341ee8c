package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"themekit/internal/database"
	"themekit/internal/store"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), a, func(ctx context.Context, db *sql.DB) error {
				slog.Info("migrations up to date")
				return nil
			})
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default theme if the database has none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), a, func(ctx context.Context, db *sql.DB) error {
				if err := database.Seed(ctx, db, store.NewThemeStore(db)); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				slog.Info("seed complete")
				return nil
			})
		},
	}
}

// withDB connects, migrates, and hands the pool to fn.
func withDB(ctx context.Context, a *app, fn func(context.Context, *sql.DB) error) error {
	db, err := database.Connect(ctx, a.cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	return fn(ctx, db)
}
