package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"themekit/internal/snapshot"
	"themekit/internal/storage"
	"themekit/internal/store"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Store and restore theme snapshots in S3-compatible storage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Snapshot every theme and user into the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			objects, err := a.storage()
			if err != nil {
				return err
			}
			return withDB(cmd.Context(), a, func(ctx context.Context, db *sql.DB) error {
				s, err := snapshot.Backup(ctx, objects, store.NewThemeStore(db), store.NewUserStore(db))
				if err != nil {
					return err
				}
				slog.Info("snapshot stored",
					"bucket", objects.Bucket(),
					"key", s.Key(),
					"themes", len(s.Themes),
					"users", len(s.Users),
				)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored snapshots as JSON lines, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			objects, err := a.storage()
			if err != nil {
				return err
			}
			list, err := objects.List(cmd.Context(), snapshot.Prefix)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, obj := range list {
				if err := enc.Encode(obj); err != nil {
					return err
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore KEY",
		Short: "Write a stored snapshot back into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objects, err := a.storage()
			if err != nil {
				return err
			}
			s, err := snapshot.Load(cmd.Context(), objects, args[0])
			if err != nil {
				return err
			}
			return withDB(cmd.Context(), a, func(ctx context.Context, db *sql.DB) error {
				if err := store.Restore(ctx, db, s.Themes, s.Users); err != nil {
					return err
				}
				slog.Info("snapshot restored", "key", args[0], "themes", len(s.Themes), "users", len(s.Users))
				return nil
			})
		},
	})

	return cmd
}

// storage opens the configured bucket.
func (a *app) storage() (*storage.Client, error) {
	cfg := a.cfg
	if !cfg.BackupsEnabled() {
		return nil, errors.New("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY must be set")
	}
	return storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
}
