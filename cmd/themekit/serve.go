package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"themekit/internal/config"
	"themekit/internal/database"
	"themekit/internal/events"
	"themekit/internal/handlers"
	"themekit/internal/router"
	"themekit/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve connects to PostgreSQL (and Valkey when configured), migrates the
// schema and serves the API until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	// Seed development data (no-op if themes already exist).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db, store.NewThemeStore(db)); err != nil {
			return err
		}
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		client, err := events.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer client.Close()
		publisher = events.NewValkeyPublisher(client, cfg.EventsChannel)
	} else {
		slog.Info("valkey not configured, theme events disabled")
	}

	r := router.New(
		handlers.NewThemes(store.NewThemeStore(db), publisher, cfg.IsProduction()),
		handlers.NewUsers(store.NewUserStore(db), cfg.IsProduction()),
		cfg.CORSOrigin,
	)

	return run(ctx, newHTTPServer(cfg, r), cfg.ShutdownTimeout)
}

// newHTTPServer creates the HTTP server with timeouts suited to small JSON
// requests.
func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// run serves srv until ctx is done, then drains in-flight requests for at
// most drain. A listen failure cancels the group and is returned.
func run(ctx context.Context, srv *http.Server, drain time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}
