package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"themekit/internal/models"
)

// defaultThemeName is the global theme inserted into an empty database.
const defaultThemeName = "Default"

// ThemeCounter reports how many themes are stored.
type ThemeCounter interface {
	Count(ctx context.Context) (int, error)
}

// Seed populates the database with initial development data.
// It creates a global default theme if themes reports none exist yet.
func Seed(ctx context.Context, db *sql.DB, themes ThemeCounter) error {
	count, err := themes.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed check themes: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO themes (name, primary_color, accent_color, mode, is_default)
		VALUES ($1, $2, $3, $4, TRUE)
	`, defaultThemeName, models.DefaultPrimary, models.DefaultAccent, string(models.DefaultMode))
	if err != nil {
		return fmt.Errorf("seed insert default theme: %w", err)
	}

	slog.Info("database seeded with default theme", "name", defaultThemeName)
	return nil
}
