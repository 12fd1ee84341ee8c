package store

import (
	"context"
	"database/sql"
	"fmt"

	"themekit/internal/models"
)

// Restore writes themes and users back by id in a single transaction.
// Rows with a matching id are overwritten, timestamps included; rows not
// in the input are left alone. A user whose email belongs to a different
// id aborts the whole restore with models.ErrEmailTaken.
func Restore(ctx context.Context, db *sql.DB, themes []models.Theme, users []models.User) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range themes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO themes (id, user_id, name, primary_color, accent_color, mode, is_default, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				user_id = EXCLUDED.user_id, name = EXCLUDED.name,
				primary_color = EXCLUDED.primary_color, accent_color = EXCLUDED.accent_color,
				mode = EXCLUDED.mode, is_default = EXCLUDED.is_default,
				created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`,
			t.ID, nullUUID(t.UserID), t.Name, t.Primary, t.Accent, string(t.Mode), t.IsDefault, t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("restore theme %s: %w", t.ID, err)
		}
	}

	for _, u := range users {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, name, preferred_theme, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				email = EXCLUDED.email, name = EXCLUDED.name,
				preferred_theme = EXCLUDED.preferred_theme,
				created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`,
			u.ID, u.Email, u.Name, nullUUID(u.PreferredTheme), u.CreatedAt, u.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("restore user %s (%s): %w", u.ID, u.Email, models.ErrEmailTaken)
		}
		if err != nil {
			return fmt.Errorf("restore user %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}
