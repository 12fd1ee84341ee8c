// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"themekit/internal/models"
)

// ThemeStore handles all theme database operations.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeColumns lists the columns selected in theme queries.
const themeColumns = `id, user_id, name, primary_color, accent_color, mode, is_default, created_at, updated_at`

// scanTheme scans a theme row from the result set.
func scanTheme(scanner interface{ Scan(...any) error }) (*models.Theme, error) {
	var t models.Theme
	var userID uuid.NullUUID
	err := scanner.Scan(&t.ID, &userID, &t.Name, &t.Primary, &t.Accent, &t.Mode, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.UserID = uuidPtr(userID)
	return &t, nil
}

// List returns every theme in insertion order.
func (s *ThemeStore) List(ctx context.Context) ([]models.Theme, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+themeColumns+`
		FROM themes
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	items := make([]models.Theme, 0)
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a theme by its UUID. Returns nil if not found.
func (s *ThemeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Theme, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM themes WHERE id = $1`, id)
	t, err := scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by id: %w", err)
	}
	return t, nil
}

// Create validates the input, applies defaults and inserts a new theme.
// Returns a *models.ValidationError without touching the database if the
// input is invalid.
func (s *ThemeStore) Create(ctx context.Context, in models.ThemeInput) (*models.Theme, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO themes (user_id, name, primary_color, accent_color, mode, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+themeColumns,
		nullUUID(in.UserID), in.Name, in.Primary, in.Accent, string(in.Mode), in.IsDefault,
	)
	t, err := scanTheme(row)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}
	return t, nil
}

// Update merges the supplied patch fields onto the stored theme and bumps
// updated_at. Returns nil if the theme does not exist. The row is locked for
// the read-merge-write so concurrent updates serialize; the last one wins.
func (s *ThemeStore) Update(ctx context.Context, id uuid.UUID, patch models.ThemePatch) (*models.Theme, error) {
	if err := patch.Normalize(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	current, err := scanTheme(tx.QueryRowContext(ctx,
		`SELECT `+themeColumns+` FROM themes WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load theme for update: %w", err)
	}

	next := patch.Apply(*current)
	updated, err := scanTheme(tx.QueryRowContext(ctx, `
		UPDATE themes
		SET user_id = $2, name = $3, primary_color = $4, accent_color = $5,
		    mode = $6, is_default = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+themeColumns,
		id, nullUUID(next.UserID), next.Name, next.Primary, next.Accent, string(next.Mode), next.IsDefault,
	))
	if err != nil {
		return nil, fmt.Errorf("update theme: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit theme update: %w", err)
	}
	return updated, nil
}

// Delete removes a theme. Returns false if no theme had that id.
// Users whose preferred theme it was keep the dangling reference.
func (s *ThemeStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM themes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Count returns the total number of themes.
func (s *ThemeStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM themes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count themes: %w", err)
	}
	return n, nil
}
