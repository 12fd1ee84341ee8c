package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"themekit/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, name, preferred_theme, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var preferred uuid.NullUUID
	if err := scanner.Scan(&u.ID, &u.Email, &u.Name, &preferred, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.PreferredTheme = uuidPtr(preferred)
	return &u, nil
}

// List returns all users ordered by creation date.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Create validates and inserts a new user. Returns models.ErrEmailTaken if
// another user already has the email.
func (s *UserStore) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, preferred_theme)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		in.Email, in.Name, nullUUID(in.PreferredTheme),
	))
	if isUniqueViolation(err) {
		return nil, models.ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Update merges the patch onto the stored user. Returns nil if the user
// does not exist.
func (s *UserStore) Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	if err := patch.Normalize(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	current, err := scanUser(tx.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user for update: %w", err)
	}

	next := patch.Apply(*current)
	updated, err := scanUser(tx.QueryRowContext(ctx, `
		UPDATE users SET email = $2, name = $3, preferred_theme = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, next.Email, next.Name, nullUUID(next.PreferredTheme),
	))
	if isUniqueViolation(err) {
		return nil, models.ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit user update: %w", err)
	}
	return updated, nil
}

// Delete removes a user. Themes owned by the user are left in place.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
