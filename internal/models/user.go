package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a person who may own themes and pick a preferred one.
// PreferredTheme is an advisory reference; deleting the theme leaves it in place.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	PreferredTheme *uuid.UUID `json:"preferredTheme"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// UserInput carries the fields accepted when creating a user.
type UserInput struct {
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	PreferredTheme *uuid.UUID `json:"preferredTheme"`
}

// Normalize trims and lower-cases the email and validates required fields.
func (in *UserInput) Normalize() error {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.Name == "" {
		return invalid("name", "name is required")
	}
	return nil
}

// UserPatch carries a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Email          *string      `json:"email"`
	Name           *string      `json:"name"`
	PreferredTheme NullableUUID `json:"preferredTheme"`
}

// Normalize validates every field present in the patch.
func (p *UserPatch) Normalize() error {
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if err := validateEmail(email); err != nil {
			return err
		}
		p.Email = &email
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return invalid("name", "name is required")
		}
		p.Name = &name
	}
	return nil
}

// Apply returns u with the patch fields merged on top.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PreferredTheme.Set {
		u.PreferredTheme = p.PreferredTheme.Value
	}
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail accepts a bare address only; display names are rejected.
func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "email is not a valid address")
	}
	return nil
}

// Validate checks a complete user record, such as one read back from a
// snapshot.
func (u User) Validate() error {
	if u.ID == uuid.Nil {
		return invalid("id", "id is required")
	}
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	if u.Email != normalizeEmail(u.Email) {
		return invalid("email", "email must be lower-case without surrounding spaces")
	}
	if strings.TrimSpace(u.Name) == "" {
		return invalid("name", "name is required")
	}
	return nil
}
