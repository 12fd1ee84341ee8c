// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and the validation rules applied before anything is written.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Mode is the color scheme a theme asks the frontend to use.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Valid reports whether m is one of the three supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeLight, ModeDark, ModeSystem:
		return true
	}
	return false
}

// Defaults applied to fields omitted on create.
const (
	DefaultPrimary = "#0070f3"
	DefaultAccent  = "#06b6d4"
	DefaultMode    = ModeSystem
)

const maxThemeNameLen = 100

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether value is a #RGB or #RRGGBB color.
func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Theme is a named set of color and mode preferences, optionally owned by
// a user. A nil UserID marks a global theme.
type Theme struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"userId"`
	Name      string     `json:"name"`
	Primary   string     `json:"primary"`
	Accent    string     `json:"accent"`
	Mode      Mode       `json:"mode"`
	IsDefault bool       `json:"isDefault"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ThemeInput carries the fields accepted when creating a theme.
type ThemeInput struct {
	UserID    *uuid.UUID `json:"userId"`
	Name      string     `json:"name"`
	Primary   string     `json:"primary"`
	Accent    string     `json:"accent"`
	Mode      Mode       `json:"mode"`
	IsDefault bool       `json:"isDefault"`
}

// Normalize trims the input, fills in defaults for omitted fields and
// validates the result.
func (in *ThemeInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Primary = strings.TrimSpace(in.Primary)
	in.Accent = strings.TrimSpace(in.Accent)

	if in.Primary == "" {
		in.Primary = DefaultPrimary
	}
	if in.Accent == "" {
		in.Accent = DefaultAccent
	}
	if in.Mode == "" {
		in.Mode = DefaultMode
	}

	if err := validateThemeName(in.Name); err != nil {
		return err
	}
	if err := validateColor("primary", in.Primary); err != nil {
		return err
	}
	if err := validateColor("accent", in.Accent); err != nil {
		return err
	}
	return validateMode(in.Mode)
}

// ThemePatch carries a partial theme update. Nil fields are left untouched.
type ThemePatch struct {
	UserID    NullableUUID `json:"userId"`
	Name      *string      `json:"name"`
	Primary   *string      `json:"primary"`
	Accent    *string      `json:"accent"`
	Mode      *Mode        `json:"mode"`
	IsDefault *bool        `json:"isDefault"`
}

// Normalize trims and validates every field present in the patch.
func (p *ThemePatch) Normalize() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validateThemeName(name); err != nil {
			return err
		}
		p.Name = &name
	}
	if p.Primary != nil {
		c := strings.TrimSpace(*p.Primary)
		if err := validateColor("primary", c); err != nil {
			return err
		}
		p.Primary = &c
	}
	if p.Accent != nil {
		c := strings.TrimSpace(*p.Accent)
		if err := validateColor("accent", c); err != nil {
			return err
		}
		p.Accent = &c
	}
	if p.Mode != nil {
		if err := validateMode(*p.Mode); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns t with the patch fields merged on top. ID and timestamps
// are never changed here.
func (p ThemePatch) Apply(t Theme) Theme {
	if p.UserID.Set {
		t.UserID = p.UserID.Value
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Primary != nil {
		t.Primary = *p.Primary
	}
	if p.Accent != nil {
		t.Accent = *p.Accent
	}
	if p.Mode != nil {
		t.Mode = *p.Mode
	}
	if p.IsDefault != nil {
		t.IsDefault = *p.IsDefault
	}
	return t
}

func validateThemeName(name string) error {
	if name == "" {
		return invalid("name", "name is required")
	}
	if utf8.RuneCountInString(name) > maxThemeNameLen {
		return invalid("name", fmt.Sprintf("name must be %d characters or fewer", maxThemeNameLen))
	}
	return nil
}

func validateColor(field, value string) error {
	if value != strings.TrimSpace(value) || !IsHexColor(value) {
		return invalid(field, fmt.Sprintf("%s must be a hex color like #0070f3", field))
	}
	return nil
}

func validateMode(m Mode) error {
	if !m.Valid() {
		return invalid("mode", fmt.Sprintf("mode %q is not one of light, dark, system", string(m)))
	}
	return nil
}

// Validate checks a complete theme record, such as one read back from a
// snapshot, against the same rules writes are held to.
func (t Theme) Validate() error {
	if t.ID == uuid.Nil {
		return invalid("id", "id is required")
	}
	if err := validateThemeName(t.Name); err != nil {
		return err
	}
	if t.Name != strings.TrimSpace(t.Name) {
		return invalid("name", "name must not start or end with spaces")
	}
	if err := validateColor("primary", t.Primary); err != nil {
		return err
	}
	if err := validateColor("accent", t.Accent); err != nil {
		return err
	}
	return validateMode(t.Mode)
}
