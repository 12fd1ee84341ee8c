// Package snapshot captures every theme and user as one JSON document and
// keeps those documents in object storage for backup and restore.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"themekit/internal/models"
)

const (
	// Version is the document format written by Encode.
	Version = 1

	// Prefix is the object key prefix under which snapshots are stored.
	Prefix = "snapshots/"

	contentType = "application/json"
	keyLayout   = "20060102T150405.000Z"
)

// Snapshot is a point-in-time copy of all records.
type Snapshot struct {
	Version int            `json:"version"`
	TakenAt time.Time      `json:"takenAt"`
	Themes  []models.Theme `json:"themes"`
	Users   []models.User  `json:"users"`
}

// ThemeLister lists every theme.
type ThemeLister interface {
	List(ctx context.Context) ([]models.Theme, error)
}

// UserLister lists every user.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// ObjectStore is where encoded snapshots live. *storage.Client satisfies it.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Take reads all themes and users into a snapshot stamped at now.
func Take(ctx context.Context, themes ThemeLister, users UserLister, now time.Time) (*Snapshot, error) {
	ts, err := themes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot themes: %w", err)
	}
	us, err := users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot users: %w", err)
	}
	if ts == nil {
		ts = []models.Theme{}
	}
	if us == nil {
		us = []models.User{}
	}
	return &Snapshot{Version: Version, TakenAt: now.UTC(), Themes: ts, Users: us}, nil
}

// Key is the object key the snapshot is stored under.
func (s *Snapshot) Key() string {
	return Prefix + s.TakenAt.UTC().Format(keyLayout) + ".json"
}

// Encode renders the snapshot as indented JSON.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses and validates a snapshot document. Every record must pass
// the same checks as a normal write, and ids must be unique.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}

	seen := make(map[uuid.UUID]bool, len(s.Themes))
	for i, t := range s.Themes {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("theme %d: %w", i, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("theme %d: duplicate id %s", i, t.ID)
		}
		seen[t.ID] = true
	}

	seen = make(map[uuid.UUID]bool, len(s.Users))
	emails := make(map[string]bool, len(s.Users))
	for i, u := range s.Users {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("user %d: %w", i, err)
		}
		if seen[u.ID] {
			return nil, fmt.Errorf("user %d: duplicate id %s", i, u.ID)
		}
		email := strings.ToLower(u.Email)
		if emails[email] {
			return nil, fmt.Errorf("user %d: %w", i, models.ErrEmailTaken)
		}
		seen[u.ID] = true
		emails[email] = true
	}
	return &s, nil
}

// Backup takes a snapshot and stores it, returning the object key.
func Backup(ctx context.Context, objects ObjectStore, themes ThemeLister, users UserLister) (*Snapshot, error) {
	s, err := Take(ctx, themes, users, time.Now())
	if err != nil {
		return nil, err
	}
	data, err := s.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := objects.Put(ctx, s.Key(), contentType, data); err != nil {
		return nil, err
	}
	return s, nil
}

// Load fetches and decodes the snapshot stored under key.
func Load(ctx context.Context, objects ObjectStore, key string) (*Snapshot, error) {
	if key == "" {
		return nil, errors.New("snapshot key is required")
	}
	data, err := objects.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
