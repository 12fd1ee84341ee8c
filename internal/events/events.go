// Package events announces theme changes to other processes. Delivery is
// best effort: a failed publish is logged and never fails the write that
// triggered it.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type names a kind of theme change.
type Type string

const (
	ThemeCreated Type = "theme.created"
	ThemeUpdated Type = "theme.updated"
	ThemeDeleted Type = "theme.deleted"
)

// Event is the payload published for every successful theme write.
type Event struct {
	Type    Type      `json:"type"`
	ThemeID uuid.UUID `json:"themeId"`
	At      time.Time `json:"at"`
}

// New builds an event stamped with the current time.
func New(t Type, themeID uuid.UUID) Event {
	return Event{Type: t, ThemeID: themeID, At: time.Now().UTC()}
}

// Publisher sends theme events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Nop discards every event. Used when Valkey is not configured.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, Event) {}
