// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"themekit/internal/events"
	"themekit/internal/models"
)

// ThemeStore is the persistence the theme handlers need. FindByID and
// Update return nil without error when the theme does not exist.
type ThemeStore interface {
	List(ctx context.Context) ([]models.Theme, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Theme, error)
	Create(ctx context.Context, in models.ThemeInput) (*models.Theme, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ThemePatch) (*models.Theme, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

const (
	themeNotFound  = "Theme not found"
	invalidThemeID = "invalid theme id"
)

// Themes serves /api/themes. Every successful write is announced on the
// event publisher.
type Themes struct {
	store  ThemeStore
	events events.Publisher
	responder
}

// NewThemes creates the theme handlers. A nil publisher disables events.
func NewThemes(store ThemeStore, publisher events.Publisher, production bool) *Themes {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Themes{store: store, events: publisher, responder: responder{production: production}}
}

// Routes registers the theme endpoints on r.
func (h *Themes) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List returns every theme.
func (h *Themes) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.store.List(r.Context())
	if err != nil {
		h.internal(w, r, "list themes", err)
		return
	}
	if themes == nil {
		themes = []models.Theme{}
	}
	writeJSON(w, http.StatusOK, themes)
}

// Get returns a single theme.
func (h *Themes) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, invalidThemeID)
	if !ok {
		return
	}

	theme, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		h.internal(w, r, "get theme", err)
		return
	}
	if theme == nil {
		writeError(w, http.StatusNotFound, themeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

// Create stores a new theme and answers 201 with the full record.
func (h *Themes) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ThemeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	theme, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.storeError(w, r, "create theme", err)
		return
	}

	h.events.Publish(r.Context(), events.New(events.ThemeCreated, theme.ID))
	writeJSON(w, http.StatusCreated, theme)
}

// Update merges the supplied fields onto an existing theme.
func (h *Themes) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, invalidThemeID)
	if !ok {
		return
	}

	var patch models.ThemePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	theme, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		h.storeError(w, r, "update theme", err)
		return
	}
	if theme == nil {
		writeError(w, http.StatusNotFound, themeNotFound)
		return
	}

	h.events.Publish(r.Context(), events.New(events.ThemeUpdated, theme.ID))
	writeJSON(w, http.StatusOK, theme)
}

// Delete removes a theme.
func (h *Themes) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, invalidThemeID)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.internal(w, r, "delete theme", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, themeNotFound)
		return
	}

	h.events.Publish(r.Context(), events.New(events.ThemeDeleted, id))
	writeJSON(w, http.StatusOK, messageBody{Message: "Theme deleted"})
}
