package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"themekit/internal/models"
)

// UserStore is the persistence the user handlers need. Create and Update
// return models.ErrEmailTaken when the email belongs to another user.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

const (
	userNotFound  = "User not found"
	invalidUserID = "invalid user id"
)

// Users serves /api/users.
type Users struct {
	store UserStore
	responder
}

// NewUsers creates the user handlers.
func NewUsers(store UserStore, production bool) *Users {
	return &Users{store: store, responder: responder{production: production}}
}

// Routes registers the user endpoints on r.
func (h *Users) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		h.internal(w, r, "list users", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, invalidUserID)
	if !ok {
		return
	}

	user, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		h.internal(w, r, "get user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.storeError(w, r, "create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, invalidUserID)
	if !ok {
		return
	}

	var patch models.UserPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		h.storeError(w, r, "update user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete removes a user. Themes the user owned are left in place.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, invalidUserID)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.internal(w, r, "delete user", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "User deleted"})
}
