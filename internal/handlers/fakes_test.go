package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"themekit/internal/events"
	"themekit/internal/models"
)

// errStoreDown is returned by fakes configured to fail.
var errStoreDown = errors.New("connection refused")

// clock hands out strictly increasing timestamps so updates always move
// updatedAt forward.
type clock struct {
	now time.Time
}

func (c *clock) tick() time.Time {
	if c.now.IsZero() {
		c.now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	c.now = c.now.Add(time.Second)
	return c.now
}

// fakeThemes is an in-memory ThemeStore with the same validation and merge
// rules as the PostgreSQL store.
type fakeThemes struct {
	mu    sync.Mutex
	clock clock
	order []uuid.UUID
	byID  map[uuid.UUID]models.Theme
	err   error
}

func newFakeThemes() *fakeThemes {
	return &fakeThemes{byID: make(map[uuid.UUID]models.Theme)}
}

func (f *fakeThemes) List(context.Context) ([]models.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Theme
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeThemes) FindByID(_ context.Context, id uuid.UUID) (*models.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeThemes) Create(_ context.Context, in models.ThemeInput) (*models.Theme, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	now := f.clock.tick()
	t := models.Theme{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Name:      in.Name,
		Primary:   in.Primary,
		Accent:    in.Accent,
		Mode:      in.Mode,
		IsDefault: in.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.byID[t.ID] = t
	f.order = append(f.order, t.ID)
	return &t, nil
}

func (f *fakeThemes) Update(_ context.Context, id uuid.UUID, patch models.ThemePatch) (*models.Theme, error) {
	if err := patch.Normalize(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	current, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	next := patch.Apply(current)
	next.UpdatedAt = f.clock.tick()
	f.byID[id] = next
	return &next, nil
}

func (f *fakeThemes) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (f *fakeThemes) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakeUsers is an in-memory UserStore enforcing unique emails.
type fakeUsers struct {
	mu    sync.Mutex
	clock clock
	order []uuid.UUID
	byID  map[uuid.UUID]models.User
	err   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[uuid.UUID]models.User)}
}

func (f *fakeUsers) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range f.byID {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) Create(_ context.Context, in models.UserInput) (*models.User, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.emailTaken(in.Email, uuid.Nil) {
		return nil, models.ErrEmailTaken
	}
	now := f.clock.tick()
	u := models.User{
		ID:             uuid.New(),
		Email:          in.Email,
		Name:           in.Name,
		PreferredTheme: in.PreferredTheme,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.byID[u.ID] = u
	f.order = append(f.order, u.ID)
	return &u, nil
}

func (f *fakeUsers) Update(_ context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	if err := patch.Normalize(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	current, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	next := patch.Apply(current)
	if f.emailTaken(next.Email, id) {
		return nil, models.ErrEmailTaken
	}
	next.UpdatedAt = f.clock.tick()
	f.byID[id] = next
	return &next, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// do sends a request with an optional JSON body through h.
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// wantStatus fails the test when rr has an unexpected status code.
func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}
