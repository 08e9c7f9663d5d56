package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/souk-hq/souk-go/internal/domain"
	"github.com/souk-hq/souk-go/pkg/api"
)

func testUser() domain.User {
	return domain.User{
		ID:     "u1",
		Name:   "Amina",
		Email:  "amina@example.com",
		Phone:  "555-0101",
		Role:   domain.RoleUser,
		Status: domain.StatusActive,
	}
}

func seedStore(t *testing.T, store Store, token string, user domain.User) {
	t.Helper()
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if err := store.Save(token, raw); err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func newManager(t *testing.T, client *api.Client, store Store) *Manager {
	t.Helper()
	m, err := NewManager(client, store, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

// offlineClient points at nothing; ops that touch the network fail as connectivity.
func offlineClient() *api.Client {
	return api.New(api.Options{BaseURL: "http://127.0.0.1:1"})
}

func TestLoginRoundTrip(t *testing.T) {
	user := testUser()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			raw, _ := json.Marshal(struct {
				User  domain.User `json:"user"`
				Token string      `json:"token"`
			}{user, "tok-77"})
			w.Write(raw)
		case "/stores":
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := api.New(api.Options{BaseURL: srv.URL})
	store := NewMemoryStore()
	m := newManager(t, client, store)
	m.Restore()

	if !m.Login(context.Background(), user.Email, "pw") {
		t.Fatalf("login failed")
	}
	if m.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", m.Status())
	}

	token, rawUser, err := store.Load()
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	if token != "tok-77" {
		t.Fatalf("persisted token %q, want tok-77", token)
	}
	var persisted domain.User
	if err := json.Unmarshal(rawUser, &persisted); err != nil {
		t.Fatalf("unmarshal persisted user: %v", err)
	}
	if persisted.ID != user.ID || persisted.Email != user.Email {
		t.Fatalf("persisted user mismatch: %+v", persisted)
	}

	client.Stores(context.Background(), nil)
	if gotAuth != "Bearer tok-77" {
		t.Fatalf("subsequent request auth %q, want Bearer tok-77", gotAuth)
	}
}

func TestLoginFailureLeavesNothingBehind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := api.New(api.Options{BaseURL: srv.URL})
	store := NewMemoryStore()
	m := newManager(t, client, store)
	m.Restore()

	if m.Login(context.Background(), "a@b.c", "wrong") {
		t.Fatalf("expected login failure")
	}
	if m.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous, got %s", m.Status())
	}
	if _, _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected empty store, got %v", err)
	}
	if client.AuthToken() != "" {
		t.Fatalf("client token set despite failed login")
	}
}

func TestLoginWithMissingTokenIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"user":{"id":"u1"}}`)) // no token field
	}))
	defer srv.Close()

	m := newManager(t, api.New(api.Options{BaseURL: srv.URL}), NewMemoryStore())
	m.Restore()
	if m.Login(context.Background(), "a@b.c", "pw") {
		t.Fatalf("expected failure when payload lacks token")
	}
}

func TestLogoutClearsEvenWhenRemoteFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"session backend down"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := api.New(api.Options{BaseURL: srv.URL})
	store := NewMemoryStore()
	seedStore(t, store, "tok-9", testUser())

	m := newManager(t, client, store)
	if got := m.Restore(); got != StatusAuthenticated {
		t.Fatalf("restore: %s", got)
	}

	m.Logout(context.Background())

	if m.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous after logout, got %s", m.Status())
	}
	if _, _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected cleared store, got %v", err)
	}
	if client.AuthToken() != "" {
		t.Fatalf("client token not cleared")
	}
	if m.CurrentUser() != nil {
		t.Fatalf("in-memory user not cleared")
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	seedStore(t, store, "tok-1", testUser())
	client := offlineClient()
	m := newManager(t, client, store)

	if !m.Loading() {
		t.Fatalf("expected loading before restore")
	}
	first := m.Restore()
	second := m.Restore()

	if first != StatusAuthenticated || second != StatusAuthenticated {
		t.Fatalf("restore states: %s, %s", first, second)
	}
	if m.Token() != "tok-1" {
		t.Fatalf("token %q, want tok-1", m.Token())
	}
	if client.AuthToken() != "tok-1" {
		t.Fatalf("client token %q, want tok-1", client.AuthToken())
	}
	if m.Loading() {
		t.Fatalf("loading still true after restore")
	}
}

func TestRestoreWithEmptyStoreIsAnonymous(t *testing.T) {
	m := newManager(t, offlineClient(), NewMemoryStore())
	if got := m.Restore(); got != StatusAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if m.Loading() {
		t.Fatalf("loading still true")
	}
}

func TestRestoreWithUnparseableUserIsAnonymous(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save("tok-1", []byte(`{"id": truncated`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	client := offlineClient()
	client.SetAuthToken("stale")

	m := newManager(t, client, store)
	if got := m.Restore(); got != StatusAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if client.AuthToken() != "" {
		t.Fatalf("stale client token survived restore")
	}
}

func TestUpdateUserWhenAnonymousIsNoop(t *testing.T) {
	store := NewMemoryStore()
	m := newManager(t, offlineClient(), store)
	m.Restore()

	phone := "555-0199"
	if m.UpdateUser(UserPatch{Phone: &phone}) {
		t.Fatalf("expected no-op when anonymous")
	}
	if _, _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("anonymous update touched storage: %v", err)
	}
}

func TestUpdateUserMergesAndPersists(t *testing.T) {
	store := NewMemoryStore()
	user := testUser()
	seedStore(t, store, "tok-5", user)
	m := newManager(t, offlineClient(), store)
	m.Restore()

	phone := "555-0202"
	if !m.UpdateUser(UserPatch{Phone: &phone}) {
		t.Fatalf("update failed")
	}

	got := m.CurrentUser()
	if got == nil || got.Phone != phone {
		t.Fatalf("in-memory phone not updated: %+v", got)
	}
	if got.Name != user.Name || got.Email != user.Email || got.Role != user.Role {
		t.Fatalf("other fields changed: %+v", got)
	}
	if m.Token() != "tok-5" {
		t.Fatalf("token changed by update: %q", m.Token())
	}
	if m.Status() != StatusAuthenticated {
		t.Fatalf("status changed by update: %s", m.Status())
	}

	token, rawUser, err := store.Load()
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	if token != "tok-5" {
		t.Fatalf("persisted token changed: %q", token)
	}
	var persisted domain.User
	if err := json.Unmarshal(rawUser, &persisted); err != nil {
		t.Fatalf("unmarshal persisted: %v", err)
	}
	if persisted.Phone != phone || persisted.Name != user.Name {
		t.Fatalf("persisted merge wrong: %+v", persisted)
	}
}

func TestRegisterAuthenticatesImmediately(t *testing.T) {
	user := testUser()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			http.NotFound(w, r)
			return
		}
		raw, _ := json.Marshal(struct {
			User  domain.User `json:"user"`
			Token string      `json:"token"`
		}{user, "tok-new"})
		w.Write(raw)
	}))
	defer srv.Close()

	client := api.New(api.Options{BaseURL: srv.URL})
	m := newManager(t, client, NewMemoryStore())
	m.Restore()

	ok := m.Register(context.Background(), api.RegisterRequest{
		Name: user.Name, Email: user.Email, Password: "pw",
	})
	if !ok {
		t.Fatalf("register failed")
	}
	if m.Status() != StatusAuthenticated || m.Token() != "tok-new" {
		t.Fatalf("expected authenticated with tok-new, got %s %q", m.Status(), m.Token())
	}
}
