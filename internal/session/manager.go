package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/souk-hq/souk-go/internal/domain"
	"github.com/souk-hq/souk-go/internal/logger"
	"github.com/souk-hq/souk-go/pkg/api"
)

// Status is the manager's lifecycle state.
type Status string

const (
	StatusUnknown       Status = "unknown"
	StatusRestoring     Status = "restoring"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// UserPatch carries the fields UpdateUser may change. Nil fields are left as-is.
type UserPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// Manager owns the single current session and keeps the API client's bearer
// token in sync with it. Every mutating operation (restore, login, register,
// logout, update) runs under one mutex held across the persistence write, so
// concurrent calls serialize instead of interleaving state and storage updates.
type Manager struct {
	client *api.Client
	store  Store
	log    logger.Logger

	mu      sync.Mutex
	status  Status
	loading bool
	user    *domain.User
	token   string
}

// NewManager builds a session manager around the given client and store.
// The returned manager is in StatusUnknown until Restore runs.
func NewManager(client *api.Client, store Store, log logger.Logger) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("api client must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("session store must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Manager{
		client:  client,
		store:   store,
		log:     log,
		status:  StatusUnknown,
		loading: true,
	}, nil
}

// Restore reconstructs the session from durable storage without contacting the
// server. Missing or unparseable entries mean Anonymous; read failures are
// logged and treated the same. Safe to call again: it re-reads storage and
// lands on the same terminal state.
func (m *Manager) Restore() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = StatusRestoring
	defer func() { m.loading = false }()

	token, rawUser, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.WarnObj("session restore read failed", "error", err.Error())
		}
		m.becomeAnonymousLocked()
		return m.status
	}

	var user domain.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		m.log.WarnObj("persisted user unparseable, discarding session", "error", err.Error())
		m.becomeAnonymousLocked()
		return m.status
	}
	if token == "" || user.ID == "" {
		m.becomeAnonymousLocked()
		return m.status
	}

	m.user = &user
	m.token = token
	m.status = StatusAuthenticated
	m.client.SetAuthToken(token)
	m.log.InfoObj("session restored", "session_meta", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return m.status
}

// Login exchanges credentials for a session. On success the user and token are
// persisted, the client token is set, and true is returned. On any failure the
// session is left unchanged and nothing is persisted.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adoptAuth(m.client.Login(ctx, email, password), "login")
}

// Register creates an account and treats it as immediately authenticated,
// with the same persistence contract as Login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adoptAuth(m.client.Register(ctx, req), "register")
}

// adoptAuth applies a successful auth payload. Caller holds the mutex.
func (m *Manager) adoptAuth(res api.Response[api.AuthPayload], op string) bool {
	if !res.Success || res.Data == nil || res.Data.Token == "" || res.Data.User.ID == "" {
		m.log.WarnObj(op+" failed", "error", res.Err)
		return false
	}

	user := res.Data.User
	raw, err := json.Marshal(user)
	if err != nil {
		m.log.ErrorObj(op+" user serialization failed", "error", err.Error())
		return false
	}
	if err := m.store.Save(res.Data.Token, raw); err != nil {
		m.log.ErrorObj(op+" session persist failed", "error", err.Error())
		return false
	}

	m.user = &user
	m.token = res.Data.Token
	m.status = StatusAuthenticated
	m.client.SetAuthToken(res.Data.Token)
	m.log.InfoObj(op+" succeeded", "session_meta", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return true
}

// Logout tears the session down. The remote call is best-effort; clearing
// storage, memory state and the client token happens unconditionally.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() {
		if err := m.store.Clear(); err != nil {
			m.log.ErrorObj("session storage clear failed", "error", err.Error())
		}
		m.becomeAnonymousLocked()
	}()

	if res := m.client.Logout(ctx); !res.Success {
		m.log.WarnObj("remote logout failed, clearing local session anyway", "error", res.Err)
	}
}

// UpdateUser merges the patch into the current user and persists the result.
// No network call is made; a no-op returning false when not authenticated.
func (m *Manager) UpdateUser(patch UserPatch) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusAuthenticated || m.user == nil {
		return false
	}

	merged := *m.user
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		m.log.ErrorObj("user serialization failed", "error", err.Error())
		return false
	}
	if err := m.store.Save(m.token, raw); err != nil {
		m.log.ErrorObj("user persist failed", "error", err.Error())
		return false
	}

	m.user = &merged
	return true
}

// becomeAnonymousLocked resets memory state and the client token. Caller holds the mutex.
func (m *Manager) becomeAnonymousLocked() {
	m.user = nil
	m.token = ""
	m.status = StatusAnonymous
	m.client.SetAuthToken("")
}

// Status reports the current lifecycle state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Loading is true until the first Restore completes.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the in-memory bearer token, empty when anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
