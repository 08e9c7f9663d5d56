package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Package session owns the authenticated-user lifecycle: the current session
// in memory, its durable persistence, and the sync between both and the API
// client's bearer token.

// ErrNoSession is returned by Store.Load when no complete session is persisted.
var ErrNoSession = errors.New("no stored session")

// Store persists the two session entries: the raw bearer token and the
// JSON-serialized user. Both are written together and removed together;
// Load reports ErrNoSession unless both are present.
type Store interface {
	Save(token string, user []byte) error
	Load() (token string, user []byte, err error)
	Clear() error
	Close() error
}

// NewStore creates the configured session storage backend.
func NewStore(typ, path string) (Store, error) {
	switch strings.TrimSpace(strings.ToLower(typ)) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt session storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported session storage type %q", typ)
	}
}

// memoryStore keeps the session in process memory. Used by tests and as the
// fallback when no durable path is configured.
type memoryStore struct {
	mu    sync.Mutex
	token string
	user  []byte
	set   bool
}

// NewMemoryStore returns a non-durable in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Save(token string, user []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = append([]byte(nil), user...)
	m.set = true
	return nil
}

func (m *memoryStore) Load() (string, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", nil, ErrNoSession
	}
	return m.token, append([]byte(nil), m.user...), nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	m.set = false
	return nil
}

func (m *memoryStore) Close() error { return nil }
