package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	sessionBucket = "session"
	tokenKey      = "token"
	userKey       = "user"
)

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed session Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Save writes both session entries in a single transaction.
func (b *boltStore) Save(token string, user []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		if err := bucket.Put([]byte(tokenKey), []byte(token)); err != nil {
			return err
		}
		return bucket.Put([]byte(userKey), user)
	})
}

// Load reads both session entries. ErrNoSession when either is absent.
func (b *boltStore) Load() (string, []byte, error) {
	var token string
	var user []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		rawToken := bucket.Get([]byte(tokenKey))
		rawUser := bucket.Get([]byte(userKey))
		if len(rawToken) == 0 || len(rawUser) == 0 {
			return ErrNoSession
		}
		token = string(rawToken)
		user = append([]byte(nil), rawUser...)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Clear removes both session entries in a single transaction.
func (b *boltStore) Clear() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		if err := bucket.Delete([]byte(tokenKey)); err != nil {
			return err
		}
		return bucket.Delete([]byte(userKey))
	})
}
