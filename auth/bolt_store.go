package auth

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const sessionBucket = "session"

var tokenKey = []byte("token")

// BoltStore persists the auth token in a local BoltDB file, surviving
// process restarts.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens (or creates) the token store at the provided path.
// The file is created with 0600 permissions since it holds a credential.
func OpenBoltStore(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("auth: store path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("auth: open token store: %w", err)
	}

	store := &BoltStore{db: db}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Token implements Store.
func (s *BoltStore) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("auth: session bucket is missing")
		}
		payload := bucket.Get(tokenKey)
		if payload == nil {
			return ErrNoToken
		}
		token = string(payload)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// SetToken implements Store.
func (s *BoltStore) SetToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("auth: token is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("auth: session bucket is missing")
		}
		return bucket.Put(tokenKey, []byte(token))
	})
}

// DeleteToken implements Store. Deleting an absent token is a no-op.
func (s *BoltStore) DeleteToken(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("auth: session bucket is missing")
		}
		return bucket.Delete(tokenKey)
	})
}

// Close implements Store.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(sessionBucket)); err != nil {
			return fmt.Errorf("auth: create session bucket: %w", err)
		}
		return nil
	})
}
