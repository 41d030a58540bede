package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests and short-lived processes.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token implements Store.
func (s *MemoryStore) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return "", ErrNoToken
	}
	return s.token, nil
}

// SetToken implements Store.
func (s *MemoryStore) SetToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("auth: token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// DeleteToken implements Store.
func (s *MemoryStore) DeleteToken(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
