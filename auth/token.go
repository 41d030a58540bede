// Package auth provides the bearer-token plumbing for the API client: a
// pluggable TokenSource consulted on every request, and persistent Store
// implementations holding the token between process runs.
package auth

import (
	"context"
	"errors"
)

// ErrNoToken is returned by a Store when no token has been saved.
var ErrNoToken = errors.New("auth: no token stored")

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token with a nil error means the request goes out anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token. Useful for
// service credentials and tests.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

// Store is the client-side key-value store holding the auth token. The
// token is read through a TokenSource on every request, so external
// changes to the store take effect immediately.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
	Close() error
}

// SourceFromStore adapts a Store into a TokenSource. A store without a
// token yields an empty token rather than an error, so unauthenticated
// sessions can still reach public endpoints.
func SourceFromStore(store Store) TokenSource {
	return &storeSource{store: store}
}

type storeSource struct {
	store Store
}

func (s *storeSource) Token(ctx context.Context) (string, error) {
	token, err := s.store.Token(ctx)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	return token, err
}
