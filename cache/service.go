package cache

import (
	"context"
	"fmt"
)

// KeySerializer builds a cache key from a resource name, an operation
// name, and the operation's arguments. Implementations must produce
// stable keys across calls and across process restarts for equal inputs.
type KeySerializer interface {
	SerializeKey(resource, operation string, args ...any) string
}

// FetchFn loads a value from the source of truth on a cache miss.
type FetchFn func(ctx context.Context) (any, error)

// Service exposes the read-through caching operations the query layer
// needs. Concurrent GetOrFetch calls for the same key share one fetch;
// fetch errors are returned to every waiter and never stored.
type Service interface {
	GetOrFetch(ctx context.Context, key string, fetch FetchFn) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	InvalidateKeys(ctx context.Context, keys []string) error
	Clear(ctx context.Context) error
	Size() int
}

// GetOrFetch is the type-safe wrapper around Service.GetOrFetch. A type
// mismatch means two callers derived the same key for different result
// types, which the key schema is supposed to make impossible, so it is
// reported as an error rather than a panic.
func GetOrFetch[T any](ctx context.Context, service Service, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	result, err := service.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if result == nil {
		var zero T
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: key %q holds %T, expected %T", key, result, zero)
	}
	return typed, nil
}
