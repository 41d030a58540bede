// Package cacheinfra adapts sturdyc to the cache.Service contract. It
// is internal so the rest of the module depends on the contract, not on
// the engine.
package cacheinfra

import (
	"context"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the settings for the sturdyc-backed cache engine.
type Config struct {
	// Capacity is the maximum number of entries the cache stores.
	// Must be greater than 0.
	Capacity int

	// NumShards is the number of shards for concurrent access. Higher
	// values improve concurrency at some memory cost. Must be greater
	// than 0.
	NumShards int

	// TTL is how long an entry is served before it expires. This is the
	// staleness window of every read that goes through the service.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the cache
	// hits capacity. Must be between 1 and 100.
	EvictionPercentage int

	// EarlyRefresh enables background refreshes before entries expire.
	// Nil disables it, which also guarantees no upstream traffic inside
	// the TTL window.
	EarlyRefresh *EarlyRefreshConfig

	// MissingRecordStorage remembers keys whose fetch reported a missing
	// record, preventing repeated upstream calls for absent entities.
	MissingRecordStorage bool

	// EvictionInterval sets how often expired entries are collected.
	// Zero uses the engine default.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig configures background refresh behaviour. Early
// refreshes trade the strict no-traffic guarantee of the TTL window for
// always-warm entries on hot keys.
type EarlyRefreshConfig struct {
	// MinAsyncRefreshTime is the earliest an async refresh may start.
	MinAsyncRefreshTime time.Duration

	// MaxAsyncRefreshTime is the latest an async refresh may start.
	MaxAsyncRefreshTime time.Duration

	// SyncRefreshTime is when a refresh turns synchronous.
	SyncRefreshTime time.Duration

	// RetryBaseDelay is the base delay between failed refresh attempts.
	RetryBaseDelay time.Duration
}

// DefaultConfig returns the baseline engine settings: room for ten
// thousand entries across 256 shards with a five minute window. Early
// refresh stays off so cached reads never reach the backend before
// they expire.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions maps the optional parts of the Config onto sturdyc
// options. Capacity, NumShards, TTL, and EvictionPercentage go to the
// sturdyc.New constructor directly.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}

	if c.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks the configuration before the engine is built.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EarlyRefresh != nil {
		if c.EarlyRefresh.MinAsyncRefreshTime < 0 {
			return &ConfigError{Field: "EarlyRefresh.MinAsyncRefreshTime", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.MaxAsyncRefreshTime < 0 {
			return &ConfigError{Field: "EarlyRefresh.MaxAsyncRefreshTime", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.SyncRefreshTime < 0 {
			return &ConfigError{Field: "EarlyRefresh.SyncRefreshTime", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.RetryBaseDelay < 0 {
			return &ConfigError{Field: "EarlyRefresh.RetryBaseDelay", Message: "must be non-negative"}
		}
	}

	return nil
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Service wraps a sturdyc client. All values are stored as any; the
// public cache package restores types at the boundary.
type Service struct {
	client *sturdyc.Client[any]
}

// NewService validates the configuration and builds the engine.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &Service{client: client}, nil
}

// GetOrFetch returns the cached value for key, or runs fetch and stores
// the result. Concurrent calls for the same key share one fetch; the
// engine deduplicates in-flight requests per key. A fetch error reaches
// every waiting caller and nothing is stored.
func (s *Service) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	if fetch == nil {
		return nil, &ConfigError{Field: "fetch", Message: "cannot be nil"}
	}
	return s.client.GetOrFetch(ctx, key, fetch)
}

// Delete removes a single entry.
func (s *Service) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix removes every entry whose key starts with prefix. Used
// to drop all cached reads of one resource after a write.
func (s *Service) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return nil
}

// InvalidateKeys removes an explicit set of entries.
func (s *Service) InvalidateKeys(ctx context.Context, keys []string) error {
	for _, key := range keys {
		s.client.Delete(key)
	}
	return nil
}

// Clear removes every entry. Called on logout and token change so no
// response cached for one identity is ever served to another.
func (s *Service) Clear(ctx context.Context) error {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
	return nil
}

// Size reports the number of stored entries.
func (s *Service) Size() int {
	return s.client.Size()
}
