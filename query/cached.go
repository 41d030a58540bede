package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/AnkaaDesign/apiclient/apierr"
	"github.com/AnkaaDesign/apiclient/cache"
	"github.com/AnkaaDesign/apiclient/observability/metrics"
	"github.com/AnkaaDesign/apiclient/resource"
)

// ErrGateClosed is returned by reads on a resource whose gate reports
// closed. Nothing is fetched and nothing in the cache changes.
var ErrGateClosed = errors.New("query: resource gate closed")

// Interface assertion to ensure Cached implements resource.Interface.
var _ resource.Interface[any, any, any] = (*Cached[any, any, any])(nil)

// Purger removes cached entries by key prefix. The default purger only
// reaches the resource's own cache service; wire one backed by every
// service in the process when resources with different staleness
// windows invalidate each other.
type Purger interface {
	PurgePrefix(ctx context.Context, prefix string) error
}

type servicePurger struct {
	service cache.Service
}

func (p servicePurger) PurgePrefix(ctx context.Context, prefix string) error {
	return p.service.DeleteByPrefix(ctx, prefix)
}

// Cached decorates a resource client with read-through caching, bounded
// retries, and write-triggered invalidation. Reads are cached under
// keys derived from (resource, operation, params); writes delegate to
// the base client and, only when they succeed, drop every cached read
// of this resource plus the declared related resources.
type Cached[T, C, U any] struct {
	base        resource.Interface[T, C, U]
	cache       cache.Service
	keys        cache.KeySerializer
	keyRegistry *xsync.MapOf[string, struct{}]
	purger      Purger
	invalidator cache.Invalidator
	recorder    metrics.Recorder
	logger      *slog.Logger
	gate        func() bool
	retry       retryPolicy
	invalidates []string
}

// New wraps base with caching. The cache service defines the staleness
// window: every read of this resource is served from cache for the
// service's TTL.
func New[T, C, U any](base resource.Interface[T, C, U], service cache.Service, keys cache.KeySerializer, opts ...Option) *Cached[T, C, U] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.purger == nil {
		s.purger = servicePurger{service: service}
	}

	return &Cached[T, C, U]{
		base:        base,
		cache:       service,
		keys:        keys,
		keyRegistry: xsync.NewMapOf[string, struct{}](),
		purger:      s.purger,
		invalidator: s.invalidator,
		recorder:    s.recorder,
		logger:      s.logger,
		gate:        s.gate,
		retry:       retryPolicy{retries: s.retries, baseDelay: s.retryDelay},
		invalidates: s.invalidates,
	}
}

// Name returns the decorated resource's identity.
func (c *Cached[T, C, U]) Name() string {
	return c.base.Name()
}

// List serves a page of entities from cache when fresh. Params are
// normalized before the key is derived, so deeply equal params always
// share one entry regardless of which caller built them.
func (c *Cached[T, C, U]) List(ctx context.Context, params resource.ListParams) (*resource.ListResult[T], error) {
	if !c.gateOpen() {
		return nil, ErrGateClosed
	}

	params = params.Normalize()
	key := c.keys.SerializeKey(c.base.Name(), "list", params)
	c.trackKey(key)

	start := time.Now()
	fetched := false
	result, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*resource.ListResult[T], error) {
		fetched = true
		return runWithRetry(ctx, c.retry, func(ctx context.Context) (*resource.ListResult[T], error) {
			return c.base.List(ctx, params)
		}, c.onRetry("list"))
	})
	c.recorder.RecordRead(c.base.Name(), "list", !fetched, time.Since(start))
	return result, err
}

// Get serves a single entity from cache when fresh. An empty id fails
// before the cache is consulted, so no key is registered for it.
func (c *Cached[T, C, U]) Get(ctx context.Context, id string, params resource.GetParams) (*T, error) {
	if !c.gateOpen() {
		return nil, ErrGateClosed
	}
	if id == "" {
		return nil, apierr.Validation("id is required", nil)
	}

	key := c.keys.SerializeKey(c.base.Name(), "get", id, params)
	c.trackKey(key)

	start := time.Now()
	fetched := false
	result, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*T, error) {
		fetched = true
		return runWithRetry(ctx, c.retry, func(ctx context.Context) (*T, error) {
			return c.base.Get(ctx, id, params)
		}, c.onRetry("get"))
	})
	c.recorder.RecordRead(c.base.Name(), "get", !fetched, time.Since(start))
	return result, err
}

// Create delegates to the base client. Writes are never retried; the
// caller cannot know whether a failed attempt reached the server.
func (c *Cached[T, C, U]) Create(ctx context.Context, data C) (*T, error) {
	return writeThrough(ctx, c, "create", func(ctx context.Context) (*T, error) {
		return c.base.Create(ctx, data)
	})
}

// Update delegates to the base client and invalidates on success.
func (c *Cached[T, C, U]) Update(ctx context.Context, id string, data U) (*T, error) {
	return writeThrough(ctx, c, "update", func(ctx context.Context) (*T, error) {
		return c.base.Update(ctx, id, data)
	})
}

// Delete delegates to the base client and invalidates on success. A
// failed delete leaves every cached read untouched.
func (c *Cached[T, C, U]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := c.base.Delete(ctx, id)
	c.recorder.RecordWrite(c.base.Name(), "delete", err != nil, time.Since(start))
	if err != nil {
		return err
	}
	c.invalidateAfterWrite(ctx)
	return nil
}

// BatchCreate delegates to the base client. Partial success still
// invalidates: some rows changed on the server.
func (c *Cached[T, C, U]) BatchCreate(ctx context.Context, items []C) (*resource.BatchResult[T], error) {
	return writeThrough(ctx, c, "batchCreate", func(ctx context.Context) (*resource.BatchResult[T], error) {
		return c.base.BatchCreate(ctx, items)
	})
}

// BatchUpdate delegates to the base client and invalidates on success.
func (c *Cached[T, C, U]) BatchUpdate(ctx context.Context, updates []resource.BatchUpdate[U]) (*resource.BatchResult[T], error) {
	return writeThrough(ctx, c, "batchUpdate", func(ctx context.Context) (*resource.BatchResult[T], error) {
		return c.base.BatchUpdate(ctx, updates)
	})
}

// BatchDelete delegates to the base client and invalidates on success.
func (c *Cached[T, C, U]) BatchDelete(ctx context.Context, ids []string) (*resource.BatchResult[T], error) {
	return writeThrough(ctx, c, "batchDelete", func(ctx context.Context) (*resource.BatchResult[T], error) {
		return c.base.BatchDelete(ctx, ids)
	})
}

// Invalidate drops every cached read of this resource without touching
// the backend. Exposed for manual refresh flows.
func (c *Cached[T, C, U]) Invalidate(ctx context.Context) {
	c.invalidateAfterWrite(ctx)
}

// writeThrough wraps a write operation with metrics and post-success
// invalidation. Methods cannot introduce type parameters, hence the
// package-level function.
func writeThrough[T, C, U, R any](ctx context.Context, c *Cached[T, C, U], operation string, do func(ctx context.Context) (R, error)) (R, error) {
	start := time.Now()
	result, err := do(ctx)
	c.recorder.RecordWrite(c.base.Name(), operation, err != nil, time.Since(start))
	if err != nil {
		var zero R
		return zero, err
	}
	c.invalidateAfterWrite(ctx)
	return result, nil
}

func (c *Cached[T, C, U]) gateOpen() bool {
	return c.gate == nil || c.gate()
}

func (c *Cached[T, C, U]) trackKey(key string) {
	c.keyRegistry.Store(key, struct{}{})
}

func (c *Cached[T, C, U]) onRetry(operation string) func(attempt int) {
	return func(attempt int) {
		c.recorder.RecordRetry(c.base.Name(), operation)
		c.logger.Debug("retrying read",
			"resource", c.base.Name(),
			"operation", operation,
			"attempt", attempt,
		)
	}
}

// invalidateAfterWrite drops this resource's tracked keys, purges the
// declared related resources, and fans the prefixes out to sibling
// processes. Only called after a write reported success.
func (c *Cached[T, C, U]) invalidateAfterWrite(ctx context.Context) {
	prefixes := c.invalidationPrefixes(ctx)

	ownPrefix := prefixes[0]
	var keys []string
	c.keyRegistry.Range(func(key string, _ struct{}) bool {
		if strings.HasPrefix(key, ownPrefix) {
			keys = append(keys, key)
		}
		return true
	})

	if len(keys) > 0 {
		if err := c.cache.InvalidateKeys(ctx, keys); err != nil {
			c.logger.Warn("cache invalidation failed",
				"resource", c.base.Name(), "error", err)
		}
		for _, key := range keys {
			c.keyRegistry.Delete(key)
		}
	}
	c.recorder.RecordInvalidation(c.base.Name(), len(keys))

	for _, prefix := range prefixes[1:] {
		if err := c.purger.PurgePrefix(ctx, prefix); err != nil {
			c.logger.Warn("related resource invalidation failed",
				"resource", c.base.Name(), "prefix", prefix, "error", err)
		}
	}

	if err := c.invalidator.Publish(ctx, prefixes...); err != nil {
		c.logger.Warn("invalidation fanout failed",
			"resource", c.base.Name(), "error", err)
	}
}

// invalidationPrefixes returns the key prefixes a successful write
// must clear: this resource first, then the declared contract and any
// context-scoped targets, deduplicated in that order.
func (c *Cached[T, C, U]) invalidationPrefixes(ctx context.Context) []string {
	names := make([]string, 0, 1+len(c.invalidates))
	names = append(names, c.base.Name())
	names = append(names, c.invalidates...)
	names = append(names, invalidationTargetsFromContext(ctx)...)
	names = dedupeStrings(names)

	prefixes := make([]string, len(names))
	for i, name := range names {
		prefixes[i] = name + cache.KeySeparator
	}
	return prefixes
}
