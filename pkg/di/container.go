// Package di wires the client stack together: transport, token store,
// cache services, key serialization, metrics, and invalidation fanout.
// The container owns one cache service per staleness window and the
// session lifecycle that flushes them.
package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/redis/go-redis/v9"

	"github.com/AnkaaDesign/apiclient/auth"
	"github.com/AnkaaDesign/apiclient/cache"
	"github.com/AnkaaDesign/apiclient/observability/metrics"
	"github.com/AnkaaDesign/apiclient/query"
	"github.com/AnkaaDesign/apiclient/resource"
	"github.com/AnkaaDesign/apiclient/transport"
)

// Options configures the container.
type Options struct {
	// Transport carries the API base URL, timeout, and user agent. The
	// container fills in the token source, logger, and tracer.
	Transport transport.Config

	// TokenStorePath is the bbolt file holding the session token.
	// Empty selects an in-memory store, which does not survive
	// restarts.
	TokenStorePath string

	// Cache is the base engine configuration. The TTL field is ignored;
	// each staleness window derives its own service from this base.
	// Zero value uses cache.DefaultConfig().
	Cache cache.Config

	// Recorder receives operation metrics. Nil means none.
	Recorder metrics.Recorder

	// Logger is shared by every component. Nil means slog.Default().
	Logger *slog.Logger

	// Redis enables cross-process invalidation fanout when set.
	Redis *redis.Client

	// RedisChannel overrides the fanout channel name.
	RedisChannel string
}

// Container builds and owns the shared pieces of the client stack.
type Container struct {
	transport *transport.Client
	store     auth.Store
	tokens    auth.TokenSource
	keys      cache.KeySerializer
	recorder  metrics.Recorder
	logger    *slog.Logger

	cacheBase cache.Config
	services  *xsync.MapOf[time.Duration, cache.Service]

	invalidator cache.Invalidator
	redisFanout *cache.RedisInvalidator

	mu            sync.Mutex
	authListeners []func()
}

// NewContainer wires the stack from the options. Callers must Close the
// container to release the token store and fanout subscription.
func NewContainer(opts Options) (*Container, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.Nop()
	}

	cacheBase := opts.Cache
	if cacheBase == (cache.Config{}) {
		cacheBase = cache.DefaultConfig()
	}
	if err := cacheBase.Validate(); err != nil {
		return nil, fmt.Errorf("di: cache config: %w", err)
	}

	var store auth.Store
	var err error
	if opts.TokenStorePath != "" {
		store, err = auth.OpenBoltStore(opts.TokenStorePath)
		if err != nil {
			return nil, fmt.Errorf("di: open token store: %w", err)
		}
	} else {
		store = auth.NewMemoryStore()
	}

	tokens := auth.SourceFromStore(store)

	transportCfg := opts.Transport
	transportCfg.Tokens = tokens
	if transportCfg.Logger == nil {
		transportCfg.Logger = logger
	}

	rt, err := transport.NewClient(transportCfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("di: build transport: %w", err)
	}

	c := &Container{
		transport:   rt,
		store:       store,
		tokens:      tokens,
		keys:        cache.NewKeySerializer(),
		recorder:    recorder,
		logger:      logger,
		cacheBase:   cacheBase,
		services:    xsync.NewMapOf[time.Duration, cache.Service](),
		invalidator: cache.NopInvalidator(),
	}

	if opts.Redis != nil {
		fanout := cache.NewRedisInvalidator(opts.Redis, opts.RedisChannel, logger)
		c.invalidator = fanout
		c.redisFanout = fanout
	}

	return c, nil
}

// Transport returns the shared HTTP transport.
func (c *Container) Transport() *transport.Client {
	return c.transport
}

// Tokens returns the token source backing the transport.
func (c *Container) Tokens() auth.TokenSource {
	return c.tokens
}

// KeySerializer returns the shared key serializer.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keys
}

// Recorder returns the metrics recorder.
func (c *Container) Recorder() metrics.Recorder {
	return c.recorder
}

// Logger returns the shared logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Invalidator returns the cross-process invalidation fanout, or a no-op
// when Redis is not configured.
func (c *Container) Invalidator() cache.Invalidator {
	return c.invalidator
}

// CacheService returns the cache service for the given staleness
// window, building it on first use. Resources sharing a window share a
// service, so one resource's prefix invalidations can reach another's
// entries.
func (c *Container) CacheService(staleness time.Duration) (cache.Service, error) {
	if staleness <= 0 {
		return nil, fmt.Errorf("di: staleness window must be positive, got %v", staleness)
	}

	service, _ := c.services.LoadOrCompute(staleness, func() cache.Service {
		s, err := cache.NewService(c.cacheBase.WithTTL(staleness))
		if err != nil {
			c.logger.Error("cache service construction failed",
				"staleness", staleness, "error", err)
			return nil
		}
		if c.redisFanout != nil {
			c.redisFanout.Watch(s)
		}
		return s
	})
	if service == nil {
		c.services.Delete(staleness)
		return nil, fmt.Errorf("di: cache service for %v window unavailable", staleness)
	}
	return service, nil
}

// PurgePrefix removes entries under prefix from every provisioned cache
// service. This implements query.Purger so cross-resource invalidation
// reaches resources cached under other staleness windows.
func (c *Container) PurgePrefix(ctx context.Context, prefix string) error {
	var firstErr error
	c.services.Range(func(_ time.Duration, service cache.Service) bool {
		if service == nil {
			return true
		}
		if err := service.DeleteByPrefix(ctx, prefix); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// ClearCaches flushes every provisioned cache service.
func (c *Container) ClearCaches(ctx context.Context) error {
	var firstErr error
	c.services.Range(func(_ time.Duration, service cache.Service) bool {
		if service == nil {
			return true
		}
		if err := service.Clear(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// SetToken persists a new session token and flushes every cache, since
// cached responses may belong to the previous identity.
func (c *Container) SetToken(ctx context.Context, token string) error {
	if err := c.store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("di: persist token: %w", err)
	}
	if err := c.ClearCaches(ctx); err != nil {
		return err
	}
	c.notifyAuthChange()
	return nil
}

// Logout removes the session token and flushes every cache.
func (c *Container) Logout(ctx context.Context) error {
	if err := c.store.DeleteToken(ctx); err != nil {
		return fmt.Errorf("di: delete token: %w", err)
	}
	if err := c.ClearCaches(ctx); err != nil {
		return err
	}
	c.notifyAuthChange()
	return nil
}

// OnAuthChange registers a callback invoked after SetToken and Logout
// complete. Callbacks run synchronously on the calling goroutine.
func (c *Container) OnAuthChange(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authListeners = append(c.authListeners, fn)
}

func (c *Container) notifyAuthChange() {
	c.mu.Lock()
	listeners := make([]func(), len(c.authListeners))
	copy(listeners, c.authListeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Close releases the token store and, when configured, the invalidation
// fanout subscription.
func (c *Container) Close() error {
	var errs []error
	if c.redisFanout != nil {
		if err := c.redisFanout.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NewCachedResource builds a resource client for name and decorates it
// with caching at the given staleness window, wiring the container's
// recorder, logger, purger, and fanout. Methods cannot introduce type
// parameters, hence the package-level function.
func NewCachedResource[T, C, U any](c *Container, name string, staleness time.Duration, opts ...query.Option) (*query.Cached[T, C, U], error) {
	base := resource.New[T, C, U](c.transport, name)
	return WrapResource[T, C, U](c, base, staleness, opts...)
}

// WrapResource decorates an existing resource client, for callers that
// need resource-level options such as resource.WithPatchUpdates.
func WrapResource[T, C, U any](c *Container, base resource.Interface[T, C, U], staleness time.Duration, opts ...query.Option) (*query.Cached[T, C, U], error) {
	service, err := c.CacheService(staleness)
	if err != nil {
		return nil, err
	}

	combined := append([]query.Option{
		query.WithRecorder(c.recorder),
		query.WithLogger(c.logger),
		query.WithPurger(c),
		query.WithInvalidator(c.invalidator),
	}, opts...)

	return query.New[T, C, U](base, service, c.keys, combined...), nil
}
