package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultInvalidationChannel is the Redis channel invalidation messages
// are published on when the caller does not pick one.
const DefaultInvalidationChannel = "ankaa:cache:invalidation"

// Invalidator fans cache invalidations out to other processes. Local
// deletion has already happened by the time Publish is called; the
// fanout only keeps sibling instances from serving data the caller just
// changed.
type Invalidator interface {
	Publish(ctx context.Context, prefixes ...string) error
	Close() error
}

// NopInvalidator is used when no cross-process fanout is configured.
func NopInvalidator() Invalidator {
	return nopInvalidator{}
}

type nopInvalidator struct{}

func (nopInvalidator) Publish(context.Context, ...string) error { return nil }
func (nopInvalidator) Close() error                             { return nil }

type invalidationMessage struct {
	Instance string   `json:"instance"`
	Prefixes []string `json:"prefixes"`
}

// RedisInvalidator broadcasts key-prefix invalidations over a Redis
// pub/sub channel and applies messages from other instances to the
// local cache services. Messages carry the publishing instance's id so
// an instance never re-applies its own deletions.
type RedisInvalidator struct {
	rdb      *redis.Client
	channel  string
	instance string
	logger   *slog.Logger

	mu      sync.Mutex
	targets []Service

	sub    *redis.PubSub
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRedisInvalidator starts the subscription loop. targets may be
// empty; register cache services later with Watch.
func NewRedisInvalidator(rdb *redis.Client, channel string, logger *slog.Logger, targets ...Service) *RedisInvalidator {
	if channel == "" {
		channel = DefaultInvalidationChannel
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	inv := &RedisInvalidator{
		rdb:      rdb,
		channel:  channel,
		instance: uuid.NewString(),
		logger:   logger,
		targets:  targets,
		sub:      rdb.Subscribe(ctx, channel),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go inv.run(ctx)
	return inv
}

// Watch registers an additional cache service to receive remote
// invalidations.
func (inv *RedisInvalidator) Watch(service Service) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.targets = append(inv.targets, service)
}

// Publish broadcasts the prefixes to sibling instances.
func (inv *RedisInvalidator) Publish(ctx context.Context, prefixes ...string) error {
	if len(prefixes) == 0 {
		return nil
	}

	payload, err := json.Marshal(invalidationMessage{
		Instance: inv.instance,
		Prefixes: prefixes,
	})
	if err != nil {
		return fmt.Errorf("cache: encode invalidation message: %w", err)
	}

	if err := inv.rdb.Publish(ctx, inv.channel, payload).Err(); err != nil {
		return fmt.Errorf("cache: publish invalidation: %w", err)
	}
	return nil
}

// Close stops the subscription loop and waits for it to drain.
func (inv *RedisInvalidator) Close() error {
	inv.cancel()
	err := inv.sub.Close()
	<-inv.done
	return err
}

func (inv *RedisInvalidator) run(ctx context.Context) {
	defer close(inv.done)

	for msg := range inv.sub.Channel() {
		var m invalidationMessage
		if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
			inv.logger.Warn("cache: dropping malformed invalidation message", "error", err)
			continue
		}
		if m.Instance == inv.instance {
			continue
		}

		inv.mu.Lock()
		targets := make([]Service, len(inv.targets))
		copy(targets, inv.targets)
		inv.mu.Unlock()

		for _, target := range targets {
			for _, prefix := range m.Prefixes {
				if err := target.DeleteByPrefix(ctx, prefix); err != nil {
					inv.logger.Warn("cache: remote invalidation failed",
						"prefix", prefix, "error", err)
				}
			}
		}
	}
}
