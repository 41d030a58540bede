package query

import (
	"log/slog"
	"time"

	"github.com/AnkaaDesign/apiclient/cache"
	"github.com/AnkaaDesign/apiclient/observability/metrics"
)

// Option configures a Cached resource.
type Option func(*settings)

type settings struct {
	retries     int
	retryDelay  time.Duration
	gate        func() bool
	invalidates []string
	recorder    metrics.Recorder
	logger      *slog.Logger
	purger      Purger
	invalidator cache.Invalidator
}

func defaultSettings() settings {
	return settings{
		retries:     DefaultRetries,
		retryDelay:  DefaultRetryBaseDelay,
		recorder:    metrics.Nop(),
		invalidator: cache.NopInvalidator(),
	}
}

// WithRetries sets how many times a failed read is retried before the
// error reaches the caller. Zero disables retries entirely.
func WithRetries(n int) Option {
	return func(s *settings) {
		if n < 0 {
			n = 0
		}
		s.retries = n
	}
}

// WithRetryBackoff sets the base delay between retry attempts. The
// delay doubles per attempt with jitter on top.
func WithRetryBackoff(base time.Duration) Option {
	return func(s *settings) { s.retryDelay = base }
}

// WithGate attaches an execution gate to reads. While the gate reports
// closed, List and Get return ErrGateClosed without touching the
// network or the cache. Typical gates check authentication state or a
// required parent selection.
func WithGate(gate func() bool) Option {
	return func(s *settings) { s.gate = gate }
}

// WithInvalidates declares the related resources whose cached reads a
// successful write on this resource must also drop. The contract is
// applied on every write success and never on failure.
func WithInvalidates(resources ...string) Option {
	return func(s *settings) { s.invalidates = append(s.invalidates, resources...) }
}

// WithRecorder wires operation metrics.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(s *settings) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// WithLogger wires the decorator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithPurger overrides how related-resource prefixes are purged. Wire
// a purger backed by every cache service in the process when related
// resources live in services with different staleness windows.
func WithPurger(purger Purger) Option {
	return func(s *settings) { s.purger = purger }
}

// WithInvalidator wires cross-process invalidation fanout.
func WithInvalidator(invalidator cache.Invalidator) Option {
	return func(s *settings) {
		if invalidator != nil {
			s.invalidator = invalidator
		}
	}
}
