// Package query decorates resource clients with caching, retries, and
// invalidation.
//
// # Overview
//
// Cached wraps a resource.Interface and intercepts its operations:
//
//   - Reads (List, Get) are served through the cache. The cache key is
//     derived from the resource name, the operation, and the normalized
//     parameters, so deeply equal parameters share one entry no matter
//     which caller built them.
//   - Writes (Create, Update, Delete, and the batch operations) pass
//     through to the base client. When, and only when, a write reports
//     success, the decorator drops every cached read of this resource
//     and of the resources declared with WithInvalidates.
//
// # Freshness
//
// The wrapped cache service's TTL is the resource's staleness window:
// inside it reads are answered locally, after it the next read fetches
// from the backend. Resources with different windows wrap different
// cache services.
//
// # Concurrency
//
// Concurrent reads of the same key share a single backend fetch through
// the cache engine's in-flight deduplication; every waiter receives the
// same result or the same error. Errors are never stored, so a request
// that fails or is abandoned leaves the cache exactly as it was.
//
// # Retries
//
// Failed reads are retried up to DefaultRetries times with exponential
// backoff and jitter, but only for failures that can plausibly succeed
// on reattempt: network failures and retryable HTTP statuses. Envelope
// and validation failures surface immediately. Writes are never
// retried; a failed write's effect on the server is unknown and
// reattempting could apply it twice.
//
// # Gates
//
// WithGate attaches an execution precondition to reads. While the gate
// is closed, List and Get return ErrGateClosed without network traffic
// or cache mutation. Writes are not gated.
//
// # Cross-process invalidation
//
// With a cache.Invalidator wired, successful writes broadcast the
// invalidated key prefixes over Redis so sibling processes drop their
// copies too. An instance never re-applies its own broadcast.
package query
