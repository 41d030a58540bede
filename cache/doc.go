// Package cache provides the caching engine and key serialization the
// query layer is built on.
//
// # Overview
//
// The package exports two interfaces and their default implementations:
//
//   - Service: read-through cache operations with single-flight fetching
//   - KeySerializer: builds stable keys from (resource, operation, args)
//
// The default Service is backed by sturdyc, which shards entries for
// concurrent access and coalesces concurrent fetches of the same key
// into one upstream call. Fetch errors are returned to every waiter and
// never stored, so a failed read does not poison the cache.
//
// # Key Serialization
//
// Keys follow the shape
//
//	resource::operation::arg1::arg2
//
// and are deterministic for deeply equal arguments: map keys are
// sorted, struct fields are walked in declaration order, pointers are
// dereferenced, and times are normalized to UTC. Two call sites that
// build equal parameter structs independently therefore share a cache
// entry. Oversized argument sections are replaced with an xxhash
// digest; the resource::operation prefix always survives verbatim, so
// DeleteByPrefix(resource + KeySeparator) still removes every entry of
// a resource.
//
// # Invalidation
//
// Service supports deleting a single key, every key under a prefix, an
// explicit key set, and the whole cache. RedisInvalidator optionally
// fans prefix invalidations out to sibling processes over Redis
// pub/sub; instances tag messages with their own id and skip their own
// broadcasts.
//
// # Configuration
//
// Config mirrors the underlying engine's knobs (capacity, shard count,
// TTL, eviction). The TTL is the staleness window of every entry the
// service stores; derive per-resource windows by building one service
// per window with Config.WithTTL.
package cache
