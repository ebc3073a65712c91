// Package tagcache is a cache in front of a memcache-style key/value store
// that adds tag-based invalidation, a latency circuit breaker and buffered
// transactions.
//
// Components:
//   - Backend: raw byte store with TTL (memcached, Redis, Ristretto, BigCache).
//   - Codec[V]: (de)serializes V <-> []byte.
//   - tagstore: per-tag version stamps kept in the same Backend.
//
// Tags:
//
// Every entry records the stamp of each of its tags at write time. ResetTags
// writes fresh stamps; an entry whose recorded stamps no longer match is a
// miss and is deleted on the next single Get. Entries written with a non-zero
// TTL skip the check and live until the backend expires them.
//
//	_ = cache.Set(ctx, user)             // user.CacheTags() == ["user-list"]
//	cache.ResetTags(ctx, "user-list")    // every user entry is now stale
//
// Liveness guard:
//
// Each backend call is timed. A call slower than Options.ForceTimeout switches
// the instance to a dummy backend for good: reads miss, writes succeed and go
// nowhere. Instances are cheap; create one per request over a shared Backend.
//
// Consistency:
//
// Tag resets and batched writes are not atomic across keys. A reader can see
// a new entry with an old stamp (or the reverse) for a moment; the worst case
// is a stale hit until the next read, never an error.
package tagcache
