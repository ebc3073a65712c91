// Package provider defines the storage abstraction used by tagcache.
//
// A Backend is a raw byte store with memcache-protocol semantics: single and
// batched get/set, delete, flush and a per-entry TTL. It knows nothing about
// tags, entries or transactions.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key.
//
// Important: tagcache hashes every key it writes (objects and tag stamps alike).
// External code sharing the same store and prefix MUST NOT write under those
// hashed keys; foreign values are read as misses.
package provider

import (
	"context"
	"time"
)

// Backend is a minimal byte store with TTLs.
// A ttl <= 0 means "no expiry". Failures are reported through err; callers in
// tagcache treat any error as a miss (reads) or false (writes).
type Backend interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// GetMulti returns the found keys only; absent keys are omitted.
	GetMulti(ctx context.Context, keys []string) (map[string][]byte, error)

	// Set stores value with the given TTL.
	// Returns ok=false when the store rejected the write.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// SetMulti stores all items with the same TTL. It is not atomic.
	SetMulti(ctx context.Context, items map[string][]byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key. ok=false when the key was not present.
	Del(ctx context.Context, key string) (ok bool, err error)

	// Flush drops every key in the store.
	Flush(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
