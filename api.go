package tagcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/tagcache/codec"
	pr "github.com/unkn0wn-root/tagcache/provider"
	"github.com/unkn0wn-root/tagcache/tagstore"
)

// Value is what the cache needs from a cached object.
type Value interface {
	// CacheKey is the logical identity key (namespaced by the cache).
	CacheKey() string
	// CacheTags lists the invalidation groups the value belongs to.
	CacheTags() []string
	// Expires is the entry TTL. Non-zero entries are trusted to the backend's
	// expiry and are not checked against their tags.
	Expires() time.Duration
}

// Cache is the tag-aware cache API. V is the caller's value type; payloads
// are serialized by a pluggable Codec[V].
//
// A Cache instance is meant for one logical caller at a time (e.g. one
// request) and holds no locks. Create instances freely over a shared Backend.
type Cache[V Value] interface {
	Enabled() bool
	// Degraded reports whether the liveness guard tripped for this instance.
	Degraded() bool
	// Backend returns the backend currently in effect (Dummy once degraded).
	Backend() pr.Backend
	Close(context.Context) error

	// Reads. Stale, foreign and transaction-deleted entries read as misses.
	Get(ctx context.Context, key string) (v V, ok bool)
	GetMulti(ctx context.Context, keys []string) []V
	GetRaw(ctx context.Context, key string) ([]byte, bool)

	// Writes snapshot current tag stamps; they never advance them.
	Set(ctx context.Context, value V) error
	SetMulti(ctx context.Context, items []V, ttl time.Duration) error
	SetRaw(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool

	// ResetTags invalidates every entry that snapshotted one of tags.
	// It is applied immediately, even inside a transaction.
	ResetTags(ctx context.Context, tags ...string) map[string]uint64

	// Flush drops everything in the backend. For debugging only.
	Flush(ctx context.Context) bool

	// Transactions buffer Set/SetMulti/SetRaw/Delete until commit.
	BeginTransaction(ctx context.Context) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	IsTransaction() bool
}

// Options tune the behavior of the cache.
// Prefix, Backend and Codec are required; others have sensible defaults.
type Options[V Value] struct {
	// Required
	Prefix  string // key prefix, e.g. "app:prod"; part of every hashed key
	Backend pr.Backend
	Codec   c.Codec[V]

	Logger       Logger          // if nil, NopLogger is used
	Hooks        Hooks           // if nil, NopHooks is used
	Monitor      Monitor         // if nil, NopMonitor is used
	MonitorName  string          // "db" tag of monitor timers; "" => "tagcache"
	ForceTimeout time.Duration   // slowest acceptable backend call; 0 => 1s
	Disabled     bool            // default false (enabled); disabled uses the dummy backend
	Clock        *tagstore.Clock // stamp source; nil => process-wide clock
}

func New[V Value](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
