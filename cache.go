package tagcache

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/tagcache/codec"
	"github.com/unkn0wn-root/tagcache/internal/txlog"
	"github.com/unkn0wn-root/tagcache/internal/util"
	"github.com/unkn0wn-root/tagcache/internal/wire"
	pr "github.com/unkn0wn-root/tagcache/provider"
	"github.com/unkn0wn-root/tagcache/tagstore"
)

const defaultMonitorName = "tagcache"

type cache[V Value] struct {
	prefix  string
	live    pr.Backend
	state   backendState
	store   guarded[V]
	tags    *tagstore.Store
	tx      *txlog.Log[V]
	codec   c.Codec[V]
	log     Logger
	hooks   Hooks
	monitor Monitor
	enabled bool

	monitorName  string
	forceTimeout time.Duration
	now          func() time.Time
}

func newCache[V Value](opts Options[V]) (*cache[V], error) {
	if opts.Backend == nil && !opts.Disabled {
		return nil, fmt.Errorf("tagcache: backend is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("tagcache: codec is required")
	}
	if opts.Prefix == "" {
		return nil, fmt.Errorf("tagcache: prefix is required")
	}

	c := &cache[V]{
		prefix:  opts.Prefix,
		live:    opts.Backend,
		codec:   opts.Codec,
		enabled: !opts.Disabled,
		tx:      txlog.New[V](),
		now:     time.Now,
	}
	if !c.enabled {
		c.live = pr.Dummy{}
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.monitor = coalesce[Monitor](opts.Monitor, NopMonitor{})
	c.monitorName = coalesce(opts.MonitorName, defaultMonitorName)
	c.forceTimeout = coalesce(opts.ForceTimeout, defaultForceTimeout)

	c.store = guarded[V]{c: c}
	c.tags = tagstore.New(c.store, c.tagKey, opts.Clock)
	return c, nil
}

func (c *cache[V]) Enabled() bool       { return c.enabled }
func (c *cache[V]) Degraded() bool      { return c.state == stateDegraded }
func (c *cache[V]) Backend() pr.Backend { return c.backend() }

// Close closes the Backend. When the Backend is shared by many instances,
// close it once where it was created instead.
func (c *cache[V]) Close(ctx context.Context) error {
	return c.store.Close(ctx)
}

func (c *cache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	if c.tx.IsKeyDeleted(key) {
		return zero, false
	}
	k := c.key(key)
	raw, ok, err := c.store.Get(ctx, k)
	if err != nil || !ok {
		return zero, false
	}
	e, err := wire.DecodeEntry(raw)
	if err != nil {
		c.hooks.CorruptEntry(k)
		return zero, false
	}
	if e.Expires == 0 && len(e.Tags) > 0 {
		current, ok := c.resolveTags(ctx, keysOf(e.Tags))
		if !ok {
			return zero, false
		}
		if !valid(e, current) {
			_, _ = c.store.Del(ctx, k)
			c.hooks.StaleEntryDeleted(k, "tag_mismatch")
			return zero, false
		}
	}
	v, err := c.codec.Decode(e.Value)
	if err != nil {
		_, _ = c.store.Del(ctx, k) // self-heal
		c.hooks.StaleEntryDeleted(k, "value_decode")
		return zero, false
	}
	return v, true
}

// GetMulti returns the valid values among keys in request order.
// Invalid entries are skipped but not deleted. The result is nil when
// nothing valid was found, including when keys is empty.
func (c *cache[V]) GetMulti(ctx context.Context, keys []string) []V {
	logical := make([]string, 0, len(keys))
	storage := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup || c.tx.IsKeyDeleted(k) {
			continue
		}
		seen[k] = struct{}{}
		logical = append(logical, k)
		storage = append(storage, c.key(k))
	}
	if len(storage) == 0 {
		return nil
	}

	raw, err := c.store.GetMulti(ctx, storage)
	if err != nil || len(raw) == 0 {
		return nil
	}

	entries := make([]*wire.Entry, len(storage))
	var tags []string
	for i, sk := range storage {
		b, ok := raw[sk]
		if !ok {
			continue
		}
		e, err := wire.DecodeEntry(b)
		if err != nil {
			c.hooks.CorruptEntry(sk)
			continue
		}
		entries[i] = &e
		if e.Expires == 0 {
			tags = append(tags, keysOf(e.Tags)...)
		}
	}

	// one resolution for the union of all tags
	current, _ := c.resolveTags(ctx, tags)

	var out []V
	for i, e := range entries {
		if e == nil || !valid(*e, current) {
			continue
		}
		v, err := c.codec.Decode(e.Value)
		if err != nil {
			c.log.Debug("GetMulti skipped undecodable value", Fields{"key": logical[i], "err": err})
			continue
		}
		out = append(out, v)
	}
	return out
}

// GetRaw reads a value stored by SetRaw.
func (c *cache[V]) GetRaw(ctx context.Context, key string) ([]byte, bool) {
	if c.tx.IsKeyDeleted(key) {
		return nil, false
	}
	b, ok, err := c.store.Get(ctx, c.key(key))
	if err != nil || !ok {
		return nil, false
	}
	return b, true
}

func (c *cache[V]) Set(ctx context.Context, value V) error {
	if c.tx.IsStarted() {
		c.tx.LogBusiness(value)
		return nil
	}
	return c.set(ctx, value)
}

func (c *cache[V]) set(ctx context.Context, value V) error {
	ttl := value.Expires()
	current, ok := c.resolveTags(ctx, value.CacheTags())
	if !ok {
		// an entry holding call-local stamps could never be read back
		return nil
	}
	b, err := c.entry(value, current, ttl)
	if err != nil {
		return err
	}
	k := c.key(value.CacheKey())
	stored, err := c.store.Set(ctx, k, b, ttl)
	if err == nil && !stored {
		c.log.Debug("Set rejected by backend (pressure)", Fields{"key": value.CacheKey()})
		c.hooks.BackendSetRejected(k, false)
	}
	return nil
}

// SetMulti writes every item with the same ttl in one backend call.
// Existing tag stamps are not reset.
func (c *cache[V]) SetMulti(ctx context.Context, items []V, ttl time.Duration) error {
	if c.tx.IsStarted() {
		c.tx.LogMulti(items, ttl)
		return nil
	}
	return c.setMulti(ctx, items, ttl)
}

func (c *cache[V]) setMulti(ctx context.Context, items []V, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	var tags []string
	for _, it := range items {
		tags = append(tags, it.CacheTags()...)
	}
	current, ok := c.resolveTags(ctx, tags)
	if !ok {
		return nil
	}

	batch := make(map[string][]byte, len(items))
	for _, it := range items {
		b, err := c.entry(it, current, ttl)
		if err != nil {
			return err
		}
		batch[c.key(it.CacheKey())] = b
	}
	ok, err := c.store.SetMulti(ctx, batch, ttl)
	if err == nil && !ok {
		c.log.Debug("SetMulti rejected by backend (pressure)", Fields{"count": len(batch)})
		c.hooks.BackendSetRejected("", true)
	}
	return nil
}

// SetRaw stores value as is, without tags or entry framing.
func (c *cache[V]) SetRaw(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if c.tx.IsStarted() {
		c.tx.LogRaw(key, value, ttl)
		return true
	}
	return c.setRaw(ctx, key, value, ttl)
}

func (c *cache[V]) setRaw(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	k := c.key(key)
	ok, err := c.store.Set(ctx, k, value, ttl)
	if err == nil && !ok {
		c.hooks.BackendSetRejected(k, false)
	}
	return err == nil && ok
}

func (c *cache[V]) Delete(ctx context.Context, key string) bool {
	if c.tx.IsStarted() {
		c.tx.LogDeleted(key)
		return true
	}
	return c.del(ctx, key)
}

func (c *cache[V]) del(ctx context.Context, key string) bool {
	ok, err := c.store.Del(ctx, c.key(key))
	return err == nil && ok
}

func (c *cache[V]) ResetTags(ctx context.Context, tags ...string) map[string]uint64 {
	out, err := c.tags.Reset(ctx, tags)
	if err != nil {
		c.log.Warn("tag reset error", Fields{"tags": tags, "err": err})
		c.hooks.TagError(len(tags), err)
	}
	return out
}

func (c *cache[V]) Flush(ctx context.Context) bool {
	return c.store.Flush(ctx) == nil
}

// resolveTags reports ok=false when the stamps could not be read or stored.
// The map is still complete: its stamps are local to the call and match no
// stored entry, so callers must not delete or write on their account.
func (c *cache[V]) resolveTags(ctx context.Context, tags []string) (map[string]uint64, bool) {
	current, err := c.tags.Resolve(ctx, tags)
	if err != nil {
		c.log.Debug("tag resolve error", Fields{"count": len(tags), "err": err})
		c.hooks.TagError(len(tags), err)
		return current, false
	}
	return current, true
}

// entry frames value with the stamps of its own tags taken from current.
func (c *cache[V]) entry(value V, current map[string]uint64, ttl time.Duration) ([]byte, error) {
	payload, err := c.codec.Encode(value)
	if err != nil {
		return nil, err
	}
	own := value.CacheTags()
	snap := make(map[string]uint64, len(own))
	for _, t := range own {
		snap[t] = current[t]
	}
	return wire.EncodeEntry(wire.Entry{Value: payload, Tags: snap, Expires: ttl})
}

func (c *cache[V]) key(userKey string) string {
	return util.NamespacedKey(c.prefix, userKey)
}

func (c *cache[V]) tagKey(tag string) string {
	return util.TagKey(c.prefix, tag)
}

// valid: entries with a ttl are trusted to the backend's expiry; the rest
// must carry exactly the current stamp of every tag they name.
func valid(e wire.Entry, current map[string]uint64) bool {
	if e.Expires != 0 {
		return true
	}
	for t, st := range e.Tags {
		if cur, ok := current[t]; !ok || cur != st {
			return false
		}
	}
	return true
}

func keysOf(m map[string]uint64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
