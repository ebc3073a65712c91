package memcache

import (
	"context"
	"errors"
	"time"

	mc "github.com/bradfitz/gomemcache/memcache"

	pr "github.com/unkn0wn-root/tagcache/provider"
)

// maxRelativeExpiry is the largest expiration memcached treats as relative.
// Anything above is read as an absolute unix timestamp.
const maxRelativeExpiry = 30 * 24 * time.Hour

var ErrNilClient = errors.New("memcache provider: nil client")

type Memcache struct {
	c           *mc.Client
	closeClient bool
	now         func() time.Time
}

var _ pr.Backend = (*Memcache)(nil)

type Config struct {
	// Servers is used to build a client when Client is nil.
	Servers      []string
	Client       *mc.Client
	Timeout      time.Duration // 0 => gomemcache default
	MaxIdleConns int           // 0 => gomemcache default
}

func New(cfg Config) (*Memcache, error) {
	c := cfg.Client
	owned := false
	if c == nil {
		if len(cfg.Servers) == 0 {
			return nil, ErrNilClient
		}
		c = mc.New(cfg.Servers...)
		owned = true
	}
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	if cfg.MaxIdleConns > 0 {
		c.MaxIdleConns = cfg.MaxIdleConns
	}
	return &Memcache{c: c, closeClient: owned, now: time.Now}, nil
}

// Ping checks that every configured server answers.
func (p *Memcache) Ping(context.Context) error { return p.c.Ping() }

func (p *Memcache) Get(_ context.Context, key string) ([]byte, bool, error) {
	it, err := p.c.Get(key)
	if errors.Is(err, mc.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return it.Value, true, nil
}

func (p *Memcache) GetMulti(_ context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}
	items, err := p.c.GetMulti(keys)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(items))
	for k, it := range items {
		out[k] = it.Value
	}
	return out, nil
}

func (p *Memcache) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	err := p.c.Set(&mc.Item{Key: key, Value: value, Expiration: p.expiration(ttl)})
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetMulti issues one SET per item; the memcache text protocol has no batched set.
// The first error aborts the batch.
func (p *Memcache) SetMulti(_ context.Context, items map[string][]byte, ttl time.Duration) (bool, error) {
	exp := p.expiration(ttl)
	for k, v := range items {
		if err := p.c.Set(&mc.Item{Key: k, Value: v, Expiration: exp}); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (p *Memcache) Del(_ context.Context, key string) (bool, error) {
	err := p.c.Delete(key)
	if errors.Is(err, mc.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Memcache) Flush(context.Context) error { return p.c.FlushAll() }

// Close releases the underlying client only when this provider created it.
func (p *Memcache) Close(context.Context) error {
	if p.closeClient {
		return p.c.Close()
	}
	return nil
}

// expiration converts ttl to memcached seconds:
//   - ttl <= 0       => 0 (no expiry)
//   - sub-second ttl => 1 (0 would mean "forever")
//   - ttl > 30 days  => absolute unix time
func (p *Memcache) expiration(ttl time.Duration) int32 {
	if ttl <= 0 {
		return 0
	}
	if ttl > maxRelativeExpiry {
		return int32(p.now().Add(ttl).Unix())
	}
	secs := int32(ttl / time.Second)
	if secs == 0 {
		secs = 1
	}
	return secs
}
