package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/tagcache/provider"
)

// Provider is an in-process Backend. Useful for tests and single-replica
// deployments; tag stamps are then local to the process too.
type Provider struct {
	c *rc.Cache
}

var _ pr.Backend = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// Cost of an entry is its length in bytes.
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (p *Provider) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if b, ok, _ := p.Get(ctx, k); ok {
			out[k] = b
		}
	}
	return out, nil
}

// Set waits for the write buffer so a following Get observes the value.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	ok := p.c.SetWithTTL(key, value, int64(len(value))+1, ttl)
	p.c.Wait()
	return ok, nil
}

func (p *Provider) SetMulti(_ context.Context, items map[string][]byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	all := true
	for k, v := range items {
		if !p.c.SetWithTTL(k, v, int64(len(v))+1, ttl) {
			all = false
		}
	}
	p.c.Wait()
	return all, nil
}

// Del reports ok=true even when the key was absent; ristretto does not say.
func (p *Provider) Del(_ context.Context, key string) (bool, error) {
	p.c.Del(key)
	return true, nil
}

func (p *Provider) Flush(context.Context) error {
	p.c.Clear()
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Helper to expose metrics if desired by the application (not part of provider.Backend).
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
