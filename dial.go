package tagcache

import (
	"context"

	"github.com/unkn0wn-root/tagcache/config"
	pr "github.com/unkn0wn-root/tagcache/provider"
	"github.com/unkn0wn-root/tagcache/provider/memcache"
)

// Dial builds a cache for the memcached store described by cfg.
// cfg.Prefix replaces opts.Prefix and cfg.Disabled forces the dummy backend;
// opts.Backend is ignored. An invalid config or an unreachable server yields
// a *ConnectError.
func Dial[V Value](ctx context.Context, cfg *config.Config, opts Options[V]) (Cache[V], error) {
	if cfg == nil {
		return nil, &ConnectError{Err: errNotConfigured}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConnectError{Err: err}
	}
	opts.Prefix = cfg.Prefix

	if cfg.IsDisabled() {
		opts.Backend = pr.Dummy{}
		opts.Disabled = true
		return New(opts)
	}

	b, err := memcache.New(memcache.Config{
		Servers: []string{cfg.Addr()},
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, &ConnectError{Addr: cfg.Addr(), Err: err}
	}
	if err := b.Ping(ctx); err != nil {
		_ = b.Close(ctx)
		return nil, &ConnectError{Addr: cfg.Addr(), Err: err}
	}
	opts.Backend = b
	return New(opts)
}
