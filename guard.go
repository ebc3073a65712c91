package tagcache

import (
	"context"
	"time"

	pr "github.com/unkn0wn-root/tagcache/provider"
)

const defaultForceTimeout = time.Second

// backendState is the liveness guard of one cache instance.
// The only transition is stateActive -> stateDegraded.
type backendState uint8

const (
	stateActive backendState = iota
	stateDegraded
)

func (s backendState) String() string {
	if s == stateDegraded {
		return "degraded"
	}
	return "active"
}

// guarded is the cache's only way to reach a Backend. Every call is timed by
// the Monitor and by the liveness guard, and routed to the dummy backend once
// the instance is degraded. It also feeds the tag store.
type guarded[V Value] struct{ c *cache[V] }

var _ pr.Backend = guarded[Value]{}

func (g guarded[V]) Get(ctx context.Context, key string) ([]byte, bool, error) {
	defer g.c.observe("get")()
	b, ok, err := g.c.backend().Get(ctx, key)
	g.c.failed("get", err)
	return b, ok, err
}

func (g guarded[V]) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	defer g.c.observe("getMulti")()
	m, err := g.c.backend().GetMulti(ctx, keys)
	g.c.failed("getMulti", err)
	return m, err
}

func (g guarded[V]) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	defer g.c.observe("set")()
	ok, err := g.c.backend().Set(ctx, key, value, ttl)
	g.c.failed("set", err)
	return ok, err
}

func (g guarded[V]) SetMulti(ctx context.Context, items map[string][]byte, ttl time.Duration) (bool, error) {
	defer g.c.observe("setMulti")()
	ok, err := g.c.backend().SetMulti(ctx, items, ttl)
	g.c.failed("setMulti", err)
	return ok, err
}

func (g guarded[V]) Del(ctx context.Context, key string) (bool, error) {
	defer g.c.observe("delete")()
	ok, err := g.c.backend().Del(ctx, key)
	g.c.failed("delete", err)
	return ok, err
}

func (g guarded[V]) Flush(ctx context.Context) error {
	defer g.c.observe("flush")()
	err := g.c.backend().Flush(ctx)
	g.c.failed("flush", err)
	return err
}

// Close is not timed; it never reaches the dummy backend either.
func (g guarded[V]) Close(ctx context.Context) error {
	return g.c.live.Close(ctx)
}

func (c *cache[V]) backend() pr.Backend {
	if c.state == stateDegraded {
		return pr.Dummy{}
	}
	return c.live
}

// observe starts a monitor timer and the guard clock for one backend call.
// The returned func must run on every exit path (use defer).
func (c *cache[V]) observe(op string) func() {
	t := c.timer(op)
	start := c.now()
	return func() {
		t.Stop()
		c.checkAlive(op, c.now().Sub(start))
	}
}

func (c *cache[V]) timer(op string) Timer {
	return c.monitor.CreateTimer(map[string]string{"db": c.monitorName, "operation": op})
}

// checkAlive can only measure a call after it returned; a hung backend still
// blocks the caller for as long as ctx allows.
func (c *cache[V]) checkAlive(op string, elapsed time.Duration) {
	if c.state == stateDegraded || elapsed <= c.forceTimeout {
		return
	}
	c.state = stateDegraded
	c.log.Warn("backend too slow; switched to dummy backend", Fields{
		"op":        op,
		"elapsed":   elapsed,
		"threshold": c.forceTimeout,
	})
	c.hooks.BackendDegraded(op, elapsed)
}

func (c *cache[V]) failed(op string, err error) {
	if err == nil {
		return
	}
	c.log.Debug("backend call failed", Fields{"op": op, "err": err})
	c.hooks.BackendError(op, err)
}
