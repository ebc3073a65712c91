// Package asynchook moves tagcache hook calls off the request path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    StaleEvery:     10, // sample logs: ~every 10th stale delete
//	    BackendErrEvery: 1, // log every backend error
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := tagcache.New[User](tagcache.Options[User]{
//	    Prefix:  "app:prod",
//	    Backend: backend,
//	    Codec:   codec.JSON[User]{},
//	    Hooks:   hooks, // or `raw` if you don't want async
//	})
//
// Events are dropped when the queue is full.
package asynchook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/tagcache"
)

type Hooks struct {
	inner   tagcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var _ tagcache.Hooks = (*Hooks)(nil)

func New(inner tagcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and waits for the workers. Hooks must not be
// called after Close.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded on a full queue.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) StaleEntryDeleted(k, r string) { h.try(func() { h.inner.StaleEntryDeleted(k, r) }) }
func (h *Hooks) CorruptEntry(k string)         { h.try(func() { h.inner.CorruptEntry(k) }) }
func (h *Hooks) BackendError(op string, err error) {
	h.try(func() { h.inner.BackendError(op, err) })
}
func (h *Hooks) TagError(n int, err error) { h.try(func() { h.inner.TagError(n, err) }) }
func (h *Hooks) BackendSetRejected(k string, multi bool) {
	h.try(func() { h.inner.BackendSetRejected(k, multi) })
}
func (h *Hooks) BackendDegraded(op string, elapsed time.Duration) {
	h.try(func() { h.inner.BackendDegraded(op, elapsed) })
}
