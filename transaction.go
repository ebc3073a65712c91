package tagcache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/tagcache/internal/txlog"
)

// BeginTransaction starts buffering writes and deletes.
// Returns ErrTransactionStarted if one is already open; the open one is kept.
func (c *cache[V]) BeginTransaction(context.Context) error {
	defer c.timer("beginTransaction").Stop()
	return c.tx.Begin()
}

func (c *cache[V]) IsTransaction() bool { return c.tx.IsStarted() }

// CommitTransaction replays the buffered operations in the order they were
// made. Replay continues past failures; their errors are joined.
func (c *cache[V]) CommitTransaction(ctx context.Context) error {
	defer c.timer("commitTransaction").Stop()
	n := c.tx.Len()
	if err := c.tx.Commit(ctx, replay[V]{c}); err != nil {
		c.log.Warn("transaction commit had errors", Fields{"ops": n, "err": err})
		return err
	}
	c.log.Debug("transaction committed", Fields{"ops": n})
	return nil
}

func (c *cache[V]) RollbackTransaction(context.Context) error {
	defer c.timer("rollbackTransaction").Stop()
	return c.tx.Rollback()
}

// replay applies committed operations through the immediate write path.
type replay[V Value] struct{ c *cache[V] }

var _ txlog.Applier[Value] = replay[Value]{}

func (r replay[V]) ApplySet(ctx context.Context, v V) error { return r.c.set(ctx, v) }

func (r replay[V]) ApplyRaw(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.c.setRaw(ctx, key, value, ttl)
	return nil
}

func (r replay[V]) ApplyMulti(ctx context.Context, items []V, ttl time.Duration) error {
	return r.c.setMulti(ctx, items, ttl)
}

func (r replay[V]) ApplyDelete(ctx context.Context, key string) error {
	r.c.del(ctx, key)
	return nil
}
