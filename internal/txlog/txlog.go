// Package txlog buffers cache writes while a transaction is open.
//
// Operations are recorded in call order and replayed through an Applier on
// Commit; Rollback drops them. Deleted keys are also tracked as a set so the
// cache can answer reads for them as misses without touching the backend.
//
// A Log belongs to one cache instance and is not safe for concurrent use.
package txlog

import (
	"context"
	"errors"
	"time"
)

var (
	ErrStarted    = errors.New("txlog: transaction already started")
	ErrNotStarted = errors.New("txlog: no transaction started")
)

// Applier executes replayed operations. The cache implements it with its
// non-transactional write path.
type Applier[V any] interface {
	ApplySet(ctx context.Context, v V) error
	ApplyRaw(ctx context.Context, key string, value []byte, ttl time.Duration) error
	ApplyMulti(ctx context.Context, items []V, ttl time.Duration) error
	ApplyDelete(ctx context.Context, key string) error
}

type opKind uint8

const (
	opSet opKind = iota + 1
	opRaw
	opMulti
	opDelete
)

type op[V any] struct {
	kind  opKind
	key   string
	value V
	raw   []byte
	items []V
	ttl   time.Duration
}

type Log[V any] struct {
	started bool
	ops     []op[V]
	deleted map[string]struct{}
}

func New[V any]() *Log[V] { return &Log[V]{} }

func (l *Log[V]) IsStarted() bool { return l.started }

// Begin opens a transaction. Nested begins are rejected.
func (l *Log[V]) Begin() error {
	if l.started {
		return ErrStarted
	}
	l.started = true
	l.ops = nil
	l.deleted = make(map[string]struct{})
	return nil
}

// Commit closes the transaction and then replays every op in log order.
// The log is closed before replay so the Applier writes for real.
// Replay does not stop at the first failure; all errors are joined.
func (l *Log[V]) Commit(ctx context.Context, a Applier[V]) error {
	if !l.started {
		return ErrNotStarted
	}
	ops := l.ops
	l.reset()

	var errs []error
	for _, o := range ops {
		var err error
		switch o.kind {
		case opSet:
			err = a.ApplySet(ctx, o.value)
		case opRaw:
			err = a.ApplyRaw(ctx, o.key, o.raw, o.ttl)
		case opMulti:
			err = a.ApplyMulti(ctx, o.items, o.ttl)
		case opDelete:
			err = a.ApplyDelete(ctx, o.key)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Log[V]) Rollback() error {
	if !l.started {
		return ErrNotStarted
	}
	l.reset()
	return nil
}

func (l *Log[V]) LogBusiness(v V) {
	l.ops = append(l.ops, op[V]{kind: opSet, value: v})
}

func (l *Log[V]) LogRaw(key string, value []byte, ttl time.Duration) {
	l.ops = append(l.ops, op[V]{kind: opRaw, key: key, raw: value, ttl: ttl})
}

func (l *Log[V]) LogMulti(items []V, ttl time.Duration) {
	cp := append([]V(nil), items...)
	l.ops = append(l.ops, op[V]{kind: opMulti, items: cp, ttl: ttl})
}

// LogDeleted records a delete and masks key for the rest of the transaction.
func (l *Log[V]) LogDeleted(key string) {
	l.ops = append(l.ops, op[V]{kind: opDelete, key: key})
	l.deleted[key] = struct{}{}
}

func (l *Log[V]) IsKeyDeleted(key string) bool {
	if !l.started {
		return false
	}
	_, ok := l.deleted[key]
	return ok
}

// Len is the number of buffered operations.
func (l *Log[V]) Len() int { return len(l.ops) }

func (l *Log[V]) reset() {
	l.started = false
	l.ops = nil
	l.deleted = nil
}
