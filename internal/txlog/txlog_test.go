package txlog

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type recorder struct {
	calls []string
	fail  map[string]error
}

func (r *recorder) ApplySet(_ context.Context, v string) error {
	r.calls = append(r.calls, "set:"+v)
	return r.fail["set:"+v]
}

func (r *recorder) ApplyRaw(_ context.Context, key string, value []byte, ttl time.Duration) error {
	r.calls = append(r.calls, "raw:"+key+"="+string(value)+"/"+ttl.String())
	return nil
}

func (r *recorder) ApplyMulti(_ context.Context, items []string, ttl time.Duration) error {
	c := "multi:"
	for _, it := range items {
		c += it + ","
	}
	r.calls = append(r.calls, c+ttl.String())
	return nil
}

func (r *recorder) ApplyDelete(_ context.Context, key string) error {
	r.calls = append(r.calls, "del:"+key)
	return r.fail["del:"+key]
}

func TestCommitReplaysInLogOrder(t *testing.T) {
	ctx := context.Background()
	l := New[string]()
	if err := l.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	l.LogBusiness("a")
	l.LogDeleted("k1")
	l.LogRaw("r", []byte("v"), time.Minute)
	items := []string{"x", "y"}
	l.LogMulti(items, time.Second)
	items[0] = "mutated" // log must own its copy

	rec := &recorder{}
	if err := l.Commit(ctx, rec); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	want := []string{"set:a", "del:k1", "raw:r=v/1m0s", "multi:x,y,1s"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Fatalf("replay order:\n got %v\nwant %v", rec.calls, want)
	}
	if l.IsStarted() || l.Len() != 0 {
		t.Fatalf("log should be closed and empty after commit")
	}
}

func TestRollbackDiscards(t *testing.T) {
	ctx := context.Background()
	l := New[string]()
	_ = l.Begin()
	l.LogBusiness("a")
	l.LogDeleted("k")

	if err := l.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if l.IsStarted() || l.IsKeyDeleted("k") {
		t.Fatalf("rollback must close the log and unmask deletes")
	}
	if err := l.Commit(ctx, &recorder{}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("commit after rollback: want ErrNotStarted, got %v", err)
	}
}

func TestDeletedKeysMaskOnlyWhileOpen(t *testing.T) {
	l := New[string]()
	if l.IsKeyDeleted("k") {
		t.Fatalf("no transaction: nothing is deleted")
	}
	_ = l.Begin()
	l.LogDeleted("k")
	if !l.IsKeyDeleted("k") || l.IsKeyDeleted("other") {
		t.Fatalf("only k should be masked")
	}
	_ = l.Commit(context.Background(), &recorder{})
	if l.IsKeyDeleted("k") {
		t.Fatalf("mask must not survive commit")
	}
}

func TestMisuse(t *testing.T) {
	l := New[string]()
	if err := l.Rollback(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("rollback without begin: %v", err)
	}
	_ = l.Begin()
	if err := l.Begin(); !errors.Is(err, ErrStarted) {
		t.Fatalf("nested begin: want ErrStarted, got %v", err)
	}
	if !l.IsStarted() {
		t.Fatalf("rejected nested begin must leave the open transaction intact")
	}
}

func TestCommitJoinsErrorsAndKeepsGoing(t *testing.T) {
	e1 := errors.New("set failed")
	e2 := errors.New("del failed")
	rec := &recorder{fail: map[string]error{"set:a": e1, "del:k": e2}}

	l := New[string]()
	_ = l.Begin()
	l.LogBusiness("a")
	l.LogBusiness("b")
	l.LogDeleted("k")

	err := l.Commit(context.Background(), rec)
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
	if len(rec.calls) != 3 {
		t.Fatalf("replay should continue past failures, calls=%v", rec.calls)
	}
}
