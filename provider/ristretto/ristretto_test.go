package ristretto

import (
	"context"
	"testing"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestRistrettoSetGetMultiFlush(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if ok, err := p.SetMulti(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, 0); err != nil || !ok {
		t.Fatalf("SetMulti: ok=%v err=%v", ok, err)
	}
	got, err := p.GetMulti(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("GetMulti: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Fatalf("GetMulti got %v", got)
	}
	if _, ok := got["missing"]; ok {
		t.Fatalf("absent key must be omitted")
	}

	if _, err := p.Del(ctx, "a"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "a"); ok {
		t.Fatalf("a should be gone after Del")
	}

	if err := p.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "b"); ok {
		t.Fatalf("b should be gone after Flush")
	}
}

func TestRistrettoInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error on zero config")
	}
}
