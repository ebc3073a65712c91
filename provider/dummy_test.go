package provider

import (
	"context"
	"testing"
)

func TestDummyAlwaysEmptyAndOK(t *testing.T) {
	ctx := context.Background()
	var d Dummy

	if ok, err := d.Set(ctx, "k", []byte("v"), 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	if _, ok, err := d.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get after Set should miss, ok=%v err=%v", ok, err)
	}
	if ok, err := d.SetMulti(ctx, map[string][]byte{"a": nil, "b": nil}, 0); err != nil || !ok {
		t.Fatalf("SetMulti: ok=%v err=%v", ok, err)
	}
	got, err := d.GetMulti(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("GetMulti: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("GetMulti should return an empty non-nil map, got %v", got)
	}
	if ok, err := d.Del(ctx, "k"); err != nil || !ok {
		t.Fatalf("Del: ok=%v err=%v", ok, err)
	}
	if err := d.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
