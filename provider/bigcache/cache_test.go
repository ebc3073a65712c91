package bigcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/unkn0wn-root/tagcache"
	"github.com/unkn0wn-root/tagcache/codec"
	"github.com/unkn0wn-root/tagcache/provider/bigcache"
)

type article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (a article) CacheKey() string       { return "article@" + a.ID }
func (a article) CacheTags() []string    { return []string{"articles", "article-" + a.ID} }
func (a article) Expires() time.Duration { return 0 }

func TestTagInvalidationOverBigcache(t *testing.T) {
	ctx := context.Background()
	b, err := bigcache.New(ctx, bigcache.Config{LifeWindow: time.Minute, HardMaxCacheSizeMB: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close(ctx) })

	cc, err := tagcache.New[article](tagcache.Options[article]{
		Prefix:  "blog",
		Backend: b,
		Codec:   codec.Msgpack[article]{},
	})
	if err != nil {
		t.Fatalf("tagcache.New: %v", err)
	}

	if err := cc.Set(ctx, article{ID: "1", Title: "Hello"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := cc.Get(ctx, "article@1")
	if !ok || got.Title != "Hello" {
		t.Fatalf("Get: ok=%v got=%+v", ok, got)
	}

	cc.ResetTags(ctx, "articles")
	if _, ok := cc.Get(ctx, "article@1"); ok {
		t.Fatalf("expected miss after resetting articles")
	}
}
