package provider

import (
	"context"
	"time"
)

// Dummy is a Backend whose operations do nothing and always "succeed":
// reads miss, writes and deletes report ok. It is used when caching is
// disabled and after a cache instance tripped its liveness guard.
type Dummy struct{}

var _ Backend = Dummy{}

func (Dummy) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Dummy) GetMulti(context.Context, []string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}

func (Dummy) Set(context.Context, string, []byte, time.Duration) (bool, error) { return true, nil }

func (Dummy) SetMulti(context.Context, map[string][]byte, time.Duration) (bool, error) {
	return true, nil
}

func (Dummy) Del(context.Context, string) (bool, error) { return true, nil }
func (Dummy) Flush(context.Context) error               { return nil }
func (Dummy) Close(context.Context) error               { return nil }
