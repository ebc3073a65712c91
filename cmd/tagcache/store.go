package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/tagcache"
	"github.com/unkn0wn-root/tagcache/codec"
	"github.com/unkn0wn-root/tagcache/config"
	zaplog "github.com/unkn0wn-root/tagcache/log/zap"
)

// record stands in for the application's value type. Admin commands never
// write entries, so its payload is irrelevant.
type record struct {
	Key string `json:"key"`
}

func (r record) CacheKey() string       { return r.Key }
func (r record) CacheTags() []string    { return nil }
func (r record) Expires() time.Duration { return 0 }

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	if prefix != "" {
		cfg.Prefix = prefix
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openStore dials the configured store. The returned func releases it.
func openStore(ctx context.Context) (tagcache.Cache[record], func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	zl, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	cc, err := tagcache.Dial[record](ctx, cfg, tagcache.Options[record]{
		Codec:  codec.JSON[record]{},
		Logger: zaplog.New(zl),
	})
	if err != nil {
		_ = zl.Sync()
		return nil, nil, err
	}
	return cc, func() {
		_ = cc.Close(context.Background())
		_ = zl.Sync()
	}, nil
}
