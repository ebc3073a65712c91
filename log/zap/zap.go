// Package zap adapts a *zap.Logger to tagcache.Logger.
package zap

import (
	"sort"

	"github.com/unkn0wn-root/tagcache"
	"go.uber.org/zap"
)

var _ tagcache.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New returns a ZapLogger named "tagcache". A nil logger logs nothing.
func New(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{L: l.Named("tagcache")}
}

func (z ZapLogger) Debug(msg string, f tagcache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f tagcache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f tagcache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f tagcache.Fields) { z.L.Error(msg, zf(f)...) }

// zf emits fields in key order; "err" values become zap.Error.
func zf(f tagcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok && k == "err" {
			out = append(out, zap.Error(err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
