package zap

import (
	"errors"
	"testing"

	"github.com/unkn0wn-root/tagcache"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Warn("backend too slow", tagcache.Fields{"op": "get", "err": errors.New("boom")})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel || e.LoggerName != "tagcache" {
		t.Fatalf("unexpected entry: level=%v name=%q", e.Level, e.LoggerName)
	}
	ctx := e.ContextMap()
	if ctx["op"] != "get" || ctx["error"] != "boom" {
		t.Fatalf("unexpected fields: %v", ctx)
	}
}

func TestNilZapLogger(t *testing.T) {
	New(nil).Debug("ignored", nil)
}
