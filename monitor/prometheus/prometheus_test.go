package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTimerObservesLabelledDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(Options{Registerer: reg})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.CreateTimer(map[string]string{"db": "tagcache", "operation": "get"}).Stop()
	m.CreateTimer(map[string]string{"db": "tagcache", "operation": "get"}).Stop()
	m.CreateTimer(map[string]string{"db": "tagcache", "operation": "set"}).Stop()

	if n := testutil.CollectAndCount(m.duration, "tagcache_operation_duration_seconds"); n != 2 {
		t.Fatalf("expected 2 label sets, got %d", n)
	}
}

func TestNewTwiceReusesCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := New(Options{Registerer: reg})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(Options{Registerer: reg})
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	if a.duration != b.duration {
		t.Fatalf("second New should reuse the registered histogram")
	}
}
