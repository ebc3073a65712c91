// Package prometheus records tagcache operation timings in a Prometheus
// histogram labelled by db and operation.
package prometheus

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/unkn0wn-root/tagcache"
)

// Default buckets for backend call duration (in seconds). The guard trips
// at 1s by default, so the buckets are dense below it.
var defaultBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

type Options struct {
	Namespace string    // "" => "tagcache"
	Buckets   []float64 // nil => defaultBuckets
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Monitor implements tagcache.Monitor.
type Monitor struct {
	duration *prometheus.HistogramVec
}

var _ tagcache.Monitor = (*Monitor)(nil)

// New registers the histogram. Registering twice with the same options reuses
// the collector already registered, so every cache instance may call New.
func New(opts Options) (*Monitor, error) {
	if opts.Namespace == "" {
		opts.Namespace = "tagcache"
	}
	if len(opts.Buckets) == 0 {
		opts.Buckets = defaultBuckets
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}

	hv := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of cache backend and transaction operations",
			Buckets:   opts.Buckets,
		},
		[]string{"db", "operation"},
	)
	if err := opts.Registerer.Register(hv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		hv = existing
	}
	return &Monitor{duration: hv}, nil
}

func (m *Monitor) CreateTimer(tags map[string]string) tagcache.Timer {
	obs := m.duration.WithLabelValues(tags["db"], tags["operation"])
	return timer{prometheus.NewTimer(obs)}
}

type timer struct{ t *prometheus.Timer }

func (t timer) Stop() { t.t.ObserveDuration() }
