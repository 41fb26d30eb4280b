// Package prom exports cache metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/evictcache/cache"
)

// Adapter implements cache.Metrics and exports Prometheus counters.
// Safe for concurrent use; all Prometheus metric types are
// goroutine-safe.
type Adapter struct {
	hits   prometheus.Counter
	misses prometheus.Counter
}

var _ cache.Metrics = (*Adapter)(nil)

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// RegisterSizeGauge registers a gauge that reports the resident entry
// count, sampled at scrape time via size (typically Cache.Len). Engines
// evict internally, so a pull-based gauge is the accurate way to track
// size.
func RegisterSizeGauge(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels, size func() int) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "size_entries",
		Help:        "Number of resident entries",
		ConstLabels: constLabels,
	}, func() float64 { return float64(size()) }))
}
