// Package prometheus exports match metrics through a Prometheus registry.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"mysterymate/internal/stats"
)

// Collector lazily registers one Prometheus metric per name
type Collector struct {
	reg prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

var _ stats.Collector = (*Collector)(nil)

// New registers into reg, or the default registerer when reg is nil
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Collector{
		reg:        reg,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	if delta < 0 {
		return
	}
	lookup(c, c.counters, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help(name)})
	}).Add(float64(delta))
}

func (c *Collector) SetGauge(name string, value int64) {
	lookup(c, c.gauges, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help(name)})
	}).Set(float64(value))
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	lookup(c, c.histograms, name, func() prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    help(name),
			Buckets: buckets(name),
		})
	}).Observe(value)
}

// lookup returns the metric cached under name, registering a fresh one on first use.
// A metric already registered elsewhere under the same name is adopted.
func lookup[M prometheus.Collector](c *Collector, cache map[string]M, name string, build func() M) M {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := cache[name]; ok {
		return m
	}
	m := build()
	if err := c.reg.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(M); ok {
				m = existing
			}
		}
	}
	cache[name] = m
	return m
}

func help(name string) string {
	if h, ok := stats.Help[name]; ok {
		return h
	}
	return name
}

func buckets(name string) []float64 {
	switch name {
	case stats.MetricMatchPlies:
		return prometheus.LinearBuckets(10, 20, 10)
	case stats.MetricMoveSeconds:
		return prometheus.ExponentialBuckets(0.00001, 4, 10)
	}
	return prometheus.DefBuckets
}
