// Package promadapters provides a Prometheus implementation of rulestore.MetricsCollector.
package promadapters

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heliosip/countryrules/rulestore"
)

// MetricsCollector maps rulestore metrics onto Prometheus vectors registered with a Registerer:
//   - RecordDuration -> HistogramVec in seconds
//   - IncrementCounter -> CounterVec
//   - RecordValue -> GaugeVec
//
// A vector's label names are fixed by the first observation of a metric; later observations with a
// different label set are dropped.
type MetricsCollector struct {
	registerer prometheus.Registerer
	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewMetricsCollector creates a collector registering its vectors with registerer.
func NewMetricsCollector(registerer prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		registerer: registerer,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec, ok := m.histograms[metric]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    metric,
			Help:    "Rule database operation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, labelNames(labels))

		if err := m.registerer.Register(vec); err != nil {
			return
		}

		m.histograms[metric] = vec
	}

	observer, err := vec.GetMetricWith(labels)
	if err != nil {
		return
	}

	observer.Observe(duration.Seconds())
}

func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec, ok := m.counters[metric]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metric,
			Help: "Rule database operation counter.",
		}, labelNames(labels))

		if err := m.registerer.Register(vec); err != nil {
			return
		}

		m.counters[metric] = vec
	}

	counter, err := vec.GetMetricWith(labels)
	if err != nil {
		return
	}

	counter.Inc()
}

func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec, ok := m.gauges[metric]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: metric,
			Help: "Rule database current value.",
		}, labelNames(labels))

		if err := m.registerer.Register(vec); err != nil {
			return
		}

		m.gauges[metric] = vec
	}

	gauge, err := vec.GetMetricWith(labels)
	if err != nil {
		return
	}

	gauge.Set(value)
}

func labelNames(labels map[string]string) []string {
	return slices.Sorted(maps.Keys(labels))
}

var _ rulestore.MetricsCollector = (*MetricsCollector)(nil)
