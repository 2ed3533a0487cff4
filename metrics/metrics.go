// Package metrics exports pending operation lifecycle counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/invitation/capability"
	"github.com/viant/invitation/operation"
)

const DefaultNamespace = "invitation"

// Collector implements operation.Observer with Prometheus collectors.
type Collector struct {
	registered *prometheus.CounterVec
	resolved   *prometheus.CounterVec
	evicted    *prometheus.CounterVec
	unmatched  prometheus.Counter
	pending    prometheus.Gauge
	latency    *prometheus.HistogramVec
}

var _ operation.Observer = (*Collector)(nil)

func (c *Collector) Registered(kind capability.Capability) {
	c.registered.WithLabelValues(kind.String()).Inc()
	c.pending.Inc()
}

func (c *Collector) Resolved(kind capability.Capability, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.resolved.WithLabelValues(kind.String(), outcome).Inc()
	c.latency.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
	c.pending.Dec()
}

func (c *Collector) Evicted(kind capability.Capability, reason operation.Reason) {
	c.evicted.WithLabelValues(kind.String(), string(reason)).Inc()
	c.pending.Dec()
}

func (c *Collector) Unmatched() {
	c.unmatched.Inc()
}

// Collectors returns every collector for registration.
func (c *Collector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.registered, c.resolved, c.evicted, c.unmatched, c.pending, c.latency}
}

// Register registers the collectors with registerer.
func (c *Collector) Register(registerer prometheus.Registerer) error {
	for _, collector := range c.Collectors() {
		if err := registerer.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers the collectors with registerer; it panics on conflict.
func (c *Collector) MustRegister(registerer prometheus.Registerer) *Collector {
	registerer.MustRegister(c.Collectors()...)
	return c
}

// New creates unregistered collectors under namespace.
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Collector{
		registered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_registered_total",
			Help:      "Total number of registered pending operations",
		}, []string{"capability"}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_resolved_total",
			Help:      "Total number of operations resolved by a notification",
		}, []string{"capability", "outcome"}),
		evicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_evicted_total",
			Help:      "Total number of operations evicted without resolution",
		}, []string{"capability", "reason"}),
		unmatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_unmatched_total",
			Help:      "Total number of notifications without a pending operation",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operations_pending",
			Help:      "Number of operations awaiting a notification",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_resolution_seconds",
			Help:      "Time from registration to resolution",
			Buckets:   prometheus.DefBuckets,
		}, []string{"capability"}),
	}
}
