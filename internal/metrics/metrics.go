// Package metrics holds the Prometheus collectors shared by the network and
// the scheduler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/kschedule"
)

// Namespace is prepended to every metric name.
const Namespace = "tau"

var (
	_ kgraph.Observer    = (*Metrics)(nil)
	_ kschedule.Observer = (*Metrics)(nil)
)

// Metrics implements kgraph.Observer and kschedule.Observer. Job results
// are labelled with the kschedule.Result* values.
type Metrics struct {
	walks           prometheus.Counter
	walkDuration    prometheus.Histogram
	nodeActivations prometheus.Counter
	nodeFaults      prometheus.Counter
	jobs            *prometheus.CounterVec
	jobsPending     prometheus.Gauge
}

// New creates the collectors and registers them on reg. A nil reg leaves the
// collectors unregistered, which is useful in tests.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		walks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "walks_total",
			Help:      "Number of activation walks started.",
		}),
		walkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "walk_duration_seconds",
			Help:      "Duration of activation walks.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		nodeActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "node_activations_total",
			Help:      "Number of node callbacks that returned true.",
		}),
		nodeFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "node_faults_total",
			Help:      "Number of node callbacks that panicked.",
		}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "jobs_total",
			Help:      "Number of scheduled job executions by result.",
		}, []string{"result"}),
		jobsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "jobs_pending",
			Help:      "Number of jobs waiting for their next firing.",
		}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	for _, c := range m.collectors() {
		err = multierr.Append(err, reg.Register(c))
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MustNew is like New but panics on registration errors.
func MustNew(reg prometheus.Registerer) *Metrics {
	m, err := New(reg)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.walks,
		m.walkDuration,
		m.nodeActivations,
		m.nodeFaults,
		m.jobs,
		m.jobsPending,
	}
}

// ObserveWalk records a finished activation walk.
func (m *Metrics) ObserveWalk(d time.Duration, activated int) {
	m.walks.Inc()
	m.walkDuration.Observe(d.Seconds())
	m.nodeActivations.Add(float64(activated))
}

// ObserveFault records a node callback panic.
func (m *Metrics) ObserveFault() {
	m.nodeFaults.Inc()
}

// ObserveJob records one job execution.
func (m *Metrics) ObserveJob(result string) {
	m.jobs.WithLabelValues(result).Inc()
}

// SetPending sets the number of queued jobs.
func (m *Metrics) SetPending(n int) {
	m.jobsPending.Set(float64(n))
}
