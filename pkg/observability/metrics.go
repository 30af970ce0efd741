package observability

import (
	"time"

	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/prometheus/client_golang/prometheus"
)

// Merge outcomes used as the "result" label.
const (
	ResultMerged      = "merged"
	ResultPassthrough = "passthrough"
	ResultFailed      = "failed"
)

// Metrics groups the collectors describing merge activity.
type Metrics struct {
	Merges    *prometheus.CounterVec
	Robots    prometheus.Counter
	Conflicts *prometheus.CounterVec
	Duration  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Merges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mjmerge_merges_total",
				Help: "Total number of merge requests by result",
			},
			[]string{"result"},
		),
		Robots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mjmerge_robots_total",
			Help: "Total number of robot models folded into merged scenes",
		}),
		Conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mjmerge_conflicts_total",
				Help: "Attribute conflicts resolved by first-seen-wins, by section",
			},
			[]string{"section"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mjmerge_merge_duration_seconds",
			Help:    "Duration of merges that produced a scene",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Merges, m.Robots, m.Conflicts, m.Duration)
	}
	return m
}

// ObserveMerge records the outcome of one merge call over robots models.
func (m *Metrics) ObserveMerge(robots int, elapsed time.Duration, err error) {
	switch {
	case err != nil:
		m.Merges.WithLabelValues(ResultFailed).Inc()
	case robots == 1:
		m.Merges.WithLabelValues(ResultPassthrough).Inc()
	default:
		m.Merges.WithLabelValues(ResultMerged).Inc()
		m.Robots.Add(float64(robots))
		m.Duration.Observe(elapsed.Seconds())
	}
}

// Sink wraps next so that every conflict is also counted.
func (m *Metrics) Sink(next diagnostics.Sink) diagnostics.Sink {
	return diagnostics.SinkFunc(func(c diagnostics.Conflict) {
		m.Conflicts.WithLabelValues(c.Section).Inc()
		if next != nil {
			next.Report(c)
		}
	})
}
