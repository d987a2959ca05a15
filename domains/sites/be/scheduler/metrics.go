package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// Sweep outcomes recorded per site.
const (
	OutcomeAdvanced  = "advanced"
	OutcomeFailed    = "failed"
	OutcomeBusy      = "busy"
	OutcomeDeferred  = "deferred"
	OutcomeExhausted = "exhausted"
)

// Metrics exposes engine and sweeper instrumentation. It implements
// service.CheckpointObserver.
type Metrics struct {
	checkpointTotal    *prometheus.CounterVec
	checkpointDuration *prometheus.HistogramVec
	sweepSites         *prometheus.CounterVec
	sweepDuration      prometheus.Histogram
	sweepBacklog       prometheus.Gauge
}

var _ service.CheckpointObserver = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them on reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		checkpointTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "palmyra_hosting",
				Subsystem: "setup",
				Name:      "checkpoints_total",
				Help:      "Processed setup checkpoints by checkpoint and result",
			},
			[]string{"checkpoint", "result"},
		),
		checkpointDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "palmyra_hosting",
				Subsystem: "setup",
				Name:      "checkpoint_duration_seconds",
				Help:      "Duration of a single setup checkpoint in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"checkpoint"},
		),
		sweepSites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "palmyra_hosting",
				Subsystem: "sweeper",
				Name:      "sites_total",
				Help:      "Sites visited by the sweeper by outcome",
			},
			[]string{"outcome"},
		),
		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "palmyra_hosting",
				Subsystem: "sweeper",
				Name:      "sweep_duration_seconds",
				Help:      "Duration of a full sweep in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
		sweepBacklog: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "palmyra_hosting",
				Subsystem: "sweeper",
				Name:      "backlog_sites",
				Help:      "Sites still in setup at the start of the last sweep",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.checkpointTotal, m.checkpointDuration, m.sweepSites, m.sweepDuration, m.sweepBacklog)
	}
	return m
}

// ObserveCheckpoint implements service.CheckpointObserver.
func (m *Metrics) ObserveCheckpoint(checkpoint service.SetupProgress, result string, elapsed time.Duration) {
	m.checkpointTotal.WithLabelValues(checkpoint.String(), result).Inc()
	m.checkpointDuration.WithLabelValues(checkpoint.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) recordSite(outcome string) {
	if m == nil {
		return
	}
	m.sweepSites.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordSweep(backlog int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.sweepBacklog.Set(float64(backlog))
	m.sweepDuration.Observe(elapsed.Seconds())
}
