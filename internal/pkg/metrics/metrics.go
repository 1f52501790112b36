// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dtr"

// Scan outcomes used as the "result" label of scans_total.
const (
	ScanRecorded   = "recorded"
	ScanCooldown   = "cooldown"
	ScanInProgress = "in_progress"
	ScanDuplicate  = "duplicate"
	ScanSlotTaken  = "slot_taken"
	ScanRejected   = "rejected"
	ScanFailed     = "failed"
)

type Metrics struct {
	scans        *prometheus.CounterVec
	punches      *prometheus.CounterVec
	scanDuration prometheus.Histogram
	rateDefaults *prometheus.CounterVec
	rateGaps     prometheus.Gauge
	sseClients   prometheus.Gauge
}

// New registers every collector on reg. Pass prometheus.DefaultRegisterer to
// expose them through promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		scans: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Badge scans by outcome.",
		}, []string{"result"}),
		punches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "punches_total",
			Help:      "Stored punches by slot and branch.",
		}, []string{"type", "branch"}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Time spent handling a scan.",
			Buckets:   prometheus.DefBuckets,
		}),
		rateDefaults: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payroll_rate_defaulted_total",
			Help:      "Payslips computed with a zero daily rate because none was configured.",
		}, []string{"rate_key"}),
		rateGaps: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "payroll_rate_gaps",
			Help:      "Active employees without a configured daily rate, as of the last check.",
		}),
		sseClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_stream_clients",
			Help:      "Connected live scan stream clients.",
		}),
	}
}

// NewNop returns metrics bound to a private registry, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ScanResult(result string, started time.Time) {
	m.scans.WithLabelValues(result).Inc()
	m.scanDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) PunchRecorded(punchType, branch string) {
	m.punches.WithLabelValues(punchType, branch).Inc()
}

func (m *Metrics) RateDefaulted(rateKey string) {
	m.rateDefaults.WithLabelValues(rateKey).Inc()
}

func (m *Metrics) SetRateGaps(n int) {
	m.rateGaps.Set(float64(n))
}

func (m *Metrics) StreamClientConnected() {
	m.sseClients.Inc()
}

func (m *Metrics) StreamClientDisconnected() {
	m.sseClients.Dec()
}
