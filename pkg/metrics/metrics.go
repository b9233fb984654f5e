package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	namespace        = "chunkprune"
	regionsSubsystem = "regions"

	rootLabelKey   = "root"
	resultLabelKey = "result"
)

// PrunerMetrics collects region pruning statistics in a dedicated
// registry, so several instances don't conflict with each other.
type PrunerMetrics struct {
	reg *prometheus.Registry

	regions   *prometheus.CounterVec
	reclaimed *prometheus.CounterVec

	lastRun         prometheus.Gauge
	lastRunDuration prometheus.Gauge
}

// RootSummary is a per-root snapshot of the counters.
type RootSummary struct {
	// Results maps result name to number of regions.
	Results map[string]uint64

	ReclaimedBytes uint64
}

// NewPrunerMetrics constructs and registers pruner metrics.
func NewPrunerMetrics(version string) *PrunerMetrics {
	m := &PrunerMetrics{
		reg: prometheus.NewRegistry(),
		regions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: regionsSubsystem,
			Name:      "total",
			Help:      "Number of handled region files by result",
		}, []string{rootLabelKey, resultLabelKey}),
		reclaimed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: regionsSubsystem,
			Name:      "reclaimed_bytes_total",
			Help:      "Size of removed region files",
		}, []string{rootLabelKey}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished run",
		}),
		lastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last finished run",
		}),
	}

	m.reg.MustRegister(
		m.regions,
		m.reclaimed,
		m.lastRun,
		m.lastRunDuration,
		newVersionMetric(version),
	)

	return m
}

// IncRegions increments number of regions of the root handled with result.
func (m *PrunerMetrics) IncRegions(root, result string) {
	m.regions.WithLabelValues(root, result).Inc()
}

// AddReclaimedBytes increases reclaimed space of the root.
func (m *PrunerMetrics) AddReclaimedBytes(root string, n int64) {
	m.reclaimed.WithLabelValues(root).Add(float64(n))
}

// SetLastRun records completion time and duration of the run.
func (m *PrunerMetrics) SetLastRun(finished time.Time, took time.Duration) {
	m.lastRun.Set(float64(finished.Unix()))
	m.lastRunDuration.Set(took.Seconds())
}

// Gatherer returns registry with all pruner metrics.
func (m *PrunerMetrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

// WriteTextfile atomically writes metrics in text exposition format to
// path, e.g. for node exporter's textfile collector.
func (m *PrunerMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}

	return nil
}

// Summary returns current counter values grouped by root.
func (m *PrunerMetrics) Summary() (map[string]RootSummary, error) {
	mfs, err := m.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	res := make(map[string]RootSummary)
	get := func(root string) RootSummary {
		s, ok := res[root]
		if !ok {
			s.Results = make(map[string]uint64)
			res[root] = s
		}
		return s
	}

	regionsName := prometheus.BuildFQName(namespace, regionsSubsystem, "total")
	reclaimedName := prometheus.BuildFQName(namespace, regionsSubsystem, "reclaimed_bytes_total")

	for _, mf := range mfs {
		switch mf.GetName() {
		case regionsName:
			for _, metric := range mf.GetMetric() {
				s := get(labelValue(metric, rootLabelKey))
				s.Results[labelValue(metric, resultLabelKey)] += uint64(metric.GetCounter().GetValue())
			}
		case reclaimedName:
			for _, metric := range mf.GetMetric() {
				root := labelValue(metric, rootLabelKey)
				s := get(root)
				s.ReclaimedBytes += uint64(metric.GetCounter().GetValue())
				res[root] = s
			}
		}
	}

	return res, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}

	return ""
}
