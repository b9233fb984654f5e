package metrics

import "github.com/prometheus/client_golang/prometheus"

func newVersionMetric(version string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "version",
		Help:      "Version of the pruner binary",
		ConstLabels: prometheus.Labels{
			"version": version,
		},
	})

	g.Set(1)

	return g
}
