package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "quote_manager"

// Result label values.
const (
	resultSuccess = "success"
	resultError   = "error"
	resultSkipped = "skipped"
)

// syncMetrics are exported on /-/metrics.
type syncMetrics struct {
	pulls  *prometheus.CounterVec
	merged prometheus.Counter
	pushes *prometheus.CounterVec
}

func newSyncMetrics(reg prometheus.Registerer) *syncMetrics {
	m := &syncMetrics{
		pulls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "pulls_total",
			Help:      "Pull cycles by result.",
		}, []string{"result"}),
		merged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "merged_quotes_total",
			Help:      "Remote quotes appended to the local collection.",
		}),
		pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "pushes_total",
			Help:      "Pushes of locally added quotes by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.pulls, m.merged, m.pushes)

	return m
}
