package domainlog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons used as the "reason" label on the dropped-events counter.
const (
	dropSelf       = "self"
	dropNoDomain   = "no_domain"
	dropCapacity   = "capacity"
	dropOpenError  = "open_error"
	dropWriteError = "write_error"
)

// metrics holds the router's counters. A nil *metrics is a valid no-op
// collector, so call sites never branch on whether metrics are configured.
type metrics struct {
	routed  prometheus.Counter
	bytes   prometheus.Counter
	dropped *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		routed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "domainlog",
			Name:      "events_routed_total",
			Help:      "Events written to a per-domain log file.",
		}),
		bytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "domainlog",
			Name:      "bytes_written_total",
			Help:      "Bytes appended across all per-domain log files.",
		}),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "domainlog",
			Name:      "events_dropped_total",
			Help:      "Events dropped before reaching a per-domain log file.",
		}, []string{"reason"}),
	}
}

func (m *metrics) wrote(n int) {
	if m == nil {
		return
	}
	m.routed.Inc()
	m.bytes.Add(float64(n))
}

func (m *metrics) drop(reason string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(reason).Inc()
}
