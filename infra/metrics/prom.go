package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/tryathq/backdown/core/metrics"
)

// PromSink records report generation runs in Prometheus metrics.
type PromSink struct {
	reports     prometheus.Counter
	rows        prometheus.Counter
	misses      *prometheus.CounterVec
	unsupported prometheus.Counter
	duration    prometheus.Histogram
}

// NewPromSink registers report metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reports := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backdown_reports_total",
		Help: "Total number of generated compliance reports",
	})
	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backdown_report_rows_total",
		Help: "Total number of emitted report rows",
	})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backdown_lookup_misses_total",
		Help: "Slot lookups that found no value, by source",
	}, []string{"source"})
	unsupported := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backdown_unsupported_durations_total",
		Help: "Instruction periods whose duration has no defined ramp offset",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "backdown_generation_seconds",
		Help:    "Wall time of one report generation run",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(reports); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reports = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(rows); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rows = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(misses); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			misses = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(unsupported); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			unsupported = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{reports: reports, rows: rows, misses: misses, unsupported: unsupported, duration: duration}, nil
}

// RecordReport adds one generation run to the counters.
func (s *PromSink) RecordReport(ev coremetrics.ReportEvent) error {
	s.reports.Inc()
	s.rows.Add(float64(ev.Rows))
	s.misses.WithLabelValues("dc").Add(float64(ev.DCMisses))
	s.misses.WithLabelValues("scada").Add(float64(ev.ScadaMisses))
	s.unsupported.Add(float64(ev.Unsupported))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}
