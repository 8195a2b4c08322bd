package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for reports and dashboards.
type Metrics struct {
	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter
	CacheErrors        prometheus.Counter
	QueryDuration      *prometheus.HistogramVec
}

// New creates the reporting metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SummaryCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldtrack_summary_cache_hits_total",
			Help: "Daily summaries served from cache",
		}),
		SummaryCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldtrack_summary_cache_misses_total",
			Help: "Daily summaries computed from the store",
		}),
		CacheErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldtrack_summary_cache_errors_total",
			Help: "Summary cache reads or writes that failed",
		}),
		QueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fieldtrack_report_duration_seconds",
			Help:    "Duration of report and dashboard queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"report"}),
	}
}

func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.SummaryCacheHits.Inc()
	} else {
		m.SummaryCacheMisses.Inc()
	}
}

func (m *Metrics) IncrementCacheErrors() {
	if m == nil {
		return
	}
	m.CacheErrors.Inc()
}

// ObserveQuery records the duration of report. Call with time.Now() at the start.
func (m *Metrics) ObserveQuery(report string, start time.Time) {
	if m == nil {
		return
	}
	m.QueryDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}
