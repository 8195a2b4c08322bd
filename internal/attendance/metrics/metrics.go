package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check-in outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeUnauthorized = "unauthorized"
	OutcomeConflict     = "conflict"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// Metrics provides observability for the attendance module.
type Metrics struct {
	CheckIns          *prometheus.CounterVec
	CheckOuts         prometheus.Counter
	FarCheckIns       prometheus.Counter
	CheckInDistanceKm prometheus.Histogram
	OperationDuration *prometheus.HistogramVec
}

// New creates the attendance metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CheckIns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldtrack_checkins_total",
			Help: "Check-in attempts by outcome",
		}, []string{"outcome"}),
		CheckOuts: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldtrack_checkouts_total",
			Help: "Successful checkouts",
		}),
		FarCheckIns: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldtrack_checkins_far_from_client_total",
			Help: "Check-ins recorded farther than the warning threshold",
		}),
		CheckInDistanceKm: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fieldtrack_checkin_distance_km",
			Help:    "Distance between check-in location and client",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 50},
		}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fieldtrack_attendance_operation_duration_seconds",
			Help:    "Duration of attendance engine operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// RecordCheckIn records a check-in attempt.
func (m *Metrics) RecordCheckIn(outcome string) {
	if m == nil {
		return
	}
	m.CheckIns.WithLabelValues(outcome).Inc()
}

// RecordDistance records an accepted check-in's distance.
func (m *Metrics) RecordDistance(km float64, far bool) {
	if m == nil {
		return
	}
	m.CheckInDistanceKm.Observe(km)
	if far {
		m.FarCheckIns.Inc()
	}
}

// IncrementCheckOuts records a successful checkout.
func (m *Metrics) IncrementCheckOuts() {
	if m == nil {
		return
	}
	m.CheckOuts.Inc()
}

// ObserveOperation records the duration of op.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(op string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
