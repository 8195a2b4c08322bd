package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected    prometheus.Counter
	CheckErrors prometheus.Counter
}

// New registers the limiter's collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "fieldtrack_ratelimit_login_rejected_total",
			Help: "Login requests rejected by the rate limiter",
		}),
		CheckErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fieldtrack_ratelimit_check_errors_total",
			Help: "Rate limit checks that failed and let the request through",
		}),
	}
}

func (m *Metrics) IncrementRejected() {
	if m == nil {
		return
	}
	m.Rejected.Inc()
}

func (m *Metrics) IncrementCheckErrors() {
	if m == nil {
		return
	}
	m.CheckErrors.Inc()
}
