package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for password generation.
type Metrics struct {
	PasswordsGenerated prometheus.Counter
	RequestsRejected   *prometheus.CounterVec
}

// New registers the generator metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PasswordsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passgen_passwords_generated_total",
			Help: "Total number of passwords generated",
		}),
		RequestsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passgen_requests_rejected_total",
			Help: "Total number of generation requests rejected, by reason",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.PasswordsGenerated, m.RequestsRejected)
	return m
}

// IncrementGenerated counts one password handed out.
func (m *Metrics) IncrementGenerated() {
	m.PasswordsGenerated.Inc()
}

// IncrementRejected counts one request turned away for reason.
func (m *Metrics) IncrementRejected(reason string) {
	m.RequestsRejected.WithLabelValues(reason).Inc()
}
