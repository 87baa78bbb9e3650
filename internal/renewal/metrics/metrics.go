package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the renewal module.
type Metrics struct {
	// Renewal outcomes by result ("renewed") and denial reason
	RenewalOutcome *prometheus.CounterVec

	// Manual evaluations by verdict ("renewed", "not_renewed", "rejected")
	ManualEvaluations *prometheus.CounterVec

	// Rule and policy mutations by target
	ConfigUpdates *prometheus.CounterVec

	// Overall renewal evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all renewal module metrics registered.
func New() *Metrics {
	return &Metrics{
		RenewalOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "relet_renewal_outcomes_total",
			Help: "Total renewal attempts by outcome",
		}, []string{"outcome"}), // outcome: "renewed" or the denial code name

		ManualEvaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "relet_manual_evaluations_total",
			Help: "Total oracle-triggered evaluations by verdict",
		}, []string{"verdict"}),

		ConfigUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "relet_config_updates_total",
			Help: "Total accepted rule and policy mutations by target",
		}, []string{"target"}), // target: "lease_rules", "oracle", "threshold", "period", "grace"

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "relet_renewal_evaluate_duration_seconds",
			Help:    "Duration of a full renewal evaluation including collaborator calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementOutcome records a renewal attempt outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.RenewalOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementManualEvaluation records an oracle-triggered evaluation verdict.
func (m *Metrics) IncrementManualEvaluation(verdict string) {
	if m != nil {
		m.ManualEvaluations.WithLabelValues(verdict).Inc()
	}
}

// IncrementConfigUpdate records an accepted rule or policy mutation.
func (m *Metrics) IncrementConfigUpdate(target string) {
	if m != nil {
		m.ConfigUpdates.WithLabelValues(target).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
