package decision

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics exports decision counters under the loan_engine namespace.
type PrometheusMetrics struct {
	submissions prometheus.Counter
	outcomes    *prometheus.CounterVec
	mismatches  prometheus.Counter
	modelErrors prometheus.Counter
	conflicts   prometheus.Counter
}

// NewPrometheusMetrics registers the decision counters on the given
// registerer (pass prometheus.DefaultRegisterer in production).
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		submissions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loan_engine",
			Name:      "submissions_total",
			Help:      "Loan applications submitted to the decision engine.",
		}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loan_engine",
			Name:      "decisions_total",
			Help:      "Final decisions by outcome.",
		}, []string{"outcome"}),
		mismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loan_engine",
			Name:      "document_mismatches_total",
			Help:      "Submissions aborted because documents differed from registry references.",
		}),
		modelErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loan_engine",
			Name:      "classifier_errors_total",
			Help:      "Submissions aborted because the classifier produced no prediction.",
		}),
		conflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loan_engine",
			Name:      "registry_conflicts_total",
			Help:      "Bank-count increments that exhausted optimistic retries.",
		}),
	}
}

func (m *PrometheusMetrics) RecordSubmission()       { m.submissions.Inc() }
func (m *PrometheusMetrics) RecordOutcome(o string)  { m.outcomes.WithLabelValues(o).Inc() }
func (m *PrometheusMetrics) RecordDocumentMismatch() { m.mismatches.Inc() }
func (m *PrometheusMetrics) RecordClassifierError()  { m.modelErrors.Inc() }
func (m *PrometheusMetrics) RecordConflict()         { m.conflicts.Inc() }
