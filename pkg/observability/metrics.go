package observability

import (
	"context"

	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK        = "ok"
	OutcomeAssertion = "assertion"
	OutcomeError     = "error"
)

// Metrics holds the collectors fed by Hooks.
type Metrics struct {
	Steps    *prometheus.CounterVec
	Retries  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainspec_steps_total",
				Help: "Total number of executed nodes",
			},
			[]string{"kind", "outcome"},
		),
		Retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainspec_retries_total",
				Help: "Total number of assertion retry attempts",
			},
			[]string{"step"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chainspec_step_duration_seconds",
				Help:    "Duration of node executions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Retries, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnd: func(_ context.Context, e *domain.StepEvent) {
			kind := e.Kind.String()
			m.Steps.WithLabelValues(kind, Outcome(e.Err)).Inc()
			m.Duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
		},
		OnRetry: func(_ context.Context, e *domain.RetryEvent) {
			m.Retries.WithLabelValues(e.Description).Inc()
		},
	}
}

// Outcome classifies err into a metric label.
func Outcome(err error) string {
	switch domain.Classify(err) {
	case domain.FailureNone:
		return OutcomeOK
	case domain.FailureAssertion:
		return OutcomeAssertion
	default:
		return OutcomeError
	}
}
