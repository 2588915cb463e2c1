package observability

import (
	"context"
	"errors"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "twotruths"

// Outcome labels for the batches counter.
const (
	OutcomeSuccess   = "success"
	OutcomeExhausted = "exhausted"
	OutcomeError     = "error"
)

// Metrics holds the collectors fed by engine hooks.
type Metrics struct {
	Batches    *prometheus.CounterVec
	Statements *prometheus.CounterVec
	Retries    *prometheus.CounterVec
	Duration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batches_total",
				Help:      "Generated batches by outcome",
			},
			[]string{"outcome"},
		),
		Statements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statements_total",
				Help:      "Statements emitted in successful batches",
			},
			[]string{"truth"},
		),
		Retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retries_total",
				Help:      "Rejected candidate statements by reason",
			},
			[]string{"reason"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_duration_seconds",
				Help:      "Time spent assembling a batch",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Batches, m.Statements, m.Retries, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBatchComplete: func(_ context.Context, e *domain.BatchEvent) {
			m.Batches.WithLabelValues(OutcomeSuccess).Inc()
			m.Statements.WithLabelValues("true").Add(float64(e.Request.Truths))
			m.Statements.WithLabelValues("false").Add(float64(e.Request.Lies))
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnBatchFailed: func(_ context.Context, e *domain.BatchEvent) {
			outcome := OutcomeError
			if errors.Is(e.Err, domain.ErrDuplicateExhaustion) {
				outcome = OutcomeExhausted
			}
			m.Batches.WithLabelValues(outcome).Inc()
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnRetry: func(_ context.Context, e *domain.RetryEvent) {
			m.Retries.WithLabelValues(e.Reason).Inc()
		},
	}
}
