// Package observability exposes engine lifecycle hooks as Prometheus
// metrics.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fernwald/espalier/pkg/domain"
)

const namespace = "espalier"

// Metrics holds the engine's Prometheus collectors. Wire it into an engine
// via Hooks.
type Metrics struct {
	executions  *prometheus.CounterVec
	failures    *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
	suspensions *prometheus.CounterVec
	escalations prometheus.Counter
	completions prometheus.Counter
}

// NewMetrics registers the engine collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		executions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ability_executions_total",
			Help:      "Ability executions by stage, ability and executor kind.",
		}, []string{"stage", "ability", "kind"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ability_failures_total",
			Help:      "Abilities whose result was a recovered error object.",
		}, []string{"ability"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_fallbacks_total",
			Help:      "Generative executions served by the canned fallback.",
		}, []string{"ability"}),
		suspensions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suspensions_total",
			Help:      "Workflow suspensions by awaiting ability.",
		}, []string{"ability"}),
		escalations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escalations_total",
			Help:      "Affirmative escalation decisions observed.",
		}),
		completions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Workflow runs that reached the terminal ability.",
		}),
	}
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAbilityEnd: func(_ context.Context, ev *domain.AbilityEvent) {
			m.executions.WithLabelValues(ev.Stage, ev.Ability, string(ev.Kind)).Inc()
			if ev.IsError {
				m.failures.WithLabelValues(ev.Ability).Inc()
			}
			if ev.Fallback {
				m.fallbacks.WithLabelValues(ev.Ability).Inc()
			}
		},
		OnSuspend: func(_ context.Context, ability string) {
			m.suspensions.WithLabelValues(ability).Inc()
		},
		OnEscalation: func(_ context.Context, _ string) {
			m.escalations.Inc()
		},
		OnComplete: func(_ context.Context) {
			m.completions.Inc()
		},
	}
}
