package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/fernwald/espalier/pkg/domain"
)

func TestHooks_FeedCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnAbilityEnd(ctx, &domain.AbilityEvent{
		Stage: "UNDERSTAND", Ability: "extract_entities", Kind: domain.KindGenerative,
		IsError: true, Fallback: true,
	})
	hooks.OnAbilityEnd(ctx, &domain.AbilityEvent{
		Stage: "INTAKE", Ability: "accept_payload", Kind: domain.KindDeterministic,
	})
	hooks.OnSuspend(ctx, "clarify_question")
	hooks.OnEscalation(ctx, "escalation_decision")
	hooks.OnComplete(ctx)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.executions.WithLabelValues("UNDERSTAND", "extract_entities", "generative")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.executions.WithLabelValues("INTAKE", "accept_payload", "deterministic")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.failures.WithLabelValues("extract_entities")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fallbacks.WithLabelValues("extract_entities")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.fallbacks.WithLabelValues("accept_payload")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.suspensions.WithLabelValues("clarify_question")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.escalations))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.completions))
}
