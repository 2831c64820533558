package abilities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwald/espalier/pkg/domain"
)

func TestAcceptPayload_SeedsContainers(t *testing.T) {
	state := domain.State{"customer_name": "Alice"}

	update, err := AcceptPayload(state)
	require.NoError(t, err)

	assert.Equal(t, "accept_payload_result", update["accept_payload"])
	assert.Equal(t, map[string]any{}, update["structured_request"])
	assert.Equal(t, map[string]any{}, update["flags"])
	assert.Equal(t, map[string]any{}, update["decision"])
	assert.Equal(t, []any{}, update["history"])
}

func TestAcceptPayload_KeepsExistingContainers(t *testing.T) {
	state := domain.State{
		"flags":   map[string]any{"has_answer": true},
		"history": []any{"intake"},
	}

	update, err := AcceptPayload(state)
	require.NoError(t, err)

	_, replacesFlags := update["flags"]
	_, replacesHistory := update["history"]
	assert.False(t, replacesFlags, "existing flags must not be overwritten")
	assert.False(t, replacesHistory, "existing history must not be overwritten")
	assert.Contains(t, update, "structured_request")
}

func TestParseRequestText(t *testing.T) {
	state := domain.State{"query": "My app crashes on login"}

	update, err := ParseRequestText(state)
	require.NoError(t, err)

	structured := update["structured_request"].(map[string]any)
	assert.Equal(t, "My app crashes on login", structured["summary"])
	assert.Equal(t, "unknown", structured["language"])
	assert.Equal(t, len("My app crashes on login"), structured["length"])
}

func TestNormalizeFields(t *testing.T) {
	tests := []struct {
		name     string
		priority any
		want     any
	}{
		{"urgent maps to high", "urgent", "high"},
		{"critical maps to high", "critical", "high"},
		{"normal maps to medium", "normal", "medium"},
		{"short alias", "lo", "low"},
		{"case and spacing", "  URGENT ", "high"},
		{"unrecognized lower-cased", "Whenever", "whenever"},
		{"non-string passes through", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := NormalizeFields(domain.State{"priority": tt.priority})
			require.NoError(t, err)
			assert.Equal(t, tt.want, update["priority"])
		})
	}

	t.Run("email trimmed and lower-cased", func(t *testing.T) {
		update, err := NormalizeFields(domain.State{"email": " ALICE@X.com "})
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", update["email"])
	})

	t.Run("absent fields stay absent", func(t *testing.T) {
		update, err := NormalizeFields(domain.State{})
		require.NoError(t, err)
		assert.NotContains(t, update, "priority")
		assert.NotContains(t, update, "email")
	})
}

func TestAddFlagsCalculations(t *testing.T) {
	t.Run("presence signals", func(t *testing.T) {
		state := domain.State{
			"priority":              "high",
			"extracted_software":    "App",
			"knowledge_base_search": map[string]any{"found": true},
			"extract_answer":        "Windows 11",
		}
		update, err := AddFlagsCalculations(state)
		require.NoError(t, err)

		flags := update["flags"].(map[string]any)
		assert.Equal(t, true, flags["has_entities"])
		assert.Equal(t, true, flags["has_kb_result"])
		assert.Equal(t, false, flags["has_enrichment"])
		assert.Equal(t, true, flags["has_answer"])
		assert.Equal(t, "elevated", flags["sla_risk"])
	})

	t.Run("sla risk tiers", func(t *testing.T) {
		tiers := map[string]string{
			"high":     "elevated",
			"critical": "elevated",
			"medium":   "moderate",
			"normal":   "moderate",
			"low":      "low",
			"whenever": "unknown",
		}
		for priority, want := range tiers {
			update, err := AddFlagsCalculations(domain.State{"priority": priority})
			require.NoError(t, err)
			assert.Equal(t, want, update["flags"].(map[string]any)["sla_risk"], priority)
		}
	})

	t.Run("empty containers are not signals", func(t *testing.T) {
		state := domain.State{"knowledge_base_search": map[string]any{}}
		update, err := AddFlagsCalculations(state)
		require.NoError(t, err)
		assert.Equal(t, false, update["flags"].(map[string]any)["has_kb_result"])
	})
}

func TestStoreAnswer(t *testing.T) {
	t.Run("appends answer", func(t *testing.T) {
		update, err := StoreAnswer(domain.State{"extract_answer": "Windows 11"})
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"text": "Windows 11"}}, update["answers"])
	})

	t.Run("no answer, no container change", func(t *testing.T) {
		update, err := StoreAnswer(domain.State{})
		require.NoError(t, err)
		assert.NotContains(t, update, "answers")
	})

	t.Run("replay does not duplicate", func(t *testing.T) {
		state := domain.State{
			"extract_answer": "Windows 11",
			"answers":        []any{map[string]any{"text": "Windows 11"}},
		}
		update, err := StoreAnswer(state)
		require.NoError(t, err)
		assert.NotContains(t, update, "answers")
	})
}

func TestStoreData(t *testing.T) {
	kb := map[string]any{"found": true, "article_title": "Fix"}

	t.Run("attaches kb payload", func(t *testing.T) {
		update, err := StoreData(domain.State{"knowledge_base_search": kb})
		require.NoError(t, err)
		retrieved := update["retrieved_data"].([]any)
		require.Len(t, retrieved, 1)
		entry := retrieved[0].(map[string]any)
		assert.Equal(t, "kb", entry["source"])
		assert.Equal(t, kb, entry["payload"])
	})

	t.Run("replay does not duplicate", func(t *testing.T) {
		state := domain.State{
			"knowledge_base_search": kb,
			"retrieved_data":        []any{map[string]any{"source": "kb", "payload": kb}},
		}
		update, err := StoreData(state)
		require.NoError(t, err)
		assert.NotContains(t, update, "retrieved_data")
	})
}

func TestSolutionEvaluation(t *testing.T) {
	score := func(t *testing.T, state domain.State) int {
		t.Helper()
		update, err := SolutionEvaluation(state)
		require.NoError(t, err)
		return update["solution_evaluation"].(map[string]any)["score"].(int)
	}

	t.Run("neutral baseline", func(t *testing.T) {
		assert.Equal(t, 50, score(t, domain.State{}))
	})

	t.Run("priority adjustments", func(t *testing.T) {
		assert.Equal(t, 65, score(t, domain.State{"priority": "high"}))
		assert.Equal(t, 45, score(t, domain.State{"priority": "low"}))
	})

	t.Run("kb found rewards, kb miss penalizes", func(t *testing.T) {
		assert.Equal(t, 60, score(t, domain.State{
			"knowledge_base_search": map[string]any{"found": true},
		}))
		assert.Equal(t, 45, score(t, domain.State{
			"knowledge_base_search": map[string]any{"found": false},
		}))
	})

	t.Run("prior tickets penalty", func(t *testing.T) {
		assert.Equal(t, 40, score(t, domain.State{
			"enrich_records": map[string]any{"previous_tickets": 3},
		}))
		assert.Equal(t, 50, score(t, domain.State{
			"enrich_records": map[string]any{"previous_tickets": 2},
		}))
	})

	t.Run("clamped for adversarial inputs", func(t *testing.T) {
		got := score(t, domain.State{
			"priority":              "low",
			"knowledge_base_search": "garbage",
			"enrich_records":        map[string]any{"previous_tickets": float64(1 << 40)},
		})
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	})

	t.Run("float scores from json decode", func(t *testing.T) {
		assert.Equal(t, 40, score(t, domain.State{
			"enrich_records": map[string]any{"previous_tickets": float64(5)},
		}))
	})
}

func TestUpdatePayload(t *testing.T) {
	t.Run("merges score and escalation", func(t *testing.T) {
		state := domain.State{
			"solution_evaluation": map[string]any{"score": 60},
			"escalation_decision": map[string]any{"escalate": true, "reason": "low score"},
		}
		update, err := UpdatePayload(state)
		require.NoError(t, err)

		decision := update["decision"].(map[string]any)
		assert.Equal(t, 60, decision["score"])
		assert.Equal(t, true, decision["should_escalate"])
		assert.Equal(t, "low score", decision["escalation_reason"])
		assert.Equal(t, "pending_handoff", decision["next_status_hint"])
	})

	t.Run("resolved candidate", func(t *testing.T) {
		state := domain.State{
			"solution_evaluation": map[string]any{"score": 95},
			"escalation_decision": map[string]any{"escalate": false},
		}
		update, err := UpdatePayload(state)
		require.NoError(t, err)
		assert.Equal(t, "resolved_candidate", update["decision"].(map[string]any)["next_status_hint"])
	})

	t.Run("in progress by default", func(t *testing.T) {
		update, err := UpdatePayload(domain.State{
			"solution_evaluation": map[string]any{"score": 70},
		})
		require.NoError(t, err)
		assert.Equal(t, "in_progress", update["decision"].(map[string]any)["next_status_hint"])
	})

	t.Run("existing hint is kept", func(t *testing.T) {
		update, err := UpdatePayload(domain.State{
			"decision": map[string]any{"next_status_hint": "pending_handoff"},
		})
		require.NoError(t, err)
		assert.Equal(t, "pending_handoff", update["decision"].(map[string]any)["next_status_hint"])
	})
}

func TestResponseGeneration(t *testing.T) {
	t.Run("full context", func(t *testing.T) {
		state := domain.State{
			"customer_name":         "Alice",
			"solution_evaluation":   map[string]any{"score": 75},
			"knowledge_base_search": map[string]any{"found": true},
			"escalation_decision":   map[string]any{"escalate": true},
		}
		update, err := ResponseGeneration(state)
		require.NoError(t, err)

		msg := update["response_generation"].(string)
		assert.True(t, strings.HasPrefix(msg, "Hi Alice,"))
		assert.Contains(t, msg, "confidence score: 75/100")
		assert.Contains(t, msg, "knowledge base")
		assert.Contains(t, msg, "routing this to a specialist")
		assert.NotContains(t, msg, "follow up soon")
	})

	t.Run("minimal context", func(t *testing.T) {
		update, err := ResponseGeneration(domain.State{})
		require.NoError(t, err)

		msg := update["response_generation"].(string)
		assert.True(t, strings.HasPrefix(msg, "Hi Customer,"))
		assert.NotContains(t, msg, "confidence score")
		assert.Contains(t, msg, "follow up soon")
	})
}

func TestOutputPayload(t *testing.T) {
	update, err := OutputPayload(domain.State{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"output_payload": "output_payload_result"}, update)
}
