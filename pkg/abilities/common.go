package abilities

import (
	"fmt"
	"strings"

	"github.com/fernwald/espalier/pkg/domain"
)

// Func is a pure deterministic ability: it reads a State snapshot and
// returns a partial update to merge. It must not mutate its input.
type Func func(state domain.State) (map[string]any, error)

// Library maps ability names to their implementations. It is pluggable
// independently of the engine.
type Library map[string]Func

// Common returns the built-in deterministic ability library.
func Common() Library {
	return Library{
		"accept_payload":         AcceptPayload,
		"parse_request_text":     ParseRequestText,
		"normalize_fields":       NormalizeFields,
		"add_flags_calculations": AddFlagsCalculations,
		"store_answer":           StoreAnswer,
		"store_data":             StoreData,
		"solution_evaluation":    SolutionEvaluation,
		"update_payload":         UpdatePayload,
		"response_generation":    ResponseGeneration,
		"output_payload":         OutputPayload,
	}
}

// AcceptPayload is the pass-through intake capture. It seeds the stable
// containers without overwriting ones that already exist.
func AcceptPayload(state domain.State) (map[string]any, error) {
	update := map[string]any{"accept_payload": "accept_payload_result"}
	if _, ok := state["structured_request"]; !ok {
		update["structured_request"] = map[string]any{}
	}
	if _, ok := state["flags"]; !ok {
		update["flags"] = map[string]any{}
	}
	if _, ok := state["decision"]; !ok {
		update["decision"] = map[string]any{}
	}
	if _, ok := state["history"]; !ok {
		update["history"] = []any{}
	}
	return update, nil
}

// ParseRequestText makes the raw query minimally structured without
// guessing semantics.
func ParseRequestText(state domain.State) (map[string]any, error) {
	query, _ := state["query"].(string)
	structured := cloneMap(state["structured_request"])
	setDefault(structured, "summary", query)
	setDefault(structured, "language", "unknown")
	setDefault(structured, "length", len(query))
	return map[string]any{
		"parse_request_text": "parse_request_text_result",
		"structured_request": structured,
	}, nil
}

// NormalizeFields normalizes common primitives: priority synonyms collapse
// to low/medium/high, email is trimmed and lower-cased.
func NormalizeFields(state domain.State) (map[string]any, error) {
	update := map[string]any{"normalize_fields": "normalize_fields_result"}
	if p, ok := state["priority"]; ok {
		update["priority"] = normalizePriority(p)
	}
	if email, ok := state["email"].(string); ok {
		update["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	return update, nil
}

// AddFlagsCalculations derives boolean signals from key presence only,
// never from text content, plus a three-level SLA-risk tag.
func AddFlagsCalculations(state domain.State) (map[string]any, error) {
	flags := cloneMap(state["flags"])

	flags["has_entities"] = hasEntities(state)
	flags["has_kb_result"] = truthy(state["knowledge_base_search"])
	flags["has_enrichment"] = truthy(state["enrich_records"])
	flags["has_answer"] = truthy(state["extract_answer"])

	switch lowered(state["priority"]) {
	case "high", "critical":
		flags["sla_risk"] = "elevated"
	case "medium", "normal":
		flags["sla_risk"] = "moderate"
	case "low":
		flags["sla_risk"] = "low"
	default:
		flags["sla_risk"] = "unknown"
	}

	return map[string]any{
		"add_flags_calculations": "add_flags_calculations_result",
		"flags":                  flags,
	}, nil
}

// StoreAnswer appends the human-provided answer into the stable answers
// container. Replay-safe: an answer already present is not appended again.
func StoreAnswer(state domain.State) (map[string]any, error) {
	update := map[string]any{"store_answer": "store_answer_result"}
	ans := state["extract_answer"]
	if !truthy(ans) {
		return update, nil
	}
	answers := cloneSlice(state["answers"])
	for _, entry := range answers {
		if m, ok := entry.(map[string]any); ok && m["text"] == ans {
			return update, nil
		}
	}
	update["answers"] = append(answers, map[string]any{"text": ans})
	return update, nil
}

// StoreData attaches the knowledge-base result into the stable
// retrieved_data container. Replay-safe like StoreAnswer.
func StoreData(state domain.State) (map[string]any, error) {
	update := map[string]any{"store_data": "store_data_result"}
	kb, ok := state["knowledge_base_search"]
	if !ok || kb == nil {
		return update, nil
	}
	retrieved := cloneSlice(state["retrieved_data"])
	for _, entry := range retrieved {
		if m, isMap := entry.(map[string]any); isMap && m["source"] == "kb" {
			return update, nil
		}
	}
	update["retrieved_data"] = append(retrieved, map[string]any{"source": "kb", "payload": kb})
	return update, nil
}

// SolutionEvaluation computes the confidence score from a neutral baseline,
// using only presence and structure of fields. The result is clamped into
// [0, 100].
func SolutionEvaluation(state domain.State) (map[string]any, error) {
	score := 50

	switch lowered(state["priority"]) {
	case "high":
		score += 15
	case "low":
		score -= 5
	}

	if hasEntities(state) {
		score += 10
	}

	if kb, ok := state["knowledge_base_search"].(map[string]any); ok && kb["found"] == true {
		score += 10
	} else if v, present := state["knowledge_base_search"]; present && v != nil {
		score -= 5
	}

	if enr, ok := state["enrich_records"].(map[string]any); ok {
		if asInt(enr["previous_tickets"]) >= 3 {
			score -= 10
		}
	}

	score = clamp(score, 0, 100)
	return map[string]any{"solution_evaluation": map[string]any{"score": score}}, nil
}

// UpdatePayload folds the score and any escalation flag into the stable
// decision record and derives a non-binding status hint.
func UpdatePayload(state domain.State) (map[string]any, error) {
	decision := cloneMap(state["decision"])

	if score, ok := evaluationScore(state); ok {
		decision["score"] = score
	}

	if esc, ok := state["escalation_decision"].(map[string]any); ok {
		if escalate, present := esc["escalate"]; present {
			decision["should_escalate"] = truthy(escalate)
			if reason, hasReason := esc["reason"]; hasReason {
				decision["escalation_reason"] = reason
			}
		}
	}

	score := asInt(decision["score"])
	escalating := decision["should_escalate"] == true
	switch {
	case score >= 90 && !escalating:
		setDefault(decision, "next_status_hint", "resolved_candidate")
	case escalating:
		setDefault(decision, "next_status_hint", "pending_handoff")
	default:
		setDefault(decision, "next_status_hint", "in_progress")
	}

	return map[string]any{
		"update_payload": "update_payload_result",
		"decision":       decision,
	}, nil
}

// ResponseGeneration composes the customer-facing message from structured
// fields only. It never touches the generative backend.
func ResponseGeneration(state domain.State) (map[string]any, error) {
	customer, _ := state["customer_name"].(string)
	if customer == "" {
		customer = "Customer"
	}

	score, hasScore := evaluationScore(state)

	escalate := false
	if esc, ok := state["escalation_decision"].(map[string]any); ok {
		escalate = esc["escalate"] == true
	}

	kbHit := false
	if kb, ok := state["knowledge_base_search"].(map[string]any); ok {
		kbHit = kb["found"] == true
	}

	lines := []string{
		fmt.Sprintf("Hi %s,", customer),
		"",
		"Thanks for reaching out. We're reviewing your request and taking the next appropriate steps.",
	}
	if hasScore {
		lines = append(lines, fmt.Sprintf("- Current solution confidence score: %d/100.", score))
	}
	if kbHit {
		lines = append(lines, "- We found some relevant guidance in our knowledge base and are applying it.")
	}
	if escalate {
		lines = append(lines, "- We're routing this to a specialist for a closer look.")
	} else {
		lines = append(lines, "- We're progressing your case internally and will follow up soon.")
	}

	return map[string]any{"response_generation": strings.Join(lines, "\n")}, nil
}

// OutputPayload marks the end of the pipeline. No-op update.
func OutputPayload(state domain.State) (map[string]any, error) {
	return map[string]any{"output_payload": "output_payload_result"}, nil
}

func evaluationScore(state domain.State) (int, bool) {
	switch se := state["solution_evaluation"].(type) {
	case map[string]any:
		if v, ok := se["score"]; ok {
			return asInt(v), true
		}
	case int, int64, float64:
		return asInt(se), true
	}
	return 0, false
}
