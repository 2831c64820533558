package generative

import (
	"encoding/json"
	"fmt"

	"github.com/fernwald/espalier/pkg/domain"
)

// fallbackText returns the canned substitute used when the backend itself
// fails. Each fallback matches the ability's expected shape exactly, and
// is re-run through the same validation contract as real output. Where the
// real ability derives its answer from the state, the fallback does too:
// the escalation fallback recomputes the flag from the current score
// against the same threshold, and the closure fallback inspects the ticket
// status.
func fallbackText(ability string, state domain.State) string {
	switch ability {
	case "extract_entities":
		return `{"software": "App", "action": "login", "error": "crash", "email_valid": true}`
	case "enrich_records":
		return `{"sla": "Gold", "previous_tickets": 2, "avg_resolution_time": "4h"}`
	case "clarify_question":
		return "Could you provide more details about the issue?"
	case "extract_answer":
		return "Windows 11"
	case "knowledge_base_search":
		return `{"found": false}`
	case "escalation_decision":
		return fmt.Sprintf(`{"escalate": %t}`, evaluationScore(state) < 90)
	case "update_ticket":
		return `{"status": "pending", "priority": "high", "notes": "Waiting on user info"}`
	case "close_ticket":
		return closureFallback(state)
	case "execute_api_calls":
		return `{"success": false, "api": "none", "details": "no action required"}`
	case "trigger_notifications":
		return `{"success": true, "notification_id": "fallback"}`
	default:
		return fmt.Sprintf(`{"fallback": %q}`, ability)
	}
}

func closureFallback(state domain.State) string {
	status, _ := state["status"].(string)
	if status == "" {
		status = "open"
	}
	escalated := false
	if esc, ok := state["escalation_decision"].(map[string]any); ok {
		escalated = esc["escalate"] == true
	}

	switch {
	case status == "resolved" && !escalated:
		payload := map[string]any{
			"ticket_id":        state["ticket_id"],
			"status":           "closed",
			"resolution_notes": fmt.Sprintf("Issue resolved. Solution evaluation score: %d", evaluationScore(state)),
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return `{"skipped": true, "reason": "could not encode closure"}`
		}
		return string(data)
	case escalated:
		return `{"skipped": true, "reason": "Ticket escalated, cannot close automatically"}`
	default:
		return `{"skipped": true, "reason": "Ticket not resolved yet"}`
	}
}

func evaluationScore(state domain.State) int {
	se, ok := state["solution_evaluation"].(map[string]any)
	if !ok {
		return 50
	}
	switch v := se["score"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 50
	}
}
