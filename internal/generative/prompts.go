package generative

import "fmt"

// Shape is the expected shape of an ability's backend output.
type Shape int

const (
	// ShapeObject expects a structured JSON object.
	ShapeObject Shape = iota
	// ShapeText expects a plain string.
	ShapeText
)

type abilitySpec struct {
	Prompt string
	Shape  Shape
}

// specs documents, per ability, exactly what structured shape the backend
// must return. The prompt is sent followed by a JSON serialization of the
// current state.
var specs = map[string]abilitySpec{
	"extract_entities": {Shape: ShapeObject, Prompt: `Extract product, action, and error keywords from state['query'].
Inputs:
- query: string
- email: string (optional)
Output:
- JSON { "software": str|null, "action": str|null, "error": str|null, "email_valid": bool }`},

	"enrich_records": {Shape: ShapeObject, Prompt: `Enrich the current ticket state with metadata.
Inputs: state JSON
Outputs: Return JSON object with fields:
- sla: SLA tier (Gold, Silver, Bronze) inferred from priority
- previous_tickets: integer
- avg_resolution_time: string (e.g. "4h", "1d")`},

	"clarify_question": {Shape: ShapeText, Prompt: `If the query lacks details, generate ONE concise clarification
question in natural, empathetic language. Output: plain string.`},

	"extract_answer": {Shape: ShapeText, Prompt: `Listen for the user's reply to a clarification question.
Return a short, structured answer string only (no extra commentary).`},

	"knowledge_base_search": {Shape: ShapeObject, Prompt: `Search for solutions in the knowledge base.
Inputs: state['query'] (customer's issue description).
If a matching article exists, return:
{"found": true, "article_title": "...", "article_excerpt": "..."}
Else: {"found": false}`},

	"escalation_decision": {Shape: ShapeObject, Prompt: `Decide whether to escalate to a human.
Inputs: state JSON, including solution_evaluation score (0-100).
Rule:
- If score < 90 -> escalate = true
- Else -> escalate = false
Output: {"escalate": true/false}`},

	"update_ticket": {Shape: ShapeObject, Prompt: `Update the ticket fields in the state.
Inputs: state JSON
Allowed fields:
- status (open, pending, resolved)
- priority (low, medium, high)
- notes (string)
Output: JSON object with updated fields.`},

	"close_ticket": {Shape: ShapeObject, Prompt: `You are responsible for closing tickets, but only if they meet strict conditions.

Inputs:
- state['ticket_id'] (integer)
- state['status'] (string)
- state['solution_evaluation'] (optional)

Rules:
1. If status == 'resolved':
    - Return JSON exactly in this format:
      {"ticket_id": <id>, "status": "closed", "resolution_notes": "<short summary>"}
    - The resolution_notes should mention the solution_evaluation score if available.
2. If status != 'resolved':
    - Do NOT attempt closure.
    - Instead return JSON exactly in this format:
      {"skipped": true, "reason": "Ticket not resolved yet"}`},

	"execute_api_calls": {Shape: ShapeObject, Prompt: `Execute external CRM or order system API calls as needed.
Inputs: JSON with customer and ticket context.
Outputs: Return ONLY a JSON object:
{"success": true/false, "api": "<name>", "details": "<short description>"}
Do NOT return code snippets or tool calls.`},

	"trigger_notifications": {Shape: ShapeObject, Prompt: `Send notification(s) to the customer.
Inputs:
- customer_name
- email
- ticket_id
- notification_type (created, updated, closed)
Output: Return ONLY a JSON object:
{"success": true/false, "notification_id": "<id>"}
Do NOT return code or tool invocations.`},
}

// PromptFor returns the instruction text for an ability, so drivers and
// scripted backends can match requests to abilities.
func PromptFor(ability string) (string, bool) {
	spec, ok := specs[ability]
	return spec.Prompt, ok
}

func specFor(ability string) abilitySpec {
	if spec, ok := specs[ability]; ok {
		return spec
	}
	return abilitySpec{
		Prompt: fmt.Sprintf("Run ability %s against the provided state.", ability),
		Shape:  ShapeObject,
	}
}
