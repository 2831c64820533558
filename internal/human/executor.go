// Package human resolves human-in-the-loop abilities from the caller's
// answer queue, or signals that the workflow must suspend.
package human

import (
	"fmt"

	"github.com/fernwald/espalier/pkg/domain"
)

// Resolve supplies a previously collected answer for a human ability.
// Answers are consumed positionally: the cursor counts the human abilities
// already satisfied in this run. When no answer is available, ok is false
// and the engine must suspend; Resolve itself has no side effects.
func Resolve(answers []string, cursor int) (value string, next int, ok bool) {
	if cursor < len(answers) {
		return answers[cursor], cursor + 1, true
	}
	return "", cursor, false
}

// Prompt returns the operator-facing prompt for a suspended human ability.
// For extract_answer the clarification collected earlier is reused as the
// question to the customer.
func Prompt(state domain.State, ability string) string {
	switch ability {
	case "clarify_question":
		return "Could you please clarify your question to the customer?"
	case "extract_answer":
		if q, ok := state["clarify_question"].(string); ok && q != "" {
			return q
		}
		return "Can you share more details about your issue?"
	default:
		return fmt.Sprintf("Could you help with the following request: %s?", ability)
	}
}
