package human

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernwald/espalier/pkg/domain"
)

func TestResolve(t *testing.T) {
	answers := []string{"It crashes on login", "Windows 11"}

	t.Run("consumes answers positionally", func(t *testing.T) {
		value, next, ok := Resolve(answers, 0)
		assert.True(t, ok)
		assert.Equal(t, "It crashes on login", value)
		assert.Equal(t, 1, next)

		value, next, ok = Resolve(answers, next)
		assert.True(t, ok)
		assert.Equal(t, "Windows 11", value)
		assert.Equal(t, 2, next)
	})

	t.Run("exhausted queue signals suspension", func(t *testing.T) {
		value, next, ok := Resolve(answers, 2)
		assert.False(t, ok)
		assert.Empty(t, value)
		assert.Equal(t, 2, next, "cursor does not advance past the queue")
	})

	t.Run("empty queue suspends immediately", func(t *testing.T) {
		_, _, ok := Resolve(nil, 0)
		assert.False(t, ok)
	})
}

func TestPrompt(t *testing.T) {
	t.Run("clarify_question", func(t *testing.T) {
		got := Prompt(domain.State{}, "clarify_question")
		assert.Equal(t, "Could you please clarify your question to the customer?", got)
	})

	t.Run("extract_answer reuses the clarification", func(t *testing.T) {
		state := domain.State{"clarify_question": "Which OS are you running?"}
		assert.Equal(t, "Which OS are you running?", Prompt(state, "extract_answer"))
	})

	t.Run("extract_answer without a clarification", func(t *testing.T) {
		assert.Equal(t, "Can you share more details about your issue?", Prompt(domain.State{}, "extract_answer"))
	})

	t.Run("unknown ability", func(t *testing.T) {
		got := Prompt(domain.State{}, "approve_refund")
		assert.Contains(t, got, "approve_refund")
	})
}
