package scripted

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwald/espalier/pkg/ports"
)

func complete(t *testing.T, b *Backend, prompt string) (*ports.Completion, error) {
	t.Helper()
	return b.Complete(context.Background(), []ports.Message{{Role: "user", Content: prompt}})
}

func TestRespond_MatchesBySubstring(t *testing.T) {
	b := New().
		Respond("knowledge base", `{"found": true}`).
		Respond("escalate", `{"escalate": false}`)

	got, err := complete(t, b, "Search for solutions in the knowledge base.\n\nState: {}")
	require.NoError(t, err)
	assert.Equal(t, `{"found": true}`, got.Content)
	assert.Equal(t, "scripted", got.Model)

	got, err = complete(t, b, "Decide whether to escalate.")
	require.NoError(t, err)
	assert.Equal(t, `{"escalate": false}`, got.Content)
}

func TestRespond_FirstRuleWins(t *testing.T) {
	b := New().
		Respond("ticket", "first").
		Respond("ticket", "second")

	got, err := complete(t, b, "Update the ticket.")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)
}

func TestDefault_CatchesUnmatchedPrompts(t *testing.T) {
	b := New().Default("fallthrough")

	got, err := complete(t, b, "anything at all")
	require.NoError(t, err)
	assert.Equal(t, "fallthrough", got.Content)
}

func TestNew_FailsWithoutRules(t *testing.T) {
	_, err := complete(t, New(), "anything")
	assert.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("atlas down")
	_, err := complete(t, Unavailable(cause), "anything")
	assert.ErrorIs(t, err, cause)

	_, err = complete(t, Unavailable(nil), "anything")
	assert.Error(t, err)
}

func TestForAbilities_MatchesViaPromptText(t *testing.T) {
	b := ForAbilities(map[string]string{
		"knowledge_base_search": `{"found": true}`,
		"not_a_real_ability":    "ignored",
	})

	got, err := complete(t, b, "Search for solutions in the knowledge base.\n\nState: {}")
	require.NoError(t, err)
	assert.Equal(t, `{"found": true}`, got.Content)
}

func TestCalls(t *testing.T) {
	b := New().Default("ok")
	require.Equal(t, 0, b.Calls())

	_, _ = complete(t, b, "one")
	_, _ = complete(t, b, "two")
	assert.Equal(t, 2, b.Calls())
}
