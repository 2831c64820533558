package espalier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwald/espalier"
	"github.com/fernwald/espalier/pkg/adapters/scripted"
	"github.com/fernwald/espalier/pkg/domain"
)

var seed = domain.Seed{
	CustomerName: "Alice",
	Email:        " ALICE@X.com ",
	Query:        "The app crashes on login",
	Priority:     "urgent",
	TicketID:     123,
}

func TestNew_RequiresBackend(t *testing.T) {
	_, err := espalier.New(nil)
	assert.Error(t, err)
}

func TestNew_ValidatesStages(t *testing.T) {
	_, err := espalier.New(scripted.New(), espalier.WithStages(nil))
	assert.Error(t, err)

	_, err = espalier.New(scripted.New(), espalier.WithStages([]domain.Stage{
		{Name: "INTAKE", Abilities: []string{"accept_payload"}},
		{Name: "AGAIN", Abilities: []string{"accept_payload"}},
	}))
	assert.Error(t, err, "an ability scheduled twice is a configuration error")
}

// The engine stays useful with no backend reachable at all: fallbacks
// carry every generative ability and the run completes end to end.
func TestRun_OfflineEndToEnd(t *testing.T) {
	engine, err := espalier.New(scripted.Unavailable(nil))
	require.NoError(t, err)
	ctx := context.Background()

	state, err := engine.Run(ctx, seed, nil)
	require.NoError(t, err)
	awaiting, suspended := state.Suspended()
	require.True(t, suspended)
	require.Equal(t, "clarify_question", awaiting)

	state, err = engine.Run(ctx, seed, []string{"Which OS are you on?"})
	require.NoError(t, err)
	awaiting, suspended = state.Suspended()
	require.True(t, suspended)
	require.Equal(t, "extract_answer", awaiting)

	state, err = engine.Run(ctx, seed, []string{"Which OS are you on?", "Windows 11"})
	require.NoError(t, err)
	_, suspended = state.Suspended()
	assert.False(t, suspended)

	assert.Equal(t, "alice@x.com", state["email"])
	assert.Equal(t, "high", state["priority"])
	assert.Len(t, state.ErrorLog(), 8, "one record per generative ability")
	assert.Contains(t, state["response_generation"], "specialist",
		"the low fallback score routes the case to a human")
}

func TestRun_CustomStageSubset(t *testing.T) {
	stages := []domain.Stage{
		{Name: "INTAKE", Abilities: []string{"accept_payload"}},
		{Name: "PREPARE", Abilities: []string{"normalize_fields"}},
	}
	engine, err := espalier.New(scripted.New(), espalier.WithStages(stages))
	require.NoError(t, err)

	state, err := engine.Run(context.Background(), seed, nil)
	require.NoError(t, err)

	_, suspended := state.Suspended()
	assert.False(t, suspended, "no human abilities scheduled")
	assert.Equal(t, "alice@x.com", state["email"])
	assert.NotContains(t, state, "solution_evaluation")
}
