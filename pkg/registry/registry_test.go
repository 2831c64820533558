package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwald/espalier/pkg/domain"
	"github.com/fernwald/espalier/pkg/registry"
)

func TestLookup(t *testing.T) {
	reg := registry.Default()

	tests := []struct {
		ability string
		kind    domain.ExecutorKind
		backend string
	}{
		{"accept_payload", domain.KindDeterministic, domain.BackendCommon},
		{"extract_entities", domain.KindGenerative, domain.BackendAtlas},
		{"clarify_question", domain.KindHuman, domain.BackendAtlas},
		{"solution_evaluation", domain.KindDeterministic, domain.BackendCommon},
		{"close_ticket", domain.KindGenerative, domain.BackendAtlas},
	}
	for _, tt := range tests {
		t.Run(tt.ability, func(t *testing.T) {
			desc, err := reg.Lookup(tt.ability)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, desc.Kind)
			assert.Equal(t, tt.backend, desc.Backend)
		})
	}
}

func TestLookup_UnknownAbility(t *testing.T) {
	_, err := registry.Default().Lookup("astral_projection")
	require.Error(t, err)

	var unknown *domain.UnknownAbilityError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "astral_projection", unknown.Ability)
}

func TestNew_LaterEntriesWin(t *testing.T) {
	reg := registry.New(
		domain.AbilityDescriptor{Name: "clarify_question", Kind: domain.KindHuman, Backend: domain.BackendAtlas},
		domain.AbilityDescriptor{Name: "clarify_question", Kind: domain.KindGenerative, Backend: domain.BackendAtlas},
	)

	desc, err := reg.Lookup("clarify_question")
	require.NoError(t, err)
	assert.Equal(t, domain.KindGenerative, desc.Kind)
}
