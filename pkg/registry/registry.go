// Package registry maps ability names to their static descriptors:
// which executor kind runs them and on which backend.
package registry

import (
	"github.com/fernwald/espalier/pkg/domain"
)

// Registry is the static mapping from ability name to descriptor.
// It is immutable after initialization and has no side effects.
type Registry struct {
	abilities map[string]domain.AbilityDescriptor
}

// New builds a registry from descriptors. Later entries with the same name
// overwrite earlier ones.
func New(descriptors ...domain.AbilityDescriptor) *Registry {
	r := &Registry{abilities: make(map[string]domain.AbilityDescriptor, len(descriptors))}
	for _, d := range descriptors {
		r.abilities[d.Name] = d
	}
	return r
}

// Lookup resolves an ability name. A miss returns UnknownAbilityError,
// the only fatal failure in the workflow.
func (r *Registry) Lookup(name string) (domain.AbilityDescriptor, error) {
	d, ok := r.abilities[name]
	if !ok {
		return domain.AbilityDescriptor{}, &domain.UnknownAbilityError{Ability: name}
	}
	return d, nil
}

// Default returns the canonical ability table for the customer-support
// workflow.
func Default() *Registry {
	return New(
		// INTAKE
		deterministic("accept_payload"),

		// UNDERSTAND
		deterministic("parse_request_text"),
		generative("extract_entities"),

		// PREPARE
		deterministic("normalize_fields"),
		generative("enrich_records"),
		deterministic("add_flags_calculations"),

		// ASK / WAIT
		human("clarify_question"),
		human("extract_answer"),
		deterministic("store_answer"),

		// RETRIEVE
		generative("knowledge_base_search"),
		deterministic("store_data"),

		// DECIDE
		deterministic("solution_evaluation"),
		generative("escalation_decision"),
		deterministic("update_payload"),

		// UPDATE
		generative("update_ticket"),
		generative("close_ticket"),

		// CREATE
		deterministic("response_generation"),

		// DO
		generative("execute_api_calls"),
		generative("trigger_notifications"),

		// COMPLETE
		deterministic("output_payload"),
	)
}

func deterministic(name string) domain.AbilityDescriptor {
	return domain.AbilityDescriptor{Name: name, Kind: domain.KindDeterministic, Backend: domain.BackendCommon}
}

func generative(name string) domain.AbilityDescriptor {
	return domain.AbilityDescriptor{Name: name, Kind: domain.KindGenerative, Backend: domain.BackendAtlas}
}

func human(name string) domain.AbilityDescriptor {
	return domain.AbilityDescriptor{Name: name, Kind: domain.KindHuman, Backend: domain.BackendAtlas}
}
