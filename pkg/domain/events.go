package domain

import "context"

// AbilityEvent describes one ability execution for observers.
type AbilityEvent struct {
	Stage   string
	Ability string
	Kind    ExecutorKind
	Backend string

	// IsError is set when the ability's own result is an error object.
	IsError bool

	// Fallback is set when the generative backend was unavailable and a
	// canned substitute was used.
	Fallback bool
}

// LifecycleHooks defines optional callbacks for engine observability.
// Nil fields are skipped.
type LifecycleHooks struct {
	OnStageEnter   func(context.Context, string)
	OnAbilityStart func(context.Context, *AbilityEvent)
	OnAbilityEnd   func(context.Context, *AbilityEvent)

	// OnSuspend fires when the engine halts awaiting human input for the
	// named ability.
	OnSuspend func(context.Context, string)

	// OnEscalation fires immediately after escalation_decision resolves
	// with escalate = true. Observation only; the pipeline continues.
	OnEscalation func(context.Context, string)

	OnComplete func(context.Context)
}
