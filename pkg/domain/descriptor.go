package domain

// ExecutorKind selects which of the three executors runs an ability.
type ExecutorKind string

const (
	KindDeterministic ExecutorKind = "deterministic"
	KindGenerative    ExecutorKind = "generative"
	KindHuman         ExecutorKind = "human"
)

// Backend identifiers.
const (
	// BackendCommon runs pure in-process functions.
	BackendCommon = "common"
	// BackendAtlas delegates to the generative text-completion backend.
	BackendAtlas = "atlas"
)

// AbilityDescriptor is the static registry entry for one ability.
type AbilityDescriptor struct {
	Name    string       `json:"name" yaml:"name"`
	Kind    ExecutorKind `json:"kind" yaml:"kind"`
	Backend string       `json:"backend" yaml:"backend"`
}
