package domain

// Stage is an ordered group of abilities executed together. Stages are
// static configuration, not runtime state; their order is fixed for the
// lifetime of a workflow definition.
type Stage struct {
	Name      string   `json:"name" yaml:"name"`
	Abilities []string `json:"abilities" yaml:"abilities"`
}
