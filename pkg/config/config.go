// Package config loads the stage configuration: the ordered list of stages
// and the abilities each one runs.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fernwald/espalier/pkg/domain"
)

// Workflow is the static workflow definition.
type Workflow struct {
	Stages []domain.Stage `yaml:"stages"`
}

// Default returns the canonical eleven-stage customer-support workflow.
func Default() Workflow {
	return Workflow{Stages: []domain.Stage{
		{Name: "INTAKE", Abilities: []string{"accept_payload"}},
		{Name: "UNDERSTAND", Abilities: []string{"parse_request_text", "extract_entities"}},
		{Name: "PREPARE", Abilities: []string{"normalize_fields", "enrich_records", "add_flags_calculations"}},
		{Name: "ASK", Abilities: []string{"clarify_question"}},
		{Name: "WAIT", Abilities: []string{"extract_answer", "store_answer"}},
		{Name: "RETRIEVE", Abilities: []string{"knowledge_base_search", "store_data"}},
		{Name: "DECIDE", Abilities: []string{"solution_evaluation", "escalation_decision", "update_payload"}},
		{Name: "UPDATE", Abilities: []string{"update_ticket", "close_ticket"}},
		{Name: "CREATE", Abilities: []string{"response_generation"}},
		{Name: "DO", Abilities: []string{"execute_api_calls", "trigger_notifications"}},
		{Name: "COMPLETE", Abilities: []string{"output_payload"}},
	}}
}

// Load parses a workflow definition from YAML.
func Load(r io.Reader) (Workflow, error) {
	var wf Workflow
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&wf); err != nil {
		return Workflow{}, fmt.Errorf("failed to parse workflow config: %w", err)
	}
	if err := wf.Validate(); err != nil {
		return Workflow{}, err
	}
	return wf, nil
}

// LoadFile parses a workflow definition from a YAML file.
func LoadFile(path string) (Workflow, error) {
	f, err := os.Open(path)
	if err != nil {
		return Workflow{}, fmt.Errorf("failed to open workflow config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the structural invariants of a workflow definition:
// at least one stage, non-empty names, and no ability scheduled twice.
func (w Workflow) Validate() error {
	if len(w.Stages) == 0 {
		return fmt.Errorf("workflow has no stages")
	}
	seen := make(map[string]string)
	for _, st := range w.Stages {
		if st.Name == "" {
			return fmt.Errorf("stage with empty name")
		}
		if len(st.Abilities) == 0 {
			return fmt.Errorf("stage %s has no abilities", st.Name)
		}
		for _, ability := range st.Abilities {
			if ability == "" {
				return fmt.Errorf("stage %s has an empty ability name", st.Name)
			}
			if prev, dup := seen[ability]; dup {
				return fmt.Errorf("ability %s scheduled in both %s and %s", ability, prev, st.Name)
			}
			seen[ability] = st.Name
		}
	}
	return nil
}
