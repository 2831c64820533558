package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fernwald/espalier/pkg/adapters/scripted"
	"github.com/fernwald/espalier/pkg/ports"
)

// backendFromFlags builds the generative backend for CLI use. With a
// script file every listed ability gets its scripted response; without
// one every backend call fails and the engine serves its canned
// fallbacks, which keeps the tool fully usable offline.
func backendFromFlags(cmd *cobra.Command) (ports.Backend, error) {
	path, _ := cmd.Flags().GetString("script")
	if path == "" {
		return scripted.Unavailable(errors.New("no generative backend configured")), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	var responses map[string]string
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("failed to parse script file: %w", err)
	}
	return scripted.ForAbilities(responses), nil
}
