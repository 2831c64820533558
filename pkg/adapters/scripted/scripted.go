// Package scripted provides a deterministic generative backend for tests
// and offline demos. Responses are selected by matching prompt text, so
// they stay stable across workflow replays.
package scripted

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/fernwald/espalier/internal/generative"
	"github.com/fernwald/espalier/pkg/ports"
)

// Backend implements ports.Backend from a fixed script.
type Backend struct {
	mu       sync.Mutex
	rules    []rule
	fallback string
	hasFall  bool
	err      error
	calls    int
}

type rule struct {
	match    string
	response string
}

// New creates an empty scripted backend. Without rules or a default it
// fails every call, which exercises the engine's fallback path.
func New() *Backend {
	return &Backend{}
}

// Unavailable creates a backend whose every call fails with err, modelling
// total backend unavailability.
func Unavailable(err error) *Backend {
	if err == nil {
		err = errors.New("backend unavailable")
	}
	return &Backend{err: err}
}

// ForAbilities creates a backend that answers each listed ability with a
// fixed response, matched via the ability's prompt text. Abilities without
// a registered prompt are ignored.
func ForAbilities(responses map[string]string) *Backend {
	b := New()
	for ability, response := range responses {
		if prompt, ok := generative.PromptFor(ability); ok {
			b.Respond(prompt, response)
		}
	}
	return b
}

// Respond adds a rule: any prompt containing match gets this response.
// Rules are checked in registration order.
func (b *Backend) Respond(match, response string) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rules = append(b.rules, rule{match: match, response: response})
	return b
}

// Default sets the response for prompts no rule matches.
func (b *Backend) Default(response string) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fallback = response
	b.hasFall = true
	return b
}

// Complete implements ports.Backend.
func (b *Backend) Complete(ctx context.Context, messages []ports.Message) (*ports.Completion, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++

	if b.err != nil {
		return nil, b.err
	}
	if len(messages) == 0 {
		return nil, errors.New("scripted backend: empty prompt")
	}

	content := messages[len(messages)-1].Content
	for _, r := range b.rules {
		if r.match != "" && strings.Contains(content, r.match) {
			return &ports.Completion{Content: r.response, Model: "scripted"}, nil
		}
	}
	if b.hasFall {
		return &ports.Completion{Content: b.fallback, Model: "scripted"}, nil
	}
	return nil, errors.New("scripted backend: no response for prompt")
}

// Calls reports how many completions were requested.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
