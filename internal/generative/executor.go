// Package generative runs abilities that delegate to the text-completion
// backend: it builds the per-ability prompt, validates and repairs the
// returned text against the expected shape, and substitutes a canned
// fallback when the backend is unavailable. It never raises: every
// execution yields a value of the ability's expected shape.
package generative

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/fernwald/espalier/pkg/domain"
	"github.com/fernwald/espalier/pkg/ports"
)

// Result is the outcome of one generative ability execution.
type Result struct {
	// Value is stored under the ability's key: a parsed object, a trimmed
	// string, or a malformed-output error object.
	Value any

	// Fallback is set when the backend call failed and a canned substitute
	// was used instead.
	Fallback bool

	// Skipped is set when the parsed object carried an explicit skip marker.
	Skipped bool

	// Records are entries to append to the shared error log.
	Records []map[string]any
}

// Executor dispatches generative abilities to the backend.
type Executor struct {
	backend ports.Backend
	logger  *slog.Logger
}

// NewExecutor builds an executor. A nil logger disables diagnostics.
func NewExecutor(backend ports.Backend, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{backend: backend, logger: logger}
}

// Execute runs one generative ability against a state snapshot.
// Backend failures do not propagate; they are recorded and replaced by the
// ability's fallback, which goes through the same validation contract.
func (x *Executor) Execute(ctx context.Context, ability string, state domain.State) Result {
	spec := specFor(ability)
	var res Result

	raw, err := x.complete(ctx, spec.Prompt, state)
	if err != nil {
		x.logger.Warn("backend unavailable, substituting fallback",
			"ability", ability, "err", err)
		res.Fallback = true
		res.Records = append(res.Records, domain.ErrorRecord(ability, domain.BackendAtlas, err.Error()))
		raw = fallbackText(ability, state)
	}

	res.Value = sanitize(raw, spec.Shape)

	if reason, skipped := isSkipped(res.Value); skipped {
		res.Skipped = true
		x.logger.Info("ability skipped", "ability", ability, "reason", reason)
		return res
	}

	if spec.Shape == ShapeObject {
		if err := checkContract(ability, res.Value); err != nil {
			x.logger.Warn("output violates ability contract", "ability", ability, "err", err)
		}
	}
	return res
}

func (x *Executor) complete(ctx context.Context, prompt string, state domain.State) (string, error) {
	snapshot, err := json.Marshal(state)
	if err != nil {
		snapshot = []byte("{}")
	}
	messages := []ports.Message{{
		Role:    "user",
		Content: prompt + "\n\nState: " + string(snapshot),
	}}
	completion, err := x.backend.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return completion.Content, nil
}
