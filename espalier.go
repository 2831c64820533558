package espalier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fernwald/espalier/internal/generative"
	"github.com/fernwald/espalier/internal/logging"
	"github.com/fernwald/espalier/internal/runtime"
	"github.com/fernwald/espalier/pkg/abilities"
	"github.com/fernwald/espalier/pkg/config"
	"github.com/fernwald/espalier/pkg/domain"
	"github.com/fernwald/espalier/pkg/ports"
	"github.com/fernwald/espalier/pkg/registry"
)

// Engine is the high-level entry point. It wraps the internal runtime and
// provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine

	logger   *slog.Logger
	stages   []domain.Stage
	registry *registry.Registry
	library  abilities.Library
	hooks    domain.LifecycleHooks
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithStages overrides the canonical stage configuration.
func WithStages(stages []domain.Stage) Option {
	return func(e *Engine) { e.stages = stages }
}

// WithRegistry overrides the canonical ability registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) { e.registry = reg }
}

// WithAbilities overrides the deterministic ability library.
func WithAbilities(lib abilities.Library) Option {
	return func(e *Engine) { e.library = lib }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// New initializes an Engine around a generative backend. Defaults: the
// canonical eleven-stage workflow, the built-in registry and deterministic
// library, and a no-op logger.
func New(backend ports.Backend, opts ...Option) (*Engine, error) {
	if backend == nil {
		return nil, fmt.Errorf("a generative backend is required")
	}

	eng := &Engine{
		logger:   logging.NewNop(),
		stages:   config.Default().Stages,
		registry: registry.Default(),
		library:  abilities.Common(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if err := (config.Workflow{Stages: eng.stages}).Validate(); err != nil {
		return nil, err
	}

	gen := generative.NewExecutor(backend, eng.logger)
	eng.runtime = runtime.NewEngine(
		eng.registry,
		eng.stages,
		eng.library,
		gen,
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
	)
	return eng, nil
}

// Run executes the workflow from seed fields, consuming the answer queue
// for human abilities. The returned State carries the suspend marker when
// the run halted awaiting input; resume by calling Run again with the same
// seed and one more answer.
func (e *Engine) Run(ctx context.Context, seed domain.Seed, answers []string) (domain.State, error) {
	return e.runtime.Run(ctx, seed, answers)
}
