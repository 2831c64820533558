// Package runtime is the workflow engine core: it iterates stages and
// abilities in declared order, dispatches each ability to its executor,
// merges results into the single shared State, and implements the
// suspend/resume contract.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fernwald/espalier/internal/generative"
	"github.com/fernwald/espalier/internal/human"
	"github.com/fernwald/espalier/pkg/abilities"
	"github.com/fernwald/espalier/pkg/domain"
	"github.com/fernwald/espalier/pkg/registry"
)

// Engine drives one workflow definition. It holds no per-run state and is
// safe to reuse: every Run call replays from the seed, so resumption needs
// nothing but a longer answer queue.
type Engine struct {
	registry   *registry.Registry
	stages     []domain.Stage
	library    abilities.Library
	generative *generative.Executor
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Nil means no diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers lifecycle observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// NewEngine wires the engine from its collaborators.
func NewEngine(reg *registry.Registry, stages []domain.Stage, lib abilities.Library, gen *generative.Executor, opts ...Option) *Engine {
	e := &Engine{
		registry:   reg,
		stages:     stages,
		library:    lib,
		generative: gen,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the workflow from the seed, consuming the answer queue
// positionally for human abilities. It returns the final State, which
// carries the suspend marker when the run halted awaiting input. The only
// error is an unknown ability in the stage configuration; every other
// failure is recovered into the State.
func (e *Engine) Run(ctx context.Context, seed domain.Seed, answers []string) (domain.State, error) {
	state := domain.NewState(seed)
	cursor := 0

	for _, stage := range e.stages {
		e.logger.Debug("entering stage", "stage", stage.Name)
		if e.hooks.OnStageEnter != nil {
			e.hooks.OnStageEnter(ctx, stage.Name)
		}

		for _, name := range stage.Abilities {
			desc, err := e.registry.Lookup(name)
			if err != nil {
				return nil, err
			}

			event := &domain.AbilityEvent{
				Stage:   stage.Name,
				Ability: name,
				Kind:    desc.Kind,
				Backend: desc.Backend,
			}
			if e.hooks.OnAbilityStart != nil {
				e.hooks.OnAbilityStart(ctx, event)
			}
			e.logger.Debug("running ability", "stage", stage.Name, "ability", name, "kind", string(desc.Kind))

			switch desc.Kind {
			case domain.KindDeterministic:
				update := abilities.Execute(e.library, name, state.Clone(), e.logger)
				state.Apply(update)

			case domain.KindGenerative:
				result := e.generative.Execute(ctx, name, state.Clone())
				for _, rec := range result.Records {
					state.AppendError(rec)
				}
				state[name] = result.Value
				event.Fallback = result.Fallback

			case domain.KindHuman:
				answer, next, ok := human.Resolve(answers, cursor)
				if !ok {
					state[domain.KeyHumanInputNeeded] = name
					e.logger.Info("workflow suspended awaiting human input", "ability", name)
					if e.hooks.OnSuspend != nil {
						e.hooks.OnSuspend(ctx, name)
					}
					return state, nil
				}
				cursor = next
				state[name] = answer

			default:
				return nil, fmt.Errorf("ability %s has unsupported executor kind %q", name, desc.Kind)
			}

			// Errors are non-fatal: the failed ability keeps its
			// recognizably-shaped error object and the pipeline continues.
			if domain.IsErrorValue(state[name]) {
				event.IsError = true
				if m, ok := state[name].(map[string]any); ok {
					e.logger.Warn("ability failed", "ability", name, "err", m["error"])
				}
			}
			if e.hooks.OnAbilityEnd != nil {
				e.hooks.OnAbilityEnd(ctx, event)
			}

			e.observeEscalation(ctx, name, state)
		}
	}

	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(ctx)
	}
	return state, nil
}

// observeEscalation emits the diagnostic signal after escalation_decision
// resolves affirmatively. Observation only: the pipeline never skips or
// reorders subsequent abilities based on it.
func (e *Engine) observeEscalation(ctx context.Context, name string, state domain.State) {
	if name != "escalation_decision" {
		return
	}
	decision, ok := state[name].(map[string]any)
	if !ok || decision["escalate"] != true {
		return
	}
	e.logger.Info("escalating to human agent", "ability", name)
	if e.hooks.OnEscalation != nil {
		e.hooks.OnEscalation(ctx, name)
	}
}
