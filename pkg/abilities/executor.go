package abilities

import (
	"fmt"
	"log/slog"

	"github.com/fernwald/espalier/pkg/domain"
)

// Execute runs one deterministic ability against a state snapshot and
// returns the partial update to merge. A fault in the ability function —
// a returned error or a panic — never propagates: the ability's own key is
// substituted with a placeholder so downstream merges stay well-formed,
// and a structured record is appended to the shared error log.
func Execute(lib Library, name string, state domain.State, logger *slog.Logger) (update map[string]any) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fn, ok := lib[name]
	if !ok {
		// Unregistered deterministic abilities degrade to their marker
		// value, same as an ability that produced nothing useful.
		return map[string]any{name: name + "_result"}
	}

	defer func() {
		if r := recover(); r != nil {
			update = faultUpdate(state, name, fmt.Sprintf("%v", r), logger)
		}
	}()

	result, err := fn(state)
	if err != nil {
		return faultUpdate(state, name, err.Error(), logger)
	}
	if result == nil {
		return map[string]any{name: name + "_result"}
	}
	return result
}

func faultUpdate(state domain.State, name, message string, logger *slog.Logger) map[string]any {
	logger.Warn("deterministic ability fault", "ability", name, "err", message)
	log := append(cloneSlice(state[domain.KeyErrors]), domain.ErrorRecord(name, "deterministic", message))
	return map[string]any{
		name:             name + "_result",
		domain.KeyErrors: log,
	}
}
