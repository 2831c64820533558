package domain

// Well-known State keys.
const (
	// KeyHumanInputNeeded is the suspend marker. Its presence is the sole
	// signal distinguishing a suspended snapshot from a completed one; its
	// value is the name of the ability awaiting input.
	KeyHumanInputNeeded = "_human_input_needed"

	// KeyErrors holds the shared error log: a sequence of records shaped
	// like {"ability": ..., "backend": ..., "error": ...}.
	KeyErrors = "errors"
)

// Seed carries the caller-supplied fields a workflow run starts from.
type Seed struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Query        string `json:"query"`
	Priority     string `json:"priority"`
	TicketID     int    `json:"ticket_id"`
}

// State is the single mutable mapping threaded through an entire workflow
// run. Every ability writes its own result under a key equal to its own
// name; stable sub-containers (flags, decision, history, errors, answers,
// retrieved_data) are appended to, never replaced wholesale.
type State map[string]any

// NewState builds the initial State for a run from seed fields.
func NewState(seed Seed) State {
	return State{
		"customer_name": seed.CustomerName,
		"email":         seed.Email,
		"query":         seed.Query,
		"priority":      seed.Priority,
		"ticket_id":     seed.TicketID,
	}
}

// Apply merges a partial update into the state, top-level key by key.
func (s State) Apply(update map[string]any) {
	for k, v := range update {
		s[k] = v
	}
}

// Clone returns a deep copy of the state. Nested maps and slices are
// copied; scalar values are shared.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// AppendError appends a recovered-failure record to the shared error log.
func (s State) AppendError(rec map[string]any) {
	s[KeyErrors] = append(s.ErrorLog(), rec)
}

// ErrorLog returns the shared error log, or nil if no ability failed yet.
func (s State) ErrorLog() []any {
	log, _ := s[KeyErrors].([]any)
	return log
}

// Suspended reports whether the state carries the suspend marker, and for
// which ability.
func (s State) Suspended() (string, bool) {
	name, ok := s[KeyHumanInputNeeded].(string)
	return name, ok
}

// ErrorRecord builds an entry for the shared error log.
func ErrorRecord(ability, backend, message string) map[string]any {
	return map[string]any{
		"ability": ability,
		"backend": backend,
		"error":   message,
	}
}

// IsErrorValue reports whether an ability's own result is a recovered
// error object, i.e. a mapping carrying an "error" field.
func IsErrorValue(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, found := m["error"]
	return found
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = cloneValue(inner)
		}
		return out
	case State:
		return map[string]any(val.Clone())
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
