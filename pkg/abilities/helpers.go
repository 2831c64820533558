package abilities

import (
	"strconv"
	"strings"

	"github.com/fernwald/espalier/pkg/domain"
)

var priorityAliases = map[string]string{
	"l": "low", "lo": "low", "low": "low",
	"m": "medium", "med": "medium", "medium": "medium", "normal": "medium",
	"h": "high", "hi": "high", "high": "high", "urgent": "high", "critical": "high",
}

// normalizePriority collapses priority synonyms to low/medium/high.
// Unrecognized strings pass through lower-cased; non-strings untouched.
func normalizePriority(p any) any {
	s, ok := p.(string)
	if !ok {
		return p
	}
	key := strings.ToLower(strings.TrimSpace(s))
	if canonical, found := priorityAliases[key]; found {
		return canonical
	}
	return key
}

func hasEntities(state domain.State) bool {
	if truthy(state["entities"]) {
		return true
	}
	for k := range state {
		if strings.HasPrefix(k, "extracted_") {
			return true
		}
	}
	return false
}

func lowered(v any) string {
	s, _ := v.(string)
	return strings.ToLower(s)
}

// truthy is the presence test used by the flag and scoring abilities:
// empty strings, empty containers, zeros, false and nil all count as
// absent.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	default:
		return true
	}
}

func asInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return 0
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func setDefault(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

func cloneMap(v any) map[string]any {
	out := map[string]any{}
	if m, ok := v.(map[string]any); ok {
		for k, inner := range m {
			out[k] = inner
		}
	}
	return out
}

func cloneSlice(v any) []any {
	s, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]any, len(s))
	copy(out, s)
	return out
}
