package generative

import (
	"encoding/json"
	"strings"
)

// sanitize applies the output validation contract to raw backend text.
// For ShapeText the text is trimmed and stored as-is. For ShapeObject a
// strict parse is attempted first, then a brace-delimited substring parse;
// if both fail the result is a typed error object, never a Go error.
func sanitize(raw string, shape Shape) any {
	if shape == ShapeText {
		return strings.TrimSpace(raw)
	}
	if v, ok := parseObject(raw); ok {
		return v
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		if v, ok := parseObject(raw[start : end+1]); ok {
			return v
		}
	}
	return map[string]any{"error": "malformed output", "raw": raw}
}

func parseObject(text string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	return v, true
}

// isSkipped reports whether a parsed object carries an explicit skip
// marker. Skips are results, not errors.
func isSkipped(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok || m["skipped"] != true {
		return "", false
	}
	reason, _ := m["reason"].(string)
	if reason == "" {
		reason = "no reason provided"
	}
	return reason, true
}
