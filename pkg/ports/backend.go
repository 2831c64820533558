// Package ports defines the driven-side interfaces of the engine: the
// generative text-completion capability and the driver session store.
package ports

import "context"

// Message is one turn of a completion prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the backend's raw answer. The engine only consumes
// Content; provider metadata is carried for diagnostics.
type Completion struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// Backend is the generative text-completion capability consumed by the
// generative executor. Implementations own transport, authentication,
// caching and retries; the executor treats any returned error as immediate
// fallback.
type Backend interface {
	Complete(ctx context.Context, messages []Message) (*Completion, error)
}
