package ports

import (
	"context"
	"time"

	"github.com/fernwald/espalier/pkg/domain"
)

// Session is what a driver persists between replays: the original seed and
// the answer queue collected so far. The engine itself stays stateless;
// this is the driver-side equivalent of a browser session.
type Session struct {
	ID        string      `json:"id"`
	Seed      domain.Seed `json:"seed"`
	Answers   []string    `json:"answers"`
	CreatedAt time.Time   `json:"created_at"`
}

// SessionStore persists driver sessions across workflow replays.
type SessionStore interface {
	// Save persists the session, overwriting any previous version.
	Save(ctx context.Context, session *Session) error

	// Load retrieves a session by ID. Returns domain.ErrSessionNotFound
	// if the session does not exist.
	Load(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
