package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in a
// session store.
var ErrSessionNotFound = errors.New("session not found")

// UnknownAbilityError is raised when a stage references an ability absent
// from the registry. It is the only failure that halts a workflow run.
type UnknownAbilityError struct {
	Ability string
}

func (e *UnknownAbilityError) Error() string {
	return fmt.Sprintf("unknown ability: %s", e.Ability)
}
