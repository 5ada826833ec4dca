package world

import (
	"errors"
	"fmt"

	"swarmisle/internal/sim/world/kernel/model"
)

var (
	ErrInvalidAgent  = errors.New("invalid agent")
	ErrUnknownType   = model.ErrUnknownType
	ErrInvalidConfig = errors.New("invalid config")
)

// ValidationError locates a rejected agent record.
type ValidationError struct {
	Index int
	ID    string
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("agents[%d] (%s): %s: %v", e.Index, e.ID, e.Field, e.Err)
	}
	return fmt.Sprintf("agents[%d]: %s: %v", e.Index, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
