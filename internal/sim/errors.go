package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a state value outside the system's ring.
	ErrInvalidState = errors.New("sim: invalid state (value outside ring)")

	// ErrMissingWire indicates an initial state without a value for some wire.
	ErrMissingWire = errors.New("sim: state wire has no value")
)

// StepError wraps a failure with the step it happened on.
type StepError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
