package experiment

import (
	"errors"
	"fmt"
)

// Domain errors for experiment runs.
var (
	// ErrInvalidState indicates a particle reached a non-finite state
	// while validation was enabled.
	ErrInvalidState = errors.New("experiment: particle state diverged (NaN or Inf)")

	// ErrNotSetup indicates Run was called before Setup.
	ErrNotSetup = errors.New("experiment: not setup")
)

// StepError wraps an error with the step it occurred on.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
