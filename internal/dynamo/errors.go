package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors shared across packages.
var (
	// ErrParameterBounds indicates a parameter value is outside its slider range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidTransition indicates a phase change the state machine does not allow.
	ErrInvalidTransition = errors.New("dynamo: invalid phase transition")

	// ErrMissingCourse indicates a lesson was mounted without a course context.
	ErrMissingCourse = errors.New("dynamo: course data missing")

	// ErrUnknownDiagram indicates a diagram name that is not registered.
	ErrUnknownDiagram = errors.New("dynamo: unknown diagram")

	// ErrUnknownLesson indicates a lesson id that is not in the catalog.
	ErrUnknownLesson = errors.New("dynamo: unknown lesson")

	// ErrAnswerMismatch indicates a worked example whose stored answer
	// disagrees with the recomputed value.
	ErrAnswerMismatch = errors.New("dynamo: worked example answer mismatch")

	// ErrInvalidCheck indicates a knowledge check that cannot be launched.
	ErrInvalidCheck = errors.New("dynamo: invalid knowledge check")
)

// TickError wraps an error with animation context.
type TickError struct {
	Tick    int
	Elapsed float64
	Phase   Phase
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.3fs, %s): %v", e.Tick, e.Elapsed, e.Phase, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
