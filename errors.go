package traitkit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrInvalidArgument is returned when Mixin is called without descriptors
	// or with a malformed descriptor.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionCycle is returned when descriptor resolution encounters
	// a cyclic precondition chain.
	ErrPreconditionCycle = errors.New("precondition cycle detected")

	// ErrOpNotBound is returned when invoking an operation that is not bound
	// on a record's surface.
	ErrOpNotBound = errors.New("operation not bound")
)

// InvalidArgumentError indicates a malformed call or descriptor.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// Is implements error matching for errors.Is() checks.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// PreconditionCycleError indicates a cyclic precondition chain.
// Chain lists the descriptor names on the cycle, ending at the repeat.
type PreconditionCycleError struct {
	Chain []string
}

func (e *PreconditionCycleError) Error() string {
	return fmt.Sprintf("precondition cycle detected: %s", strings.Join(e.Chain, " -> "))
}

// Is implements error matching for errors.Is() checks.
func (e *PreconditionCycleError) Is(target error) bool {
	return target == ErrPreconditionCycle
}

// OpNotBoundError indicates an invocation of an unbound operation.
type OpNotBoundError struct {
	Name string
}

func (e *OpNotBoundError) Error() string {
	return fmt.Sprintf("operation not bound: %s", e.Name)
}

// Is implements error matching for errors.Is() checks.
func (e *OpNotBoundError) Is(target error) bool {
	return target == ErrOpNotBound
}
