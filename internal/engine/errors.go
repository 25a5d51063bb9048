package engine

import (
	"errors"
	"fmt"
)

// ErrNoCheckIn is returned when a plan is requested with no check-in for the
// relevant day. Reported to the caller, not fatal.
var ErrNoCheckIn = errors.New("no check-in available for today")

// InvalidInputError rejects out-of-range check-in fields at the boundary.
// Values are never silently clamped, to avoid masking upstream bugs.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// InvariantViolationError signals an impossible state, such as two active
// enrollments or an enrollment referencing an uncataloged arc. It indicates a
// bug in the collaborator layer and must not be caught-and-ignored.
type InvariantViolationError struct {
	Msg string
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Msg
}

// IsInvariantViolation reports whether err is an InvariantViolationError.
func IsInvariantViolation(err error) bool {
	var iv *InvariantViolationError
	return errors.As(err, &iv)
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
