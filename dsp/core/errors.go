package core

import "errors"

// Error taxonomy shared by every package in the module. Callers match with
// errors.Is; packages wrap these with context via fmt.Errorf("%w: ...").
var (
	// ErrInvalidArgument reports a bad value at the boundary of a call:
	// empty payloads, non-positive spacings, mismatched lengths, unknown
	// method names or tolerance violations.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeMismatch reports complex data where a real-only operation is
	// required, or a value of the wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrPreconditionMissing reports state that cannot be inferred, such as
	// a missing epoch, frequency grid or regressor dictionary.
	ErrPreconditionMissing = errors.New("precondition missing")
)
