package synth

import "errors"

// Sentinel errors for event-class misuse.
var (
	// ErrClassMismatch is returned when an event is released into a class
	// it does not belong to. This is a programming error in the caller,
	// not a recoverable condition.
	ErrClassMismatch = errors.New("event released into wrong class")

	// ErrNilEvent is returned when a nil event is released.
	ErrNilEvent = errors.New("event cannot be nil")
)

// MismatchError carries the class names involved in an ErrClassMismatch.
type MismatchError struct {
	// EventClass is the name of the class the event belongs to.
	EventClass string

	// PoolClass is the name of the class whose Release was called.
	PoolClass string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return "event of class " + e.EventClass + " released into pool of class " + e.PoolClass
}

// Is allows errors.Is to match MismatchError with ErrClassMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrClassMismatch
}
