package packed

import (
	"errors"
	"fmt"
)

var (
	// ErrFull is raised when adding an element to an array at capacity.
	ErrFull = errors.New("packed: array is full")
	// ErrNotLive is raised when an index does not name a live element.
	ErrNotLive = errors.New("packed: index is not live")
	// ErrOutOfRange is raised for indices outside [0, Cap()).
	ErrOutOfRange = errors.New("packed: index out of range")
	// ErrInvalidCapacity is raised by New for a negative capacity.
	ErrInvalidCapacity = errors.New("packed: invalid capacity")
	// ErrConcurrentMutation is raised when the array is structurally modified
	// while an iterator or Update callback is running.
	ErrConcurrentMutation = errors.New("packed: array modified during iteration")
)

// fail panics with err annotated by a formatted detail message.
func fail(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
