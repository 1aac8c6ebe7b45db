package lane

import (
	"errors"
	"fmt"
)

var (
	// ErrMisaligned is the cause of a lane dispatch over a length that is
	// not a multiple of Width.
	ErrMisaligned = errors.New("lane: length is not a multiple of the lane group width")

	// ErrLengthMismatch is the cause of a Zip2 over sequences of different
	// lengths.
	ErrLengthMismatch = errors.New("lane: output and input lengths differ")

	// ErrUnknownEngine is returned when an engine name is not recognized.
	ErrUnknownEngine = errors.New("lane: unknown engine")
)

// PreconditionError describes a misconfigured lane dispatch. Lane entry
// points panic with it; it is never returned as a recoverable error.
//
// The underlying sentinel can be accessed via errors.Unwrap.
type PreconditionError struct {
	Op   string
	Len  int
	Want int
	err  error
}

func (e *PreconditionError) Error() string {
	if errors.Is(e.err, ErrLengthMismatch) {
		return fmt.Sprintf("%s: %v: %d outputs, %d inputs", e.Op, e.err, e.Len, e.Want)
	}
	return fmt.Sprintf("%s: %v: len %d, width %d", e.Op, e.err, e.Len, Width)
}

func (e *PreconditionError) Unwrap() error { return e.err }
