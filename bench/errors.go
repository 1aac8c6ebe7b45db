package bench

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBenchmark is returned when a benchmark name is not registered.
	ErrUnknownBenchmark = errors.New("bench: unknown benchmark")

	// ErrUnknownVariant is returned when a benchmark has no variant of the
	// requested name.
	ErrUnknownVariant = errors.New("bench: unknown variant")

	// ErrInvalidSuite is returned when a suite file fails validation.
	ErrInvalidSuite = errors.New("bench: invalid suite")

	// ErrMismatch is the cause of every MismatchError.
	ErrMismatch = errors.New("bench: variant state differs from scalar")
)

// MismatchError reports a variant whose final state differs from the scalar
// variant of the same benchmark.
//
// The underlying sentinel can be accessed via errors.Unwrap.
type MismatchError struct {
	Bench   string
	Variant string
	Engine  string
	Diff    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: %s/%s on %s engine (-scalar +%s):\n%s",
		ErrMismatch, e.Bench, e.Variant, e.Engine, e.Variant, e.Diff)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }
