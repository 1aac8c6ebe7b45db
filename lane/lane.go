// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lane provides the lane-parallel execution model used by every
// benchmark kernel.
//
// A lane group is a fixed set of Width logical lanes that execute the same
// kernel body in lock-step over independent data. Kernels are mapped over
// data either sequentially with RunScalar, or group by group through an
// Engine with RunVector, Range and Zip2.
//
// Basic usage:
//
//	import "github.com/ajroetker/lanebench/lane"
//
//	e := lane.Sequential{}
//	xs := make([]float32, 64)
//	lane.Range(e, 0, len(xs), func(i int) {
//	    xs[i] = float32(i) * 2
//	})
//
// Lanes of one dispatch must not depend on each other's writes. Every
// engine is required to be observationally equivalent to the Sequential
// engine, which in turn is equivalent to a plain loop.
package lane

// Width is the number of lanes in a lane group.
const Width = 16

// IsAligned returns true if n is a non-negative multiple of Width.
func IsAligned(n int) bool {
	return n >= 0 && n%Width == 0
}

// AlignedSize rounds n up to the next multiple of Width.
// This is useful for allocating buffers that will be processed by lanes.
func AlignedSize(n int) int {
	return ((n + Width - 1) / Width) * Width
}

// RunScalar invokes kernel once for every element of buf, in index order,
// on the calling goroutine.
func RunScalar[T any](buf []T, kernel func(x *T)) {
	for i := range buf {
		kernel(&buf[i])
	}
}

// RunVector invokes kernel on every element of buf as a single lock-step
// dispatch through e. buf must hold exactly Width elements.
//
// It panics with a *PreconditionError if len(buf) != Width.
func RunVector[T any](e Engine, buf []T, kernel func(x *T)) {
	if len(buf) != Width {
		panic(&PreconditionError{Op: "RunVector", Len: len(buf), err: ErrMisaligned})
	}
	e.Dispatch(0, func(i int) {
		kernel(&buf[i])
	})
}

// Range invokes kernel for every index in [start, end), one dispatch per
// group of Width consecutive indices. Groups run strictly one after another;
// the lanes inside a group run in an unspecified order.
//
// It panics with a *PreconditionError if end-start is not a non-negative
// multiple of Width.
func Range(e Engine, start, end int, kernel func(i int)) {
	n := end - start
	if !IsAligned(n) {
		panic(&PreconditionError{Op: "Range", Len: n, err: ErrMisaligned})
	}
	for base := start; base < end; base += Width {
		e.Dispatch(base, kernel)
	}
}

// Zip2 pairs outs[i] with ins[i] and invokes kernel(&outs[i], &ins[i]) for
// every index with the same group-by-group semantics as Range.
//
// It panics with a *PreconditionError if the lengths differ or are not a
// multiple of Width.
func Zip2[T any](e Engine, outs, ins []T, kernel func(out *T, in *T)) {
	if !IsAligned(len(ins)) {
		panic(&PreconditionError{Op: "Zip2", Len: len(ins), err: ErrMisaligned})
	}
	if len(outs) != len(ins) {
		panic(&PreconditionError{Op: "Zip2", Len: len(outs), Want: len(ins), err: ErrLengthMismatch})
	}
	for base := 0; base < len(ins); base += Width {
		e.Dispatch(base, func(i int) {
			kernel(&outs[i], &ins[i])
		})
	}
}
