// Package fwt implements the in-place Fast Walsh-Hadamard Transform
// benchmark.
//
// The transform runs log2(len) passes with stride step = 1, 2, 4, ...
// Within a pass every logical pair index tid in [0, len/2) owns exactly the
// two elements pair and pair+step, so the pairs of one pass can run on
// independent lanes. Passes are strictly sequential.
package fwt

import (
	"math/bits"

	"github.com/ajroetker/lanebench/internal/seed"
	"github.com/ajroetker/lanebench/lane"
)

// Length is the number of samples in the benchmark array.
const Length = 512

// Seed is the xorshift seed of the benchmark samples.
var Seed = [4]uint32{1, 2, 3, 4}

// butterfly replaces xs[pair] and xs[partner] with their sum and difference.
// Both values are read before either is written.
func butterfly(xs []float32, pair, partner int) {
	a := xs[pair]
	b := xs[partner]
	xs[pair] = a + b
	xs[partner] = a - b
}

// KernelDivMod runs the butterfly of pair index tid for one pass, locating
// the pair with division and remainder.
func KernelDivMod(xs []float32, step, tid int) {
	group := tid % step
	pair := 2*step*(tid/step) + group
	butterfly(xs, pair, pair+step)
}

// KernelMask is KernelDivMod with the division and remainder replaced by a
// shift and a mask. step must be 1<<stepLog2.
func KernelMask(xs []float32, step, stepLog2, tid int) {
	group := tid & (step - 1)
	pair := 2*step*(tid>>stepLog2) + group
	butterfly(xs, pair, pair+step)
}

// Transform applies the transform in place with sequential loops.
// len(xs) must be a power of two.
func Transform(xs []float32) {
	half := len(xs) / 2
	for step := 1; step < len(xs); step <<= 1 {
		for tid := range half {
			KernelDivMod(xs, step, tid)
		}
	}
}

// TransformMask is Transform using KernelMask.
func TransformMask(xs []float32) {
	half := len(xs) / 2
	stepLog2 := 0
	for step := 1; step < len(xs); step <<= 1 {
		for tid := range half {
			KernelMask(xs, step, stepLog2, tid)
		}
		stepLog2++
	}
}

// TransformSPMD applies the transform in place with one lane.Range per pass.
// len(xs)/2 must be a multiple of lane.Width.
func TransformSPMD(e lane.Engine, xs []float32) {
	half := len(xs) / 2
	for step := 1; step < len(xs); step <<= 1 {
		lane.Range(e, 0, half, func(tid int) {
			KernelDivMod(xs, step, tid)
		})
	}
}

// TransformMaskSPMD is TransformSPMD using KernelMask.
func TransformMaskSPMD(e lane.Engine, xs []float32) {
	half := len(xs) / 2
	stepLog2 := 0
	for step := 1; step < len(xs); step <<= 1 {
		lane.Range(e, 0, half, func(tid int) {
			KernelMask(xs, step, stepLog2, tid)
		})
		stepLog2++
	}
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

// Bench owns the sample buffer of one transform benchmark run.
type Bench struct {
	engine  lane.Engine
	initial []float32
	samples []float32
}

// NewBench returns a Bench over Length samples drawn from Seed in [0, 255).
func NewBench(e lane.Engine) *Bench {
	return NewBenchWith(e, seed.Samples(Seed, Length, 0, 255))
}

// NewBenchWith returns a Bench over a copy of initial. len(initial) must be
// a power of two and, for the lane variants, at least 2*lane.Width.
func NewBenchWith(e lane.Engine, initial []float32) *Bench {
	b := &Bench{
		engine:  e,
		initial: append([]float32(nil), initial...),
		samples: make([]float32, len(initial)),
	}
	b.Reset()
	return b
}

// Reset copies the seed samples into the working buffer.
func (b *Bench) Reset() {
	copy(b.samples, b.initial)
}

// Samples returns the working buffer.
func (b *Bench) Samples() []float32 {
	return b.samples
}

// Scalar runs Transform over the working buffer.
func (b *Bench) Scalar() { Transform(b.samples) }

// SPMD runs TransformSPMD over the working buffer.
func (b *Bench) SPMD() { TransformSPMD(b.engine, b.samples) }

// MaskScalar runs TransformMask over the working buffer.
func (b *Bench) MaskScalar() { TransformMask(b.samples) }

// MaskSPMD runs TransformMaskSPMD over the working buffer.
func (b *Bench) MaskSPMD() { TransformMaskSPMD(b.engine, b.samples) }
