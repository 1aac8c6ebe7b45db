// Package fib implements the Fibonacci benchmark: a per-element transform
// over 16 inputs, in an iterative form with uniform control flow across
// lanes and a naive recursive form whose call depth diverges per lane.
//
// Both functions use a 1-indexed base case: fib(0) = fib(1) = 1.
package fib

import "github.com/ajroetker/lanebench/lane"

// Iterative returns the n-th Fibonacci number by accumulating the sequence
// from its first two terms. It returns 1 for n <= 1.
func Iterative(n int32) int32 {
	a, b := int32(1), int32(1)
	for range n {
		a, b = b, a+b
	}
	return a
}

// Recursive returns the n-th Fibonacci number by naive double recursion.
func Recursive(n int32) int32 {
	if n < 2 {
		return 1
	}
	return Recursive(n-1) + Recursive(n-2)
}

// Input is the seed array every run starts from.
var Input = [lane.Width]int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// Bench owns the scratch buffer of one Fibonacci benchmark run.
type Bench struct {
	engine  lane.Engine
	scratch [lane.Width]int32
}

// NewBench returns a Bench dispatching its lane variants through e.
func NewBench(e lane.Engine) *Bench {
	b := &Bench{engine: e}
	b.Reset()
	return b
}

// Reset copies Input into the scratch buffer.
func (b *Bench) Reset() {
	b.scratch = Input
}

// Values returns the scratch buffer.
func (b *Bench) Values() []int32 {
	return b.scratch[:]
}

// IterScalar applies Iterative in place with a sequential loop.
func (b *Bench) IterScalar() {
	lane.RunScalar(b.scratch[:], func(x *int32) { *x = Iterative(*x) })
}

// IterSPMD applies Iterative in place as one lane dispatch.
func (b *Bench) IterSPMD() {
	lane.RunVector(b.engine, b.scratch[:], func(x *int32) { *x = Iterative(*x) })
}

// RecScalar applies Recursive in place with a sequential loop.
func (b *Bench) RecScalar() {
	lane.RunScalar(b.scratch[:], func(x *int32) { *x = Recursive(*x) })
}

// RecSPMD applies Recursive in place as one lane dispatch.
func (b *Bench) RecSPMD() {
	lane.RunVector(b.engine, b.scratch[:], func(x *int32) { *x = Recursive(*x) })
}
