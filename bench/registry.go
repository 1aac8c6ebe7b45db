// Package bench is the harness around the lane kernels: a registry of
// (benchmark, variant) entry points, a runner that times them, the speedup
// report, a verifier comparing every lane variant with its scalar
// reference, and YAML suite files.
package bench

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/lanebench/kernels/fib"
	"github.com/ajroetker/lanebench/kernels/fwt"
	"github.com/ajroetker/lanebench/kernels/mandelbrot"
	"github.com/ajroetker/lanebench/kernels/nbody"
	"github.com/ajroetker/lanebench/lane"
)

// Variant names.
const (
	VariantScalar = "scalar"
	VariantSPMD   = "spmd"
	VariantIntrin = "intrin"
)

// Instance is one benchmark context bound to a single variant.
type Instance interface {
	// Reset restores the seed data. It is not timed.
	Reset()

	// Run executes the entry point once.
	Run()

	// State returns the buffer the entry point writes, for verification.
	State() any
}

// Entry is a registered entry point.
type Entry struct {
	Bench   string
	Variant string

	// New builds a fresh context dispatching through e.
	New func(e lane.Engine) Instance
}

// Name returns "bench/variant".
func (e Entry) Name() string {
	return e.Bench + "/" + e.Variant
}

// instance adapts a kernel Bench to Instance.
type instance struct {
	reset func()
	run   func()
	state func() any
}

func (i instance) Reset()     { i.reset() }
func (i instance) Run()       { i.run() }
func (i instance) State() any { return i.state() }

func fibEntry(name, variant string, pick func(b *fib.Bench) func()) Entry {
	return Entry{Bench: name, Variant: variant, New: func(e lane.Engine) Instance {
		b := fib.NewBench(e)
		return instance{reset: b.Reset, run: pick(b), state: func() any { return b.Values() }}
	}}
}

func fwtEntry(name, variant string, pick func(b *fwt.Bench) func()) Entry {
	return Entry{Bench: name, Variant: variant, New: func(e lane.Engine) Instance {
		b := fwt.NewBench(e)
		return instance{reset: b.Reset, run: pick(b), state: func() any { return b.Samples() }}
	}}
}

func nbodyEntry(variant string, pick func(b *nbody.Bench) func()) Entry {
	return Entry{Bench: "nbody", Variant: variant, New: func(e lane.Engine) Instance {
		b := nbody.NewBench(e)
		return instance{reset: b.Reset, run: pick(b), state: func() any { return b.Simulation().Current() }}
	}}
}

func mandelbrotEntry(variant string, pick func(b *mandelbrot.Bench) func()) Entry {
	return Entry{Bench: "mandelbrot", Variant: variant, New: func(e lane.Engine) Instance {
		b := mandelbrot.NewBench(e)
		return instance{reset: b.Reset, run: pick(b), state: func() any { return b.Frame() }}
	}}
}

// registry lists every entry point in report order.
var registry = []Entry{
	fibEntry("fib_iter", VariantScalar, func(b *fib.Bench) func() { return b.IterScalar }),
	fibEntry("fib_iter", VariantSPMD, func(b *fib.Bench) func() { return b.IterSPMD }),
	fibEntry("fib_rec", VariantScalar, func(b *fib.Bench) func() { return b.RecScalar }),
	fibEntry("fib_rec", VariantSPMD, func(b *fib.Bench) func() { return b.RecSPMD }),
	fwtEntry("fwt", VariantScalar, func(b *fwt.Bench) func() { return b.Scalar }),
	fwtEntry("fwt", VariantSPMD, func(b *fwt.Bench) func() { return b.SPMD }),
	fwtEntry("fwt_nodivmod", VariantScalar, func(b *fwt.Bench) func() { return b.MaskScalar }),
	fwtEntry("fwt_nodivmod", VariantSPMD, func(b *fwt.Bench) func() { return b.MaskSPMD }),
	nbodyEntry(VariantScalar, func(b *nbody.Bench) func() { return b.Scalar }),
	nbodyEntry(VariantSPMD, func(b *nbody.Bench) func() { return b.SPMD }),
	mandelbrotEntry(VariantScalar, func(b *mandelbrot.Bench) func() { return b.Scalar }),
	mandelbrotEntry(VariantSPMD, func(b *mandelbrot.Bench) func() { return b.SPMD }),
	mandelbrotEntry(VariantIntrin, func(b *mandelbrot.Bench) func() { return b.Intrin }),
}

// Entries returns every registered entry point.
func Entries() []Entry {
	return slices.Clone(registry)
}

// Benchmarks returns the registered benchmark names in registration order.
func Benchmarks() []string {
	return lo.Uniq(lo.Map(registry, func(e Entry, _ int) string { return e.Bench }))
}

// Variants returns the variants registered for bench.
func Variants(bench string) []string {
	var variants []string
	for _, e := range registry {
		if e.Bench == bench {
			variants = append(variants, e.Variant)
		}
	}
	return variants
}

// Lookup returns the entry registered under bench and variant.
func Lookup(bench, variant string) (Entry, error) {
	variants := Variants(bench)
	if len(variants) == 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownBenchmark, bench)
	}
	for _, e := range registry {
		if e.Bench == bench && e.Variant == variant {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q for %s (have %v)", ErrUnknownVariant, variant, bench, variants)
}

// Select returns the entries matching benches and variants. An empty filter
// matches everything. A variant filter is applied only to benchmarks that
// have the variant, so "intrin" selects mandelbrot/intrin without failing
// on the other benchmarks; a variant no benchmark has is an error.
func Select(benches, variants []string) ([]Entry, error) {
	for _, b := range benches {
		if len(Variants(b)) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBenchmark, b)
		}
	}
	for _, v := range variants {
		if !slices.ContainsFunc(registry, func(e Entry) bool { return e.Variant == v }) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
		}
	}

	var out []Entry
	for _, e := range registry {
		if len(benches) > 0 && !slices.Contains(benches, e.Bench) {
			continue
		}
		if len(variants) > 0 && !slices.Contains(variants, e.Variant) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
