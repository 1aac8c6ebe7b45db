package bench

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/lanebench/kernels/nbody"
	"github.com/ajroetker/lanebench/lane"
)

func TestBenchmarks(t *testing.T) {
	assert.Equal(t,
		[]string{"fib_iter", "fib_rec", "fwt", "fwt_nodivmod", "nbody", "mandelbrot"},
		Benchmarks())
	assert.Equal(t, []string{VariantScalar, VariantSPMD}, Variants("nbody"))
	assert.Equal(t, []string{VariantScalar, VariantSPMD, VariantIntrin}, Variants("mandelbrot"))
	assert.Empty(t, Variants("hash"))
}

func TestLookup(t *testing.T) {
	e, err := Lookup("fwt_nodivmod", VariantSPMD)
	require.NoError(t, err)
	assert.Equal(t, "fwt_nodivmod/spmd", e.Name())

	_, err = Lookup("hash", VariantScalar)
	assert.ErrorIs(t, err, ErrUnknownBenchmark)

	_, err = Lookup("fib_rec", VariantIntrin)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestSelect(t *testing.T) {
	all, err := Select(nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(Entries()))

	intrin, err := Select(nil, []string{VariantIntrin})
	require.NoError(t, err)
	require.Len(t, intrin, 1)
	assert.Equal(t, "mandelbrot/intrin", intrin[0].Name())

	fib, err := Select([]string{"fib_iter", "fib_rec"}, []string{VariantSPMD})
	require.NoError(t, err)
	assert.Equal(t, []string{"fib_iter/spmd", "fib_rec/spmd"}, names(fib))

	_, err = Select([]string{"nope"}, nil)
	assert.ErrorIs(t, err, ErrUnknownBenchmark)
	_, err = Select(nil, []string{"threads"})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestEntriesResetRestoresSeed(t *testing.T) {
	for _, entry := range Entries() {
		t.Run(entry.Name(), func(t *testing.T) {
			inst := entry.New(lane.Sequential{})
			inst.Reset()
			seed := snapshot(inst.State())

			inst.Run()
			first := snapshot(inst.State())
			assert.NotEqual(t, seed, first, "entry point did not change its state")

			inst.Reset()
			assert.Equal(t, seed, snapshot(inst.State()))
			inst.Run()
			assert.Equal(t, first, snapshot(inst.State()), "runs are not repeatable")
		})
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

// snapshot copies a state buffer, which aliases the context's memory.
func snapshot(state any) any {
	switch s := state.(type) {
	case []int32:
		return slices.Clone(s)
	case []float32:
		return slices.Clone(s)
	case []uint32:
		return slices.Clone(s)
	case []nbody.Body:
		return slices.Clone(s)
	default:
		panic(fmt.Sprintf("unexpected state type %T", state))
	}
}
