package fwt

import (
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/lanebench/lane"
)

func engines(t *testing.T) []lane.Engine {
	t.Helper()
	par := lane.NewParallel(4)
	t.Cleanup(func() { _ = par.Close() })
	return []lane.Engine{lane.Sequential{}, par}
}

// naiveWHT computes the Walsh-Hadamard transform in natural order directly
// from its definition.
func naiveWHT(xs []float32) []float32 {
	out := make([]float32, len(xs))
	for i := range xs {
		var sum float32
		for j, x := range xs {
			if bits.OnesCount(uint(i&j))%2 == 0 {
				sum += x
			} else {
				sum -= x
			}
		}
		out[i] = sum
	}
	return out
}

func ramp(n int) []float32 {
	xs := make([]float32, n)
	for i := range xs {
		xs[i] = float32((i*7)%13) - 6
	}
	return xs
}

func TestTransformMatchesDefinition(t *testing.T) {
	for _, n := range []int{2, 4, 8, 32, 64} {
		xs := ramp(n)
		want := naiveWHT(xs)

		got := append([]float32(nil), xs...)
		Transform(got)
		assert.Equal(t, want, got, "Transform, n=%d", n)

		got = append([]float32(nil), xs...)
		TransformMask(got)
		assert.Equal(t, want, got, "TransformMask, n=%d", n)
	}
}

func TestTransformSmall(t *testing.T) {
	xs := []float32{1, 0, 0, 0}
	Transform(xs)
	assert.Equal(t, []float32{1, 1, 1, 1}, xs)

	xs = []float32{1, 1, 1, 1}
	Transform(xs)
	assert.Equal(t, []float32{4, 0, 0, 0}, xs)
}

func TestSelfInverse(t *testing.T) {
	b := NewBench(lane.Sequential{})
	original := append([]float32(nil), b.Samples()...)

	b.Scalar()
	b.Scalar()
	for i := range b.samples {
		b.samples[i] /= Length
	}

	if diff := cmp.Diff(original, b.Samples(), cmpopts.EquateApprox(1e-5, 1e-3)); diff != "" {
		t.Errorf("double transform / len mismatch (-want +got):\n%s", diff)
	}
}

func TestVariantsAgree(t *testing.T) {
	ref := NewBench(lane.Sequential{})
	ref.Scalar()
	want := ref.Samples()

	for _, e := range engines(t) {
		b := NewBench(e)
		variants := map[string]func(){
			"scalar":        b.Scalar,
			"spmd":          b.SPMD,
			"nodivmod":      b.MaskScalar,
			"nodivmod_spmd": b.MaskSPMD,
		}
		for name, run := range variants {
			t.Run(e.Name()+"/"+name, func(t *testing.T) {
				b.Reset()
				run()
				// Every variant performs the same float operations per
				// element, so the results are bit-identical.
				if diff := cmp.Diff(want, b.Samples()); diff != "" {
					t.Errorf("%s differs from scalar (-want +got):\n%s", name, diff)
				}
				if diff := cmp.Diff(want, b.Samples(), cmpopts.EquateApprox(1e-5, 0)); diff != "" {
					t.Errorf("%s outside relative tolerance:\n%s", name, diff)
				}
			})
		}
	}
}

func TestEachIndexPairedOncePerPass(t *testing.T) {
	const n = 64
	stepLog2 := 0
	for step := 1; step < n; step <<= 1 {
		var seenDivMod, seenMask [n]int
		for tid := range n / 2 {
			group := tid % step
			pair := 2*step*(tid/step) + group
			seenDivMod[pair]++
			seenDivMod[pair+step]++

			group = tid & (step - 1)
			pair = 2*step*(tid>>stepLog2) + group
			seenMask[pair]++
			seenMask[pair+step]++
		}
		for i := range n {
			require.Equal(t, 1, seenDivMod[i], "step %d index %d (div/mod)", step, i)
			require.Equal(t, 1, seenMask[i], "step %d index %d (mask)", step, i)
		}
		stepLog2++
	}
}

func TestResetRestoresSeed(t *testing.T) {
	b := NewBench(lane.Sequential{})
	before := append([]float32(nil), b.Samples()...)
	b.Scalar()
	require.NotEqual(t, before, b.Samples())
	b.Reset()
	assert.Equal(t, before, b.Samples())
	assert.Len(t, before, Length)
}

func TestMisalignedLanePanics(t *testing.T) {
	// 16 samples give 8 pairs per pass, less than one lane group.
	b := NewBenchWith(lane.Sequential{}, ramp(16))
	assert.Panics(t, b.SPMD)
	assert.NotPanics(t, b.Scalar)
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(Length))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(48))
}

func BenchmarkFWT(b *testing.B) {
	par := lane.NewParallel(0)
	defer par.Close()

	for _, e := range []lane.Engine{lane.Sequential{}, par} {
		bench := NewBench(e)
		variants := []struct {
			name string
			run  func()
		}{
			{"scalar", bench.Scalar},
			{"spmd", bench.SPMD},
			{"nodivmod_scalar", bench.MaskScalar},
			{"nodivmod_spmd", bench.MaskSPMD},
		}
		for _, v := range variants {
			b.Run(e.Name()+"/"+v.name, func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					bench.Reset()
					v.run()
				}
			})
		}
	}
}
