package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/lanebench/lane"
)

func TestVerifyRegistry(t *testing.T) {
	par := lane.NewParallel(4)
	defer par.Close()

	for _, e := range []lane.Engine{lane.Sequential{}, par} {
		t.Run(e.Name(), func(t *testing.T) {
			checks, err := Verify(context.Background(), e, Entries())
			require.NoError(t, err)
			// Every spmd entry plus mandelbrot/intrin.
			assert.Len(t, checks, len(Benchmarks())+1)
			for _, c := range checks {
				assert.NoError(t, c.Err, "%s/%s", c.Bench, c.Variant)
				assert.NotEqual(t, VariantScalar, c.Variant)
			}
		})
	}
}

func TestVerifyReportsMismatch(t *testing.T) {
	broken := Entry{Bench: "fib_iter", Variant: "broken", New: func(lane.Engine) Instance {
		values := make([]int32, lane.Width)
		return instance{
			reset: func() { clear(values) },
			run:   func() { values[3] = 42 },
			state: func() any { return values },
		}
	}}
	good, err := Lookup("fib_rec", VariantSPMD)
	require.NoError(t, err)

	checks, err := Verify(context.Background(), lane.Sequential{}, []Entry{broken, good})
	require.Error(t, err)
	require.Len(t, checks, 2)

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.ErrorIs(t, err, ErrMismatch)
	assert.Equal(t, "fib_iter", mismatch.Bench)
	assert.Equal(t, "broken", mismatch.Variant)
	assert.Equal(t, lane.EngineSequential, mismatch.Engine)
	assert.NotEmpty(t, mismatch.Diff)

	assert.Error(t, checks[0].Err)
	assert.NoError(t, checks[1].Err)
}

func TestVerifyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Verify(ctx, lane.Sequential{}, Entries())
	assert.ErrorIs(t, err, context.Canceled)
}
