package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/lanebench/bench"
	"github.com/ajroetker/lanebench/lane"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LANEBENCH_ENGINE", "")
	t.Setenv("LANEBENCH_WORKERS", "")
	t.Cleanup(func() { bench.SetLogger(nil) })

	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "mandelbrot")
	assert.Contains(t, out, "scalar,spmd,intrin")
	assert.Contains(t, out, "fwt_nodivmod")
}

func TestRunWritesResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	out, err := execute(t, "run", "--bench", "fib_iter,fwt", "--runs", "2", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SPMD/SCALAR")
	assert.Contains(t, out, "fib_iter")

	results, err := bench.LoadResults(path)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, 2, r.Runs)
		assert.Equal(t, lane.EngineSequential, r.Engine)
	}

	out, err = execute(t, "report", path)
	require.NoError(t, err)
	assert.Contains(t, out, "fwt")
}

func TestRunCompressedResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json"+bench.CompressedSuffix)
	_, err := execute(t, "run", "--bench", "fib_rec", "--runs", "1", "--out", path)
	require.NoError(t, err)

	out, err := execute(t, "report", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "fib_rec")
}

func TestRunToStdout(t *testing.T) {
	out, err := execute(t, "run", "-b", "mandelbrot", "-v", "intrin", "-n", "1", "-o", "-")
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewBufferString(out))
	var results []bench.Result
	require.NoError(t, dec.Decode(&results))
	require.Len(t, results, 1)
	assert.Equal(t, bench.VariantIntrin, results[0].Variant)
}

func TestRunSuite(t *testing.T) {
	dir := t.TempDir()
	suite := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(suite, []byte(`
runs: 1
engine: parallel
workers: 2
benchmarks:
  - name: nbody
    variants: [spmd]
`), 0o644))

	path := filepath.Join(dir, "results.json")
	_, err := execute(t, "run", "--suite", suite, "--out", path)
	require.NoError(t, err)
	results, err := bench.LoadResults(path)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "nbody", results[0].Bench)
	assert.Equal(t, lane.EngineParallel, results[0].Engine)
	assert.Equal(t, 1, results[0].Runs)

	// Explicit flags win over the suite.
	_, err = execute(t, "run", "--suite", suite, "--engine", "sequential", "--runs", "2", "--out", path)
	require.NoError(t, err)
	results, err = bench.LoadResults(path)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, lane.EngineSequential, results[0].Engine)
	assert.Equal(t, 2, results[0].Runs)
}

func TestVerify(t *testing.T) {
	out, err := execute(t, "verify", "--engine", "parallel", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "mandelbrot")
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "MISMATCH")
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", "--engine", "parallel", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, lane.CurrentName())
	assert.Regexp(t, `workers\s+3`, out)
	assert.Regexp(t, `lane width\s+16`, out)
}

func TestEngineFromEnvironment(t *testing.T) {
	t.Setenv("LANEBENCH_ENGINE", "parallel")
	t.Setenv("LANEBENCH_WORKERS", "2")

	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs([]string{"info"})
	require.NoError(t, root.ExecuteContext(t.Context()))
	assert.Regexp(t, `engine\s+parallel`, stdout.String())
	assert.Regexp(t, `workers\s+2`, stdout.String())
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "run", "--bench", "hash", "--out", "-")
	assert.ErrorIs(t, err, bench.ErrUnknownBenchmark)

	_, err = execute(t, "verify", "--variant", "threads")
	assert.ErrorIs(t, err, bench.ErrUnknownVariant)

	_, err = execute(t, "info", "--engine", "gpu")
	assert.ErrorIs(t, err, lane.ErrUnknownEngine)

	_, err = execute(t, "list", "--log-level", "loud")
	assert.Error(t, err)

	_, err = execute(t, "report", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
