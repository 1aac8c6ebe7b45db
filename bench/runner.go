package bench

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/ajroetker/lanebench/lane"
)

// DefaultRuns is the number of timed runs per entry.
const DefaultRuns = 3

// Result holds the timings of one entry.
type Result struct {
	Bench   string  `json:"bench"`
	Variant string  `json:"variant"`
	Engine  string  `json:"engine"`
	Nanos   []int64 `json:"nanos"`
	Runs    int     `json:"runs"`
}

// Median returns the median run time.
func (r Result) Median() time.Duration {
	return time.Duration(median(r.Nanos))
}

// Runner times registered entry points.
type Runner struct {
	runs   int
	engine lane.Engine
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithRuns sets the number of timed runs per entry. Values below 1 keep
// DefaultRuns.
func WithRuns(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.runs = n
		}
	}
}

// WithEngine sets the engine lane variants dispatch through.
//
// If nil is passed, lane.Sequential is used.
func WithEngine(e lane.Engine) Option {
	return func(r *Runner) {
		if e == nil {
			e = lane.Sequential{}
		}
		r.engine = e
	}
}

// WithLogger sets the logger. If nil, the package logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner. The runner does not own the engine; the
// caller closes it.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		runs:   DefaultRuns,
		engine: lane.Sequential{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = Logger()
	}
	return r
}

// Runs returns the number of timed runs per entry.
func (r *Runner) Runs() int { return r.runs }

// Engine returns the engine lane variants dispatch through.
func (r *Runner) Engine() lane.Engine { return r.engine }

// Run times every entry in order. The context is checked between runs only;
// a run that started always completes.
func (r *Runner) Run(ctx context.Context, entries []Entry) ([]Result, error) {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		res, err := r.RunEntry(ctx, entry)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunEntry times one entry. Each run resets the context outside the timed
// region.
func (r *Runner) RunEntry(ctx context.Context, entry Entry) (Result, error) {
	res := Result{
		Bench:   entry.Bench,
		Variant: entry.Variant,
		Engine:  r.engine.Name(),
		Nanos:   make([]int64, 0, r.runs),
	}

	inst := entry.New(r.engine)
	for run := range r.runs {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("bench: %s: %w", entry.Name(), err)
		}

		inst.Reset()
		start := time.Now()
		inst.Run()
		elapsed := time.Since(start)
		runtime.KeepAlive(inst)

		res.Nanos = append(res.Nanos, elapsed.Nanoseconds())
		r.logger.Debug("run", "bench", entry.Bench, "variant", entry.Variant, "run", run, "elapsed", elapsed)
	}
	res.Runs = len(res.Nanos)

	r.logger.Info("benchmark",
		"bench", entry.Bench,
		"variant", entry.Variant,
		"engine", res.Engine,
		"runs", res.Runs,
		"median", res.Median(),
	)
	return res, nil
}
