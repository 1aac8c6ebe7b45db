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

package lane

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/lanebench/lane/workerpool"
)

// Engine names accepted by NewEngine.
const (
	EngineSequential = "sequential"
	EngineParallel   = "parallel"
)

// Engine executes lock-step dispatches of one lane group.
//
// Dispatch runs kernel(base+lane) for every lane in [0, Width) and returns
// only after every lane finished. Lanes may run in any order or at the same
// time; a kernel must not rely on observing another lane's writes from the
// same dispatch.
type Engine interface {
	// Name returns the configuration name of the engine.
	Name() string

	// Dispatch runs one lane group starting at index base.
	Dispatch(base int, kernel func(i int))

	// Close releases resources held by the engine. The engine keeps
	// working after Close, falling back to sequential execution.
	Close() error
}

// Sequential is the portable engine: every dispatch is a plain loop over the
// lanes in order. It is the reference every other engine must match.
type Sequential struct{}

// Name returns "sequential".
func (Sequential) Name() string { return EngineSequential }

// Dispatch runs the lanes of one group in lane order.
func (Sequential) Dispatch(base int, kernel func(i int)) {
	for lane := range Width {
		kernel(base + lane)
	}
}

// Close is a no-op.
func (Sequential) Close() error { return nil }

// Parallel spreads the lanes of each dispatch over a persistent worker pool.
// Each worker owns a disjoint, contiguous range of lanes, so two workers
// never write the same element through the lane index they were handed.
type Parallel struct {
	pool *workerpool.Pool
}

// NewParallel creates a Parallel engine backed by workers goroutines.
// If workers <= 0, uses GOMAXPROCS. More than Width workers are never busy.
func NewParallel(workers int) *Parallel {
	return &Parallel{pool: workerpool.New(workers)}
}

// Name returns "parallel".
func (p *Parallel) Name() string { return EngineParallel }

// Workers returns the number of pool workers.
func (p *Parallel) Workers() int { return p.pool.NumWorkers() }

// Dispatch runs the lanes of one group on the pool and waits for all of them.
func (p *Parallel) Dispatch(base int, kernel func(i int)) {
	p.pool.ParallelFor(Width, func(start, end int) {
		for lane := start; lane < end; lane++ {
			kernel(base + lane)
		}
	})
}

// Close shuts down the worker pool.
func (p *Parallel) Close() error {
	p.pool.Close()
	return nil
}

// NewEngine returns the engine registered under name. workers only applies
// to the parallel engine.
func NewEngine(name string, workers int) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineSequential:
		return Sequential{}, nil
	case EngineParallel:
		return NewParallel(workers), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// EngineFromEnv builds the engine named by LANEBENCH_ENGINE, sized by
// LANEBENCH_WORKERS. An unset LANEBENCH_ENGINE selects Sequential.
func EngineFromEnv() (Engine, error) {
	workers := 0
	if val := os.Getenv("LANEBENCH_WORKERS"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("lane: invalid LANEBENCH_WORKERS %q: %w", val, err)
		}
		workers = n
	}
	return NewEngine(os.Getenv("LANEBENCH_ENGINE"), workers)
}

// Engines lists the accepted engine names.
func Engines() []string {
	return []string{EngineSequential, EngineParallel}
}
