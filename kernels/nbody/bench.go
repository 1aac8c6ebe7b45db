package nbody

import (
	"github.com/ajroetker/lanebench/internal/seed"
	"github.com/ajroetker/lanebench/lane"
)

const (
	// Bodies is the number of bodies in the benchmark simulation.
	Bodies = 32

	// Ticks is the number of ticks one benchmark run simulates.
	Ticks = 10

	// initialVelocity scales the random initial velocities.
	initialVelocity float32 = 8
)

// Seed is the xorshift seed of the benchmark bodies.
var Seed = [4]uint32{0, 1, 2, 3}

// GenerateBodies returns n bodies drawn from seed. Positions spread over a
// 40000 x 20000 x 50000 box; the primary velocity drifts along +Z.
func GenerateBodies(seedState [4]uint32, n int) []Body {
	r := seed.MustXorShift(seedState)
	bodies := make([]Body, n)
	for i := range bodies {
		bodies[i].Position = Vector3{
			X: r.Float32() * 40_000,
			Y: r.Float32() * 20_000,
			Z: (r.Float32() - 0.25) * 50_000,
		}
		bodies[i].Velocity = Vector3{
			X: (r.Float32() - 0.5) * initialVelocity,
			Y: (r.Float32() - 0.5) * initialVelocity,
			Z: r.Float32()*initialVelocity + 10,
		}
		bodies[i].Velocity2 = Vector3{
			X: (r.Float32() - 0.5) * initialVelocity,
			Y: (r.Float32() - 0.5) * initialVelocity,
			Z: r.Float32() * initialVelocity,
		}
	}
	return bodies
}

// Bench owns the simulation state of one N-body benchmark run.
type Bench struct {
	engine  lane.Engine
	initial []Body
	sim     *Simulation
}

// NewBench returns a Bench over Bodies bodies generated from Seed.
func NewBench(e lane.Engine) *Bench {
	return NewBenchWith(e, GenerateBodies(Seed, Bodies))
}

// NewBenchWith returns a Bench starting from a copy of initial.
func NewBenchWith(e lane.Engine, initial []Body) *Bench {
	initial = append([]Body(nil), initial...)
	return &Bench{
		engine:  e,
		initial: initial,
		sim:     NewSimulation(initial),
	}
}

// Reset rewinds the simulation to the initial bodies at tick 0.
func (b *Bench) Reset() {
	b.sim.Reset(b.initial)
}

// Simulation returns the simulation driven by the entry points.
func (b *Bench) Simulation() *Simulation {
	return b.sim
}

// Scalar runs Ticks sequential ticks.
func (b *Bench) Scalar() {
	for range Ticks {
		b.sim.TickSeq()
	}
}

// SPMD runs Ticks lane-parallel ticks.
func (b *Bench) SPMD() {
	for range Ticks {
		b.sim.TickPar(b.engine)
	}
}
