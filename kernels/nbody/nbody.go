// Package nbody implements the N-body flocking benchmark.
//
// A Simulation holds two generations of bodies. Each tick reads one
// generation in full and writes the other: even ticks read A and write B,
// odd ticks read B and write A. The velocity update of a body is a pure
// function of the tick and the whole read generation, so the bodies of a
// tick can be updated on independent lanes.
//
// Every body carries two velocity fields. The primary one is pulled toward a
// moving center and attracted to neighbors; the secondary one skips the
// pull, is repelled instead of attracted, and aligns with the neighbor's own
// velocity instead of the neighbor's secondary velocity. The asymmetry and
// the order of the force rules are part of the benchmark and must stay as
// they are: the system is chaotic and reordering changes the trajectories.
package nbody

import (
	"github.com/ajroetker/lanebench/approx"
	"github.com/ajroetker/lanebench/lane"
)

// Body is one simulated particle.
type Body struct {
	Position  Vector3
	Velocity  Vector3
	Velocity2 Vector3
}

// Force rule constants.
const (
	maxDistance  float32 = 3400
	pullStrength float32 = 0.042

	zone    float32 = 400
	repel   float32 = 100
	align   float32 = 300
	attract float32 = 100

	zoneSqrd = 3 * (zone * zone)

	// Ticks before which the pull toward the center is a small constant.
	warmupTicks = 200
	// Tick at which the speed limit switches from velocity to acceleration.
	settleTicks = 500
)

// Center returns the point bodies are pulled toward at the given tick.
func Center(tick int) Vector3 {
	t := float32(tick)
	return Vector3{
		X: approx.Cos(t/22) * -4200,
		Y: approx.Sin(t/14) * 9200,
		Z: approx.Sin(t/27) * 6000,
	}
}

// NextVelocity returns the primary and secondary velocity of prev after the
// given tick, computed against every body of the read generation.
func NextVelocity(tick int, prev *Body, bodies []Body) (Vector3, Vector3) {
	t := float32(tick)
	center := Center(tick)

	var speedLimit, attractPower float32
	if t < settleTicks {
		speedLimit = 2000
		attractPower = 100.9
	} else {
		speedLimit = 0.2
		attractPower = 20.9
	}

	var acc, acc2 Vector3

	// Pull toward the center.
	dirToCenter := center.Sub(prev.Position)
	distToCenter := dirToCenter.Magnitude()
	if distToCenter > maxDistance {
		velc := float32(0.2)
		if t >= warmupTicks {
			velc = (distToCenter - maxDistance) * pullStrength
		}
		acc = acc.Add(dirToCenter.Div(distToCenter).Scale(velc))
	}

	var diff, diff2 Vector3
	for i := range bodies {
		body := &bodies[i]
		r := body.Position.Sub(prev.Position)

		// Exact coordinate equality identifies the body itself.
		if r == (Vector3{}) {
			continue
		}

		distSqrd := r.Magnitude2()
		if distSqrd >= zoneSqrd {
			continue
		}

		length := approx.Sqrt(distSqrd)
		percent := distSqrd / zoneSqrd

		if distSqrd < repel {
			f := (repel/percent - 1) * 0.025
			normal := r.Div(length).Scale(f)
			diff = diff.Add(normal)
			diff2 = diff2.Add(normal)
		} else if distSqrd < align {
			threshDelta := align - repel
			adjustedPercent := (percent - repel) / threshDelta
			q := (0.5 - approx.Cos(adjustedPercent*approx.Pi*2)*0.5 + 0.5) * 100.9

			vel2 := body.Velocity2.Div(body.Velocity2.Magnitude()).Scale(q)
			vel := prev.Velocity.Div(prev.Velocity.Magnitude()).Scale(q)

			diff = diff.Add(vel2)
			diff2 = diff2.Add(vel)
		}

		if distSqrd > attract {
			threshDelta2 := 1 - attract
			adjustedPercent2 := (percent - attract) / threshDelta2
			c := (1 - (approx.Cos(adjustedPercent2*approx.Pi*2)*0.5 + 0.5)) * attractPower

			d := r.Div(length).Scale(c)
			diff = diff.Add(d)
			diff2 = diff2.Sub(d)
		}
	}

	acc = acc.Add(diff)
	acc2 = acc2.Add(diff2)

	// Speed limits.
	if t > settleTicks {
		if acc.Magnitude2() > speedLimit {
			acc = acc.Scale(0.015)
		}
		if acc2.Magnitude2() > speedLimit {
			acc2 = acc2.Scale(0.015)
		}
	}

	next := prev.Velocity.Add(acc)
	next2 := prev.Velocity2.Add(acc2)

	if t < settleTicks {
		if next2.Magnitude2() > speedLimit {
			next2 = next2.Scale(0.15)
		}
		if next.Magnitude2() > speedLimit {
			next = next.Scale(0.15)
		}
	}

	return next, next2
}

// advance writes the state of prev after tick into out.
func advance(tick int, out, prev *Body, read []Body) {
	vel, vel2 := NextVelocity(tick, prev, read)
	out.Velocity = vel
	out.Velocity2 = vel2
	out.Position = prev.Position.Add(vel.Sub(vel2))
}

// Simulation is a double-buffered body array and its tick counter.
type Simulation struct {
	time   int
	bodies [2][]Body
}

// NewSimulation returns a simulation at tick 0 whose generations both hold
// a copy of initial.
func NewSimulation(initial []Body) *Simulation {
	s := &Simulation{
		bodies: [2][]Body{
			make([]Body, len(initial)),
			make([]Body, len(initial)),
		},
	}
	s.Reset(initial)
	return s
}

// Reset rewinds the clock to 0 and copies initial into both generations.
// len(initial) must match the simulation size.
func (s *Simulation) Reset(initial []Body) {
	s.time = 0
	copy(s.bodies[0], initial)
	copy(s.bodies[1], initial)
}

// Time returns the number of completed ticks.
func (s *Simulation) Time() int {
	return s.time
}

// Current returns the generation the next tick will read, which is the one
// the last tick wrote.
func (s *Simulation) Current() []Body {
	return s.bodies[s.time&1]
}

// Generation returns generation 0 (A) or 1 (B).
func (s *Simulation) Generation(i int) []Body {
	return s.bodies[i]
}

// generations returns the generation read and the one written by the next
// tick.
func (s *Simulation) generations() (read, write []Body) {
	if s.time&1 == 0 {
		return s.bodies[0], s.bodies[1]
	}
	return s.bodies[1], s.bodies[0]
}

// TickSeq advances the simulation one tick with a sequential loop.
func (s *Simulation) TickSeq() {
	read, write := s.generations()
	tick := s.time
	for i := range write {
		advance(tick, &write[i], &read[i], read)
	}
	s.time++
}

// TickPar advances the simulation one tick with lane.Zip2 over the write
// and read generations. The number of bodies must be a multiple of
// lane.Width.
func (s *Simulation) TickPar(e lane.Engine) {
	read, write := s.generations()
	tick := s.time
	lane.Zip2(e, write, read, func(out, prev *Body) {
		advance(tick, out, prev, read)
	})
	s.time++
}
