// Package seed generates the deterministic input data every benchmark
// context is initialized from.
//
// The generator is Marsaglia's xorshift128. Every run of every variant
// starts from identical state.
package seed

import "errors"

// ErrZeroSeed is returned for the all-zero seed, which xorshift cannot leave.
var ErrZeroSeed = errors.New("seed: xorshift seed must not be all zero")

// XorShift is a xorshift128 generator. It is not safe for concurrent use.
type XorShift struct {
	x, y, z, w uint32
}

// NewXorShift returns a generator for the given seed.
func NewXorShift(seed [4]uint32) (*XorShift, error) {
	if seed == [4]uint32{} {
		return nil, ErrZeroSeed
	}
	return &XorShift{x: seed[0], y: seed[1], z: seed[2], w: seed[3]}, nil
}

// MustXorShift is like NewXorShift but panics on the all-zero seed.
// It is meant for package-level seed constants.
func MustXorShift(seed [4]uint32) *XorShift {
	r, err := NewXorShift(seed)
	if err != nil {
		panic(err)
	}
	return r
}

// Uint32 returns the next 32 random bits.
func (r *XorShift) Uint32() uint32 {
	t := r.x ^ (r.x << 11)
	r.x, r.y, r.z = r.y, r.z, r.w
	r.w = r.w ^ (r.w >> 19) ^ (t ^ (t >> 8))
	return r.w
}

// Float32 returns a value in [0, 1) built from the top 24 bits of Uint32.
func (r *XorShift) Float32() float32 {
	const scale = 1 << 24
	return float32(r.Uint32()>>8) / scale
}

// Range returns a value in [lo, hi).
func (r *XorShift) Range(lo, hi float32) float32 {
	return lo + (hi-lo)*r.Float32()
}

// Samples returns n values drawn uniformly from [lo, hi).
func Samples(seed [4]uint32, n int, lo, hi float32) []float32 {
	r := MustXorShift(seed)
	out := make([]float32, n)
	for i := range out {
		out[i] = r.Range(lo, hi)
	}
	return out
}
