// Package wide provides fixed 16-lane value types for hand-vectorized
// kernels.
//
// F32x16 and I32x16 are plain arrays with one element per lane, and every
// operation is a simple loop over the array so the Go compiler can keep the
// values in registers. Mask16 carries one bit per lane and drives
// conditional updates the way hardware vector masks do:
//
//	active := wide.AllLanes
//	for active.Any() {
//	    active = active.And(x.Mul(x).LessThan(limit))
//	    count = count.AddMasked(active, 1)
//	}
//
// The lane count matches lane.Width.
package wide
