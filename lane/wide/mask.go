package wide

import "math/bits"

// Mask16 holds one bit per lane; bit i is set if lane i is active.
type Mask16 uint16

// AllLanes has every lane active.
const AllLanes Mask16 = 0xffff

// Get returns whether lane i is active.
func (m Mask16) Get(i int) bool {
	return m&(1<<i) != 0
}

// And returns the lanes active in both masks.
func (m Mask16) And(other Mask16) Mask16 {
	return m & other
}

// Not returns the inactive lanes.
func (m Mask16) Not() Mask16 {
	return ^m
}

// Any reports whether at least one lane is active.
func (m Mask16) Any() bool {
	return m != 0
}

// Count returns the number of active lanes.
func (m Mask16) Count() int {
	return bits.OnesCount16(uint16(m))
}
