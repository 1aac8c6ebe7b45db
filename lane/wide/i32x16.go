package wide

// I32x16 represents 16 int32 lanes.
type I32x16 [Lanes]int32

// SplatI32 creates I32x16 with all lanes set to n.
func SplatI32(n int32) I32x16 {
	var result I32x16
	for i := range result {
		result[i] = n
	}
	return result
}

// AddMasked adds n to the lanes selected by m and leaves the others.
func (v I32x16) AddMasked(m Mask16, n int32) I32x16 {
	result := v
	for i := range v {
		if m.Get(i) {
			result[i] += n
		}
	}
	return result
}

// LessThan returns a mask of the lanes where v[i] < n.
func (v I32x16) LessThan(n int32) Mask16 {
	var m Mask16
	for i := range v {
		if v[i] < n {
			m |= 1 << i
		}
	}
	return m
}
