package wide

// Lanes is the number of lanes in every wide type.
const Lanes = 16

// F32x16 represents 16 float32 lanes.
type F32x16 [Lanes]float32

// SplatF32 creates F32x16 with all lanes set to n.
func SplatF32(n float32) F32x16 {
	var result F32x16
	for i := range result {
		result[i] = n
	}
	return result
}

// IotaF32 returns {0, 1, ..., 15}.
func IotaF32() F32x16 {
	var result F32x16
	for i := range result {
		result[i] = float32(i)
	}
	return result
}

// Add performs lane-wise addition.
func (v F32x16) Add(other F32x16) F32x16 {
	var result F32x16
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs lane-wise subtraction.
func (v F32x16) Sub(other F32x16) F32x16 {
	var result F32x16
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs lane-wise multiplication. Products are rounded to float32
// and never fused into a following Add or Sub.
func (v F32x16) Mul(other F32x16) F32x16 {
	var result F32x16
	for i := range v {
		result[i] = float32(v[i] * other[i])
	}
	return result
}

// Scale multiplies every lane by s.
func (v F32x16) Scale(s float32) F32x16 {
	var result F32x16
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// AddScalar adds s to every lane.
func (v F32x16) AddScalar(s float32) F32x16 {
	var result F32x16
	for i := range v {
		result[i] = v[i] + s
	}
	return result
}

// LessThan returns a mask of the lanes where v[i] < other[i].
func (v F32x16) LessThan(other F32x16) Mask16 {
	var m Mask16
	for i := range v {
		if v[i] < other[i] {
			m |= 1 << i
		}
	}
	return m
}

// Blend returns v where m is set and other elsewhere.
func (v F32x16) Blend(m Mask16, other F32x16) F32x16 {
	var result F32x16
	for i := range v {
		if m.Get(i) {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}
