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

package approx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSin(t *testing.T) {
	for x := float32(-20); x <= 20; x += 0.037 {
		got := Sin(x)
		want := math.Sin(float64(x))
		if math.Abs(float64(got)-want) > 2e-5 {
			t.Errorf("Sin(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestSinSymmetry(t *testing.T) {
	tests := []struct {
		x    float32
		want float32
	}{
		{0, 0},
		{Pi / 2, 1},
		{-Pi / 2, -1},
		{Pi / 6, 0.5},
		{7 * Pi / 6, -0.5},
		{11 * Pi / 6, -0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Sin(tt.x), 2e-5, "Sin(%v)", tt.x)
	}
	for _, x := range []float32{0.3, 1.2, 2.9, 4.4, 5.7} {
		assert.InDelta(t, -Sin(x), Sin(-x), 1e-6, "odd symmetry at %v", x)
	}
}

func TestCos(t *testing.T) {
	for x := float32(-20); x <= 20; x += 0.041 {
		got := Cos(x)
		want := math.Cos(float64(x))
		if math.Abs(float64(got)-want) > 2e-5 {
			t.Errorf("Cos(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestSqrt(t *testing.T) {
	for _, x := range []float32{1, 2, 4, 100, 1e4, 0.25} {
		got := Sqrt(x)
		want := math.Sqrt(float64(x))
		if math.Abs(float64(got)-want)/want > 1e-5 {
			t.Errorf("Sqrt(%v) = %v, want %v", x, got, want)
		}
	}
}

// newton runs n Babylonian steps the same way Sqrt does.
func newton(value float32, n int) float32 {
	guess := value
	for range n {
		guess = (value/guess + guess) / 2
	}
	return guess
}

func TestSqrtIterationCount(t *testing.T) {
	assert.Equal(t, 10, SqrtIterations)

	// 1e6 is far from converged after 10 steps, so any change to the
	// iteration count shows up here.
	got := Sqrt(1e6)
	assert.Equal(t, newton(1e6, 10), got)
	assert.NotEqual(t, newton(1e6, 9), got)
	assert.NotEqual(t, newton(1e6, 11), got)
	assert.InDelta(t, 1296, got, 5)
}

func TestSpecialCasesPropagate(t *testing.T) {
	assert.True(t, math.IsNaN(float64(Sqrt(0))))
	assert.True(t, math.IsNaN(float64(Sqrt(float32(math.NaN())))))
	assert.True(t, math.IsNaN(float64(Sin(float32(math.Inf(1))))))
}

func BenchmarkSin(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += Sin(float32(i) * 0.001)
	}
	_ = sink
}

func BenchmarkSqrt(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += Sqrt(float32(i&1023) + 1)
	}
	_ = sink
}
