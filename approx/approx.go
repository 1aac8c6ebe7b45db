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

// Package approx provides fixed-work approximations of sine, cosine and
// square root for float32.
//
// Every function performs the same amount of work for every input: there
// are no convergence checks and no special-casing. This keeps the scalar and
// lane variants of a kernel executing identical instruction streams, which
// is what the benchmarks compare. Special cases follow IEEE 754
// propagation:
//   - Sqrt(0) = NaN (0/0 on the first iteration)
//   - Sqrt(NaN) = NaN
//   - Sin(±Inf) = NaN
//
// Sqrt of a negative value never converges and returns an arbitrary finite
// value.
package approx

const (
	// Pi is π rounded to float32.
	Pi float32 = 3.14159265358979323846

	twoPi      = Pi * 2
	halfPi     = Pi * 0.5
	threeHalfs = Pi * 3 / 2
)

// SqrtIterations is the fixed number of Newton-Raphson steps taken by Sqrt.
const SqrtIterations = 10

// sinCoeffs are the reciprocal factorials 1/3! .. 1/13! with alternating sign.
var sinCoeffs = [6]float32{
	-0.166666666666667, // 1 / 3!
	0.008333333333333,  // 1 / 5!
	-0.000198412698413, // 1 / 7!
	0.000002755731922,  // 1 / 9!
	-2.50521084e-8,     // 1 / 11!
	1.6059044e-10,      // 1 / 13!
}

// fmod returns x - trunc(x/y)*y. The quotient is truncated through int32.
func fmod(x, y float32) float32 {
	whole := int32(x / y)
	return x - float32(whole)*y
}

// Sin approximates sin(angle).
//
// The angle is reduced into (-2π, 2π), folded into [0, π/2] by odd symmetry
// and quadrant reflection, and evaluated with a 6-term Taylor polynomial.
func Sin(angle float32) float32 {
	angle = fmod(angle, twoPi)

	sign := float32(1)
	if angle < 0 {
		angle = -angle
		sign = -1
	}

	// The polynomial diverges past π/2; mirror or flip the other quadrants.
	switch {
	case angle > threeHalfs:
		angle = twoPi - angle
		sign = -sign
	case angle > Pi:
		angle -= Pi
		sign = -sign
	case angle > halfPi:
		angle = Pi - angle
	}

	angleSquared := angle * angle
	numerator := angle
	result := angle
	for _, c := range sinCoeffs {
		numerator *= angleSquared
		result += numerator * c
	}

	return result * sign
}

// Cos approximates cos(angle) as Sin(angle + π/2).
func Cos(angle float32) float32 {
	return Sin(angle + halfPi)
}

// Sqrt approximates the square root of value with SqrtIterations
// Babylonian steps starting from value itself.
//
// Large inputs are not fully converged: the first steps only halve the
// guess. Sqrt(1e6) is roughly 1296.
func Sqrt(value float32) float32 {
	guess := value
	for range SqrtIterations {
		guess = (value/guess + guess) / 2
	}
	return guess
}
