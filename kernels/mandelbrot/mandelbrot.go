// Package mandelbrot implements the escape-time fractal benchmark over a
// small fixed frame.
//
// Three variants fill the same frame: a scalar loop over pixels, a lane
// dispatch per 16-column chunk, and a hand-vectorized loop over lane/wide
// values that iterates all 16 pixels of a chunk until every lane escaped.
// All three produce identical buffers.
package mandelbrot

import (
	"github.com/ajroetker/lanebench/lane"
	"github.com/ajroetker/lanebench/lane/wide"
)

const (
	// Width and Height are the frame size in pixels.
	Width  = 32
	Height = 8

	// MaxIterations bounds the escape loop.
	MaxIterations = 255

	// XStep and YStep are the distances between neighboring pixels.
	XStep float32 = 2.5 / Width
	YStep float32 = 2.0 / Height

	// opaque is the alpha channel of escaped pixels.
	opaque uint32 = 0xff000000
)

// Color maps the iteration a pixel escaped at to its color. Pixels that
// never escape are black (0).
func Color(iteration int32) uint32 {
	if iteration >= MaxIterations {
		return 0
	}
	return uint32(iteration<<2+80) | opaque
}

// Pixel returns the color of the point (x0, y0).
func Pixel(x0, y0 float32) uint32 {
	var x, y float32
	for iteration := int32(0); iteration < MaxIterations; iteration++ {
		xx := float32(x * x)
		yy := float32(y * y)
		if xx+yy >= 4 {
			return Color(iteration)
		}
		y = float32(float32(x*y)*2) + y0
		x = float32(xx-yy) + x0
	}
	return 0
}

// chunkX0 returns the real coordinates of the 16 columns of chunk.
// Successive chunks advance by 16 steps.
func chunkX0(chunk int) wide.F32x16 {
	x0 := wide.IotaF32().Scale(XStep).AddScalar(-2)
	for range chunk {
		x0 = x0.AddScalar(XStep * lane.Width)
	}
	return x0
}

// rowY0 returns the imaginary coordinate of row.
func rowY0(row int) float32 {
	return YStep*float32(row) - 1
}

// Frame is one rendered picture, row-major.
type Frame [Width * Height]uint32

// Bench owns the frame buffer of one Mandelbrot benchmark run.
type Bench struct {
	engine lane.Engine
	x0     [Width / lane.Width]wide.F32x16
	frame  Frame
}

// NewBench returns a Bench dispatching its lane variant through e.
func NewBench(e lane.Engine) *Bench {
	b := &Bench{engine: e}
	for chunk := range b.x0 {
		b.x0[chunk] = chunkX0(chunk)
	}
	return b
}

// Reset clears the frame.
func (b *Bench) Reset() {
	b.frame = Frame{}
}

// Frame returns the frame buffer.
func (b *Bench) Frame() []uint32 {
	return b.frame[:]
}

func (b *Bench) column(col int) float32 {
	return b.x0[col/lane.Width][col%lane.Width]
}

// Scalar renders the frame one pixel at a time.
func (b *Bench) Scalar() {
	for row := range Height {
		y0 := rowY0(row)
		out := b.frame[row*Width : (row+1)*Width]
		for col := range out {
			out[col] = Pixel(b.column(col), y0)
		}
	}
}

// SPMD renders the frame with one lane dispatch per 16-column chunk.
func (b *Bench) SPMD() {
	lane.Range(b.engine, 0, len(b.frame), func(i int) {
		row, col := i/Width, i%Width
		b.frame[i] = Pixel(b.column(col), rowY0(row))
	})
}

// Intrin renders the frame 16 pixels at a time with masked wide arithmetic.
func (b *Bench) Intrin() {
	for row := range Height {
		y0 := wide.SplatF32(rowY0(row))
		for chunk, x0 := range b.x0 {
			colors := escape(x0, y0)
			copy(b.frame[row*Width+chunk*lane.Width:], colors[:])
		}
	}
}

// escape runs the escape loop on 16 points at once. A lane stops counting
// once it escaped or reached MaxIterations; the loop ends when no lane is
// active.
func escape(x0, y0 wide.F32x16) [lane.Width]uint32 {
	var x, y wide.F32x16
	var iteration wide.I32x16
	four := wide.SplatF32(4)
	active := wide.AllLanes

	for {
		xx := x.Mul(x)
		yy := y.Mul(y)
		active = active.And(xx.Add(yy).LessThan(four))
		active = active.And(iteration.LessThan(MaxIterations))
		if !active.Any() {
			break
		}
		y = x.Mul(y).Scale(2).Add(y0)
		x = xx.Sub(yy).Add(x0)
		iteration = iteration.AddMasked(active, 1)
	}

	var colors [lane.Width]uint32
	for i, n := range iteration {
		colors[i] = Color(n)
	}
	return colors
}
