package raster

import "math"

// Untouched is the depth value of a pixel nothing has been drawn to this
// frame. Any valid depth compares nearer.
var Untouched = float32(math.Inf(1))

// DepthBuffer stores the nearest depth drawn at each pixel.
type DepthBuffer struct {
	width  int
	height int
	values []float32
}

// NewDepthBuffer allocates a cleared width x height buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{}
	d.Resize(width, height)
	return d
}

// Resize reallocates the buffer. The new buffer is cleared.
func (d *DepthBuffer) Resize(width, height int) {
	d.width = max(width, 0)
	d.height = max(height, 0)
	d.values = make([]float32, d.width*d.height)
	d.Clear()
}

// Clear marks every pixel untouched.
func (d *DepthBuffer) Clear() {
	if len(d.values) == 0 {
		return
	}
	d.values[0] = Untouched
	for filled := 1; filled < len(d.values); filled *= 2 {
		copy(d.values[filled:], d.values[:filled])
	}
}

// Width returns the buffer width.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height.
func (d *DepthBuffer) Height() int { return d.height }

// At returns the stored depth at (x, y), or Untouched outside the buffer.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return Untouched
	}
	return d.values[y*d.width+x]
}

// Touched reports whether anything was drawn at (x, y) since the last Clear.
func (d *DepthBuffer) Touched(x, y int) bool {
	return !math.IsInf(float64(d.At(x, y)), 1)
}

// testAndSet stores depth at index i if it is in front of the current value.
func (d *DepthBuffer) testAndSet(i int, depth float32) bool {
	if i < 0 || i >= len(d.values) {
		return false
	}
	if !(depth > 0) || depth >= d.values[i] {
		return false
	}
	d.values[i] = depth
	return true
}
