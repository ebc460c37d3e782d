// Package raster turns screen-space triangles into pixels.
//
// A frame is Clear, any number of DrawTriangle calls, then presenting
// Image. Drawing without clearing first tests against last frame's depth
// buffer; the renderer cannot detect that.
package raster

import (
	"image"
	"image/color"
	"math"

	"softrast/internal/geom"
	"softrast/internal/shader"

	"github.com/go-gl/mathgl/mgl32"
)

// CoverageEpsilon is the minimum barycentric sum a pixel needs to be inside.
// It hides the hairline gaps floating point error leaves between triangles
// that share an edge.
const CoverageEpsilon = 0.99

// EdgeTolerance is how far below zero a weight may fall and still count as
// inside. Pixel centres exactly on an edge shared by two triangles would
// otherwise be rejected by both, since each side rounds slightly negative.
const EdgeTolerance = 1e-4

// Stats counts work done since the last Clear.
type Stats struct {
	Triangles int
	Pixels    int
}

// Renderer owns the framebuffer and depth buffer.
type Renderer struct {
	fb         *image.RGBA
	depth      *DepthBuffer
	background color.RGBA
	stats      Stats
}

// New creates a renderer with a cleared width x height framebuffer.
func New(width, height int, background color.RGBA) *Renderer {
	r := &Renderer{background: background, depth: &DepthBuffer{}}
	r.Resize(width, height)
	return r
}

// Resize reallocates the framebuffer and depth buffer and clears them.
func (r *Renderer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r.fb = image.NewRGBA(image.Rect(0, 0, width, height))
	r.depth.Resize(width, height)
	r.Clear()
}

// Clear resets the depth buffer to untouched and fills the framebuffer with
// the background colour. It must be called before the first draw of a frame.
func (r *Renderer) Clear() {
	r.depth.Clear()
	r.stats = Stats{}

	pix := r.fb.Pix
	if len(pix) == 0 {
		return
	}
	bg := r.background
	pix[0], pix[1], pix[2], pix[3] = bg.R, bg.G, bg.B, bg.A
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// SetBackground changes the clear colour used by the next Clear.
func (r *Renderer) SetBackground(c color.RGBA) { r.background = c }

// Background returns the clear colour.
func (r *Renderer) Background() color.RGBA { return r.background }

// Image returns the framebuffer. It is reused across frames.
func (r *Renderer) Image() *image.RGBA { return r.fb }

// Depth returns the depth buffer.
func (r *Renderer) Depth() *DepthBuffer { return r.depth }

// Size returns the framebuffer size.
func (r *Renderer) Size() (width, height int) {
	b := r.fb.Bounds()
	return b.Dx(), b.Dy()
}

// Stats returns the counters accumulated since the last Clear.
func (r *Renderer) Stats() Stats { return r.stats }

// DrawTriangle rasterizes the screen-space triangle abc. x and y are pixel
// coordinates and z is the depth from the camera. The fragment colour from sh
// is scaled by brightness. It returns the number of pixels written.
func (r *Renderer) DrawTriangle(a, b, c mgl32.Vec3, uvA, uvB, uvC mgl32.Vec2, sh shader.Shader, brightness float32) int {
	if sh == nil || !geom.IsFiniteVec3(a) || !geom.IsFiniteVec3(b) || !geom.IsFiniteVec3(c) {
		return 0
	}
	r.stats.Triangles++

	width, height := r.Size()
	x0, y0, x1, y1, ok := boundingBox(a, b, c, width, height)
	if !ok {
		return 0
	}

	a2, b2, c2 := a.Vec2(), b.Vec2(), c.Vec2()
	// Sample at pixel centres. Barycentric weights are affine in the sample
	// position, so stepping one pixel is a constant delta.
	origin := mgl32.Vec2{float32(x0) + 0.5, float32(y0) + 0.5}
	topLeft := geom.Barycentric(a2, b2, c2, origin)
	dx, dy := geom.BarycentricStep(a2, b2, c2)
	depths := mgl32.Vec3{a[2], b[2], c[2]}

	written := 0
	row := topLeft
	for y := y0; y <= y1; y++ {
		bc := row
		for x := x0; x <= x1; x++ {
			if inside(bc) {
				w := clampWeights(bc)
				if r.shade(x, y, w.Dot(depths), w, uvA, uvB, uvC, sh, brightness) {
					written++
				}
			}
			bc = bc.Add(dx)
		}
		row = row.Add(dy)
	}
	r.stats.Pixels += written
	return written
}

func (r *Renderer) shade(x, y int, depth float32, bc mgl32.Vec3, uvA, uvB, uvC mgl32.Vec2, sh shader.Shader, brightness float32) bool {
	w := r.depth.width
	if x < 0 || y < 0 || x >= w || y >= r.depth.height {
		return false
	}
	if !r.depth.testAndSet(y*w+x, depth) {
		return false
	}

	c := shader.Scale(sh.Fragment(bc, uvA, uvB, uvC), brightness)
	off := r.fb.PixOffset(x, y)
	if off < 0 || off+3 >= len(r.fb.Pix) {
		return false
	}
	p := r.fb.Pix[off : off+4 : off+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	return true
}

func inside(bc mgl32.Vec3) bool {
	return bc[0] >= -EdgeTolerance && bc[1] >= -EdgeTolerance && bc[2] >= -EdgeTolerance &&
		bc[0]+bc[1]+bc[2] >= CoverageEpsilon
}

// clampWeights zeroes the small negative weights inside lets through, so
// shaders and depth interpolation never see them.
func clampWeights(bc mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(bc[0], 0), max(bc[1], 0), max(bc[2], 0)}
}

// boundingBox returns the inclusive pixel bounds of abc clipped to the
// viewport. ok is false when nothing of the box is on screen.
func boundingBox(a, b, c mgl32.Vec3, width, height int) (x0, y0, x1, y1 int, ok bool) {
	minX := math.Floor(float64(min(a[0], b[0], c[0])))
	minY := math.Floor(float64(min(a[1], b[1], c[1])))
	maxX := math.Floor(float64(max(a[0], b[0], c[0])))
	maxY := math.Floor(float64(max(a[1], b[1], c[1])))

	minX = math.Max(minX, 0)
	minY = math.Max(minY, 0)
	maxX = math.Min(maxX, float64(width-1))
	maxY = math.Min(maxY, float64(height-1))
	if minX > maxX || minY > maxY {
		return 0, 0, 0, 0, false
	}
	return int(minX), int(minY), int(maxX), int(maxY), true
}
