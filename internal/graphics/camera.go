package graphics

import (
	"math"

	"softrast/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Default camera intrinsics.
const (
	DefaultFOV  = math.Pi / 2
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// PerspectiveCamera looks down -Z from its position. The projection matrix
// is regenerated by every mutator.
//
// Depth after the perspective divide is F(d-N)/((F-N)d) for a point d units
// in front of the camera: 0 at the near plane, 1 at the far plane, growing
// with distance.
type PerspectiveCamera struct {
	position mgl32.Vec3
	fov      float32
	near     float32
	far      float32
	aspect   float32
	width    float32
	height   float32

	projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera at position for a width x height viewport.
func NewPerspectiveCamera(position mgl32.Vec3, width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		position: position,
		fov:      DefaultFOV,
		near:     DefaultNear,
		far:      DefaultFar,
	}
	c.setViewport(width, height)
	c.generateProjectionMatrix()
	return c
}

func (c *PerspectiveCamera) setViewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width = float32(width)
	c.height = float32(height)
	c.aspect = c.width / c.height
}

func (c *PerspectiveCamera) generateProjectionMatrix() {
	f := float32(1 / math.Tan(float64(c.fov)/2))
	n, fa := c.near, c.far

	// Column-major.
	c.projection = mgl32.Mat4{
		f / c.aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -fa / (fa - n), -1,
		0, 0, -fa * n / (fa - n), 0,
	}
}

// Position returns the camera position.
func (c *PerspectiveCamera) Position() mgl32.Vec3 { return c.position }

// FOV returns the vertical field of view in radians.
func (c *PerspectiveCamera) FOV() float32 { return c.fov }

// ClipPlanes returns the near and far distances.
func (c *PerspectiveCamera) ClipPlanes() (near, far float32) { return c.near, c.far }

// Aspect returns width / height of the viewport.
func (c *PerspectiveCamera) Aspect() float32 { return c.aspect }

// Viewport returns the viewport size in pixels.
func (c *PerspectiveCamera) Viewport() (width, height float32) { return c.width, c.height }

// ProjectionMatrix returns the current projection matrix.
func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// SetPosition moves the camera.
func (c *PerspectiveCamera) SetPosition(p mgl32.Vec3) {
	c.position = p
}

// SetFOV sets the vertical field of view in radians.
func (c *PerspectiveCamera) SetFOV(fov float32) {
	c.fov = fov
	c.generateProjectionMatrix()
}

// SetClipPlanes sets the near and far distances. Invalid ranges are ignored.
func (c *PerspectiveCamera) SetClipPlanes(near, far float32) {
	if near <= 0 || far <= near {
		return
	}
	c.near, c.far = near, far
	c.generateProjectionMatrix()
}

// SetViewport updates the viewport size and aspect ratio after a resize.
func (c *PerspectiveCamera) SetViewport(width, height int) {
	c.setViewport(width, height)
	c.generateProjectionMatrix()
}

// ProjectPoint applies the object transform, moves the point into camera
// space and projects it. Points at or behind the camera plane get a negative
// depth so they can never pass the depth test; this stands in for near-plane
// clipping.
func (c *PerspectiveCamera) ProjectPoint(point mgl32.Vec3, t *Transform) mgl32.Vec3 {
	world := point
	if t != nil {
		world = t.TransformPoint(point)
	}
	view := world.Sub(c.position)

	projected := geom.PerspectiveDivide(c.projection.Mul4x1(view.Vec4(1)))
	if view[2] >= 0 {
		projected[2] = -float32(math.Abs(float64(projected[2])))
	}
	return projected
}

// ToNDC maps projected x, y from [-1, 1] to device pixels. x is mirrored and
// y grows downwards; z is kept as the rasterizer depth.
func (c *PerspectiveCamera) ToNDC(projected mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		(-projected[0] + 1) * c.width / 2,
		(-projected[1] + 1) * c.height / 2,
		projected[2],
	}
}

// Project runs ProjectPoint followed by ToNDC.
func (c *PerspectiveCamera) Project(point mgl32.Vec3, t *Transform) mgl32.Vec3 {
	return c.ToNDC(c.ProjectPoint(point, t))
}
