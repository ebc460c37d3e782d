// Package geom holds the small amount of vector math the rasterizer needs on
// top of mathgl. Every helper returns a defined fallback for degenerate input
// instead of NaN, so a degenerate face never stops a frame.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used for degenerate length and determinant checks.
const Epsilon = 1e-12

// Normalize returns v scaled to unit length, or the zero vector if v has no length.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon || !IsFinite(l) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// CosineSimilarity returns dot(a, b) / (|a| |b|), or 0 if either vector is zero.
func CosineSimilarity(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	return a.Dot(b) / (la * lb)
}

// PerspectiveDivide converts a homogeneous point to 3D by dividing by w.
// A zero w yields the zero vector.
func PerspectiveDivide(v mgl32.Vec4) mgl32.Vec3 {
	if v[3] == 0 {
		return mgl32.Vec3{}
	}
	inv := 1 / v[3]
	return mgl32.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Barycentric returns the weights (u, v, w) of p relative to triangle abc,
// such that p = u*a + v*b + w*c. A degenerate triangle yields zero weights.
// The solve runs in float64 so screen coordinates far outside the viewport
// do not overflow.
func Barycentric(a, b, c, p mgl32.Vec2) mgl32.Vec3 {
	s, ok := newBarySolver(a, b, c)
	if !ok {
		return mgl32.Vec3{}
	}
	v, w := s.weights(float64(p[0]-a[0]), float64(p[1]-a[1]))
	return mgl32.Vec3{float32(1 - v - w), float32(v), float32(w)}
}

// BarycentricStep returns how the weights of Barycentric change when p moves
// one unit along x and along y. Both are zero for a degenerate triangle.
func BarycentricStep(a, b, c mgl32.Vec2) (dx, dy mgl32.Vec3) {
	s, ok := newBarySolver(a, b, c)
	if !ok {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	vx, wx := s.weights(1, 0)
	vy, wy := s.weights(0, 1)
	return mgl32.Vec3{float32(-vx - wx), float32(vx), float32(wx)},
		mgl32.Vec3{float32(-vy - wy), float32(vy), float32(wy)}
}

type barySolver struct {
	e0x, e0y, e1x, e1y float64
	d00, d01, d11, det float64
}

func newBarySolver(a, b, c mgl32.Vec2) (barySolver, bool) {
	s := barySolver{
		e0x: float64(b[0]) - float64(a[0]),
		e0y: float64(b[1]) - float64(a[1]),
		e1x: float64(c[0]) - float64(a[0]),
		e1y: float64(c[1]) - float64(a[1]),
	}
	s.d00 = s.e0x*s.e0x + s.e0y*s.e0y
	s.d01 = s.e0x*s.e1x + s.e0y*s.e1y
	s.d11 = s.e1x*s.e1x + s.e1y*s.e1y
	s.det = s.d00*s.d11 - s.d01*s.d01
	if math.Abs(s.det) < Epsilon || math.IsNaN(s.det) || math.IsInf(s.det, 0) {
		return s, false
	}
	return s, true
}

// weights solves for the b and c weights of the offset (px, py) from a.
func (s barySolver) weights(px, py float64) (v, w float64) {
	d20 := px*s.e0x + py*s.e0y
	d21 := px*s.e1x + py*s.e1y
	v = (s.d11*d20 - s.d01*d21) / s.det
	w = (s.d00*d21 - s.d01*d20) / s.det
	return v, w
}

// SignedArea returns twice the signed area of the 2D triangle abc.
// It is positive when a→b→c turns counter-clockwise in a y-up frame,
// which is clockwise on a y-down raster.
func SignedArea(a, b, c mgl32.Vec2) float32 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return ab[0]*ac[1] - ac[0]*ab[1]
}

// Clamp01 clamps f to [0, 1].
func Clamp01(f float32) float32 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// IsFiniteVec3 reports whether all components of v are finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}
