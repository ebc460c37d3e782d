package graphics

import (
	"softrast/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is an object pose: position, uniform scale and rotation.
// The affine matrix is rebuilt by every mutator, so Matrix is always current.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    float32
	matrix   mgl32.Mat4
}

// NewTransform returns the identity pose.
func NewTransform() *Transform {
	t := &Transform{rotation: mgl32.QuatIdent(), scale: 1}
	t.rebuild()
	return t
}

func (t *Transform) rebuild() {
	t.matrix = geom.AffineMatrix(t.rotation, t.position, t.scale)
}

// Position returns the translation part of the pose.
func (t *Transform) Position() mgl32.Vec3 { return t.position }

// Rotation returns the normalized rotation quaternion.
func (t *Transform) Rotation() mgl32.Quat { return t.rotation }

// Scale returns the uniform scale factor.
func (t *Transform) Scale() float32 { return t.scale }

// Matrix returns the object-to-world affine matrix.
func (t *Transform) Matrix() mgl32.Mat4 { return t.matrix }

// SetPosition moves the object to p.
func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.position = p
	t.rebuild()
}

// Translate moves the object by delta.
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.position = t.position.Add(delta)
	t.rebuild()
}

// SetRotation replaces the rotation. q is normalized; a zero quaternion
// becomes identity.
func (t *Transform) SetRotation(q mgl32.Quat) {
	t.rotation = geom.NormalizeQuat(q)
	t.rebuild()
}

// Rotate applies an additional rotation of angle radians about axis,
// in world space.
func (t *Transform) Rotate(angle float32, axis mgl32.Vec3) {
	axis = geom.Normalize(axis)
	if axis == (mgl32.Vec3{}) {
		return
	}
	t.SetRotation(mgl32.QuatRotate(angle, axis).Mul(t.rotation))
}

// SetScale sets the uniform scale factor.
func (t *Transform) SetScale(s float32) {
	t.scale = s
	t.rebuild()
}

// TransformPoint maps an object-space position to world space
// (scale, rotation, then translation).
func (t *Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return t.matrix.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection rotates a direction such as a face normal into world
// space. Translation and scale are not applied.
func (t *Transform) TransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return geom.Normalize(t.rotation.Rotate(d))
}
