package geom

import "github.com/go-gl/mathgl/mgl32"

// NormalizeQuat returns q with unit norm. A zero quaternion becomes identity.
func NormalizeQuat(q mgl32.Quat) mgl32.Quat {
	l := q.Len()
	if l < Epsilon || !IsFinite(l) {
		return mgl32.QuatIdent()
	}
	return mgl32.Quat{W: q.W / l, V: q.V.Mul(1 / l)}
}

// RotationMatrix builds the rotation block of q using the standard
// quaternion-to-matrix formula. q is normalized first.
func RotationMatrix(q mgl32.Quat) mgl32.Mat4 {
	q = NormalizeQuat(q)
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]

	// mathgl matrices are column-major: m[col*4+row].
	return mgl32.Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y), 0,
		2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x), 0,
		2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// AffineMatrix composes translation * rotation * uniform scale.
func AffineMatrix(q mgl32.Quat, position mgl32.Vec3, scale float32) mgl32.Mat4 {
	m := RotationMatrix(q)
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col*4+row] *= scale
		}
	}
	m[12], m[13], m[14] = position[0], position[1], position[2]
	return m
}
