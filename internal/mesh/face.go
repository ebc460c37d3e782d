package mesh

import (
	"softrast/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Face is a triangle referencing three vertices and three texture coordinates
// of its mesh. The normal is cached and only valid after ComputeNormal has
// run against the current vertices.
type Face struct {
	Vertices [3]int
	UVs      [3]int
	normal   mgl32.Vec3
}

// NewFace returns a face over vertices a, b and c. All three UV indices
// default to 0.
func NewFace(a, b, c int) Face {
	return Face{Vertices: [3]int{a, b, c}}
}

// WithUVs returns a copy of f using the given texture coordinate indices.
func (f Face) WithUVs(a, b, c int) Face {
	f.UVs = [3]int{a, b, c}
	return f
}

// Normal returns the cached unit normal.
func (f *Face) Normal() mgl32.Vec3 { return f.normal }

// ComputeNormal recomputes the outward unit normal from counter-clockwise
// vertex order. Degenerate faces get the zero normal.
func (f *Face) ComputeNormal(vertices []mgl32.Vec3) {
	v0 := vertices[f.Vertices[0]]
	v1 := vertices[f.Vertices[1]]
	v2 := vertices[f.Vertices[2]]
	f.normal = geom.Normalize(v1.Sub(v0).Cross(v2.Sub(v0)))
}

func (f *Face) references(vertex int) bool {
	return f.Vertices[0] == vertex || f.Vertices[1] == vertex || f.Vertices[2] == vertex
}
