// Package mesh stores triangle meshes and drives their rasterization.
package mesh

import (
	"errors"
	"fmt"

	"softrast/internal/geom"
	"softrast/internal/graphics"
	"softrast/internal/raster"
	"softrast/internal/shader"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrIndexOutOfRange is returned when a face references a missing vertex or UV.
var ErrIndexOutOfRange = errors.New("index out of range")

// Winding is the vertex order of front faces as seen from outside the mesh.
type Winding int

const (
	CounterClockwise Winding = iota
	Clockwise
)

// DrawStats reports what one Draw call did.
type DrawStats struct {
	Faces  int // front-facing faces sent to the rasterizer
	Culled int // back-facing, degenerate or fully behind the camera
	Pixels int
}

// Add accumulates o into s.
func (s *DrawStats) Add(o DrawStats) {
	s.Faces += o.Faces
	s.Culled += o.Culled
	s.Pixels += o.Pixels
}

// Mesh owns its geometry, pose and shader.
type Mesh struct {
	Name      string
	Transform *graphics.Transform
	Shader    shader.Shader
	Winding   Winding

	vertices []mgl32.Vec3
	faces    []Face
	uvs      []mgl32.Vec2

	// projected is reused every frame to avoid reallocating.
	projected []mgl32.Vec3
}

// New validates the face indices and computes every face normal. uvs may be
// empty, in which case UV indices are ignored and all UVs are zero.
func New(vertices []mgl32.Vec3, faces []Face, uvs []mgl32.Vec2) (*Mesh, error) {
	for i, f := range faces {
		for _, v := range f.Vertices {
			if v < 0 || v >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex %d of %d: %w", i, v, len(vertices), ErrIndexOutOfRange)
			}
		}
		if len(uvs) == 0 {
			continue
		}
		for _, uv := range f.UVs {
			if uv < 0 || uv >= len(uvs) {
				return nil, fmt.Errorf("face %d: uv %d of %d: %w", i, uv, len(uvs), ErrIndexOutOfRange)
			}
		}
	}

	m := &Mesh{
		Transform: graphics.NewTransform(),
		Shader:    shader.NewStandard(shader.DefaultColor),
		vertices:  vertices,
		faces:     faces,
		uvs:       uvs,
		projected: make([]mgl32.Vec3, len(vertices)),
	}
	m.RecomputeNormals()
	return m, nil
}

// Vertices returns the object-space vertex positions. Edit them through
// SetVertex so face normals stay valid.
func (m *Mesh) Vertices() []mgl32.Vec3 { return m.vertices }

// Faces returns the faces of the mesh.
func (m *Mesh) Faces() []Face { return m.faces }

// UVs returns the texture coordinates.
func (m *Mesh) UVs() []mgl32.Vec2 { return m.uvs }

// SetVertex moves vertex i and recomputes the normals of faces using it.
func (m *Mesh) SetVertex(i int, p mgl32.Vec3) error {
	if i < 0 || i >= len(m.vertices) {
		return fmt.Errorf("vertex %d of %d: %w", i, len(m.vertices), ErrIndexOutOfRange)
	}
	m.vertices[i] = p
	for fi := range m.faces {
		if m.faces[fi].references(i) {
			m.faces[fi].ComputeNormal(m.vertices)
		}
	}
	return nil
}

// RecomputeNormals recomputes the cached normal of every face.
func (m *Mesh) RecomputeNormals() {
	for i := range m.faces {
		m.faces[i].ComputeNormal(m.vertices)
	}
}

func (m *Mesh) uv(i int) mgl32.Vec2 {
	if i < 0 || i >= len(m.uvs) {
		return mgl32.Vec2{}
	}
	return m.uvs[i]
}

// frontFacing reports whether the screen-space triangle abc faces the camera.
// Screen y grows downwards and x is mirrored, so counter-clockwise faces have
// positive signed area.
func (m *Mesh) frontFacing(a, b, c mgl32.Vec3) bool {
	area := geom.SignedArea(a.Vec2(), b.Vec2(), c.Vec2())
	if m.Winding == Clockwise {
		return area < 0
	}
	return area > 0
}

// Draw projects every vertex once, then culls, lights and rasterizes each
// face. The renderer must already be cleared for this frame.
func (m *Mesh) Draw(r *raster.Renderer, cam *graphics.PerspectiveCamera, light graphics.DirectionalLight, ambient float32) DrawStats {
	var stats DrawStats
	if m.Shader == nil {
		stats.Culled = len(m.faces)
		return stats
	}

	if len(m.projected) != len(m.vertices) {
		m.projected = make([]mgl32.Vec3, len(m.vertices))
	}
	for i, v := range m.vertices {
		m.projected[i] = cam.Project(v, m.Transform)
	}

	for i := range m.faces {
		f := &m.faces[i]
		a := m.projected[f.Vertices[0]]
		b := m.projected[f.Vertices[1]]
		c := m.projected[f.Vertices[2]]

		if a[2] <= 0 && b[2] <= 0 && c[2] <= 0 {
			stats.Culled++
			continue
		}
		if !m.frontFacing(a, b, c) {
			stats.Culled++
			continue
		}

		normal := f.Normal()
		if m.Transform != nil {
			normal = m.Transform.TransformDirection(normal)
		}
		brightness := m.Shader.Lighting(normal, light, ambient)

		stats.Faces++
		stats.Pixels += r.DrawTriangle(a, b, c,
			m.uv(f.UVs[0]), m.uv(f.UVs[1]), m.uv(f.UVs[2]),
			m.Shader, brightness)
	}
	return stats
}
