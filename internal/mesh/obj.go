package mesh

import (
	"fmt"
	"io"
	"path/filepath"

	"softrast/pkg/objmodel"

	"github.com/go-gl/mathgl/mgl32"
)

// FromModel builds a mesh from parsed OBJ geometry.
func FromModel(model *objmodel.Model) (*Mesh, error) {
	vertices := make([]mgl32.Vec3, len(model.Vertices))
	for i, v := range model.Vertices {
		vertices[i] = mgl32.Vec3(v)
	}
	uvs := make([]mgl32.Vec2, len(model.TexCoords))
	for i, t := range model.TexCoords {
		uvs[i] = mgl32.Vec2(t)
	}

	faces := make([]Face, len(model.Faces))
	for i, f := range model.Faces {
		faces[i] = NewFace(f.V[0], f.V[1], f.V[2])
		if f.HasTexCoords {
			faces[i] = faces[i].WithUVs(f.T[0], f.T[1], f.T[2])
		}
	}
	return New(vertices, faces, uvs)
}

// ParseOBJ reads OBJ text from r and builds a mesh from it.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	model, err := objmodel.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromModel(model)
}

// LoadOBJ reads and builds the mesh stored at path.
func LoadOBJ(path string) (*Mesh, error) {
	model, err := objmodel.NewLoader(filepath.Dir(path)).LoadModel(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	m, err := FromModel(model)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh %s: %w", path, err)
	}
	m.Name = filepath.Base(path)
	return m, nil
}
