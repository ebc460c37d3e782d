package mesh

import "github.com/go-gl/mathgl/mgl32"

// cubeQuads lists each side's corners counter-clockwise seen from outside,
// starting bottom-left. Corner i has x, y, z signs from bits 0, 1, 2.
var cubeQuads = [6][4]int{
	{4, 5, 7, 6}, // +Z
	{1, 0, 2, 3}, // -Z
	{5, 1, 3, 7}, // +X
	{0, 4, 6, 2}, // -X
	{6, 7, 3, 2}, // +Y
	{0, 1, 5, 4}, // -Y
}

// Cube returns an axis-aligned cube of the given edge length centred on the
// origin. Each side maps the whole [0, 1] UV square.
func Cube(size float32) *Mesh {
	h := size / 2
	vertices := make([]mgl32.Vec3, 8)
	for i := range vertices {
		v := mgl32.Vec3{-h, -h, -h}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				v[axis] = h
			}
		}
		vertices[i] = v
	}

	uvs := []mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	faces := make([]Face, 0, 12)
	for _, q := range cubeQuads {
		faces = append(faces,
			NewFace(q[0], q[1], q[2]).WithUVs(0, 1, 2),
			NewFace(q[0], q[2], q[3]).WithUVs(0, 2, 3),
		)
	}

	m, err := New(vertices, faces, uvs)
	if err != nil {
		panic(err) // static geometry
	}
	m.Name = "cube"
	return m
}
