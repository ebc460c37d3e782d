// Package objmodel reads triangle geometry from Wavefront OBJ text.
package objmodel

// Model is the geometry found in one OBJ file. All indices are 0-based.
type Model struct {
	Vertices  [][3]float32
	TexCoords [][2]float32
	Faces     []Face
}

// Face is one triangle. T is only meaningful when HasTexCoords is set.
type Face struct {
	V            [3]int
	T            [3]int
	HasTexCoords bool
}
