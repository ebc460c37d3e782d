package objmodel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every parse error.
var ErrMalformed = errors.New("malformed obj")

// Loader reads models from a directory and caches them by name.
type Loader struct {
	assetsPath string
	modelCache map[string]*Model
}

func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		modelCache: make(map[string]*Model),
	}
}

// LoadModel loads name, adding the .obj extension if it is missing. Absolute
// names are used as is.
func (l *Loader) LoadModel(name string) (*Model, error) {
	if !strings.HasSuffix(name, ".obj") {
		name += ".obj"
	}
	if model, ok := l.modelCache[name]; ok {
		return model, nil
	}

	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(l.assetsPath, name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open model file: %w", err)
	}
	defer f.Close()

	model, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	l.modelCache[name] = model
	return model, nil
}

// Parse reads v, vt and f statements. Texture v coordinates are flipped so
// that 0 is the top row of an image. Polygons are split into a triangle fan.
// Negative indices count back from the last element defined so far.
// Every other statement is ignored.
func Parse(r io.Reader) (*Model, error) {
	m := &Model{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = m.parseVertex(fields[1:])
		case "vt":
			err = m.parseTexCoord(fields[1:])
		case "f":
			err = m.parseFace(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read model: %w", err)
	}
	return m, nil
}

func (m *Model) parseVertex(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrMalformed, len(args))
	}
	var v [3]float32
	for i := range v {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return fmt.Errorf("%w: vertex coordinate %q", ErrMalformed, args[i])
		}
		v[i] = float32(f)
	}
	m.Vertices = append(m.Vertices, v)
	return nil
}

func (m *Model) parseTexCoord(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: texture coordinate needs u and v", ErrMalformed)
	}
	u, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("%w: texture coordinate %q", ErrMalformed, args[0])
	}
	v, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("%w: texture coordinate %q", ErrMalformed, args[1])
	}
	m.TexCoords = append(m.TexCoords, [2]float32{float32(u), 1 - float32(v)})
	return nil
}

func (m *Model) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: face needs at least 3 vertices, got %d", ErrMalformed, len(args))
	}
	verts := make([]int, len(args))
	texs := make([]int, len(args))
	hasTex := true
	for i, arg := range args {
		parts := strings.Split(arg, "/")
		v, err := resolveIndex(parts[0], len(m.Vertices))
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		verts[i] = v
		if len(parts) < 2 || parts[1] == "" {
			hasTex = false
			continue
		}
		t, err := resolveIndex(parts[1], len(m.TexCoords))
		if err != nil {
			return fmt.Errorf("texture coordinate: %w", err)
		}
		texs[i] = t
	}

	for i := 1; i+1 < len(verts); i++ {
		f := Face{V: [3]int{verts[0], verts[i], verts[i+1]}, HasTexCoords: hasTex}
		if hasTex {
			f.T = [3]int{texs[0], texs[i], texs[i+1]}
		}
		m.Faces = append(m.Faces, f)
	}
	return nil
}

// resolveIndex turns a 1-based or negative OBJ index into a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformed, s)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: index %d out of range (%d defined)", ErrMalformed, n, count)
	}
	return idx, nil
}
