// Package scene groups the camera, light and meshes drawn each frame.
package scene

import (
	"softrast/internal/graphics"
	"softrast/internal/mesh"
	"softrast/internal/profiling"
	"softrast/internal/raster"

	"github.com/go-gl/mathgl/mgl32"
)

// Default lighting.
const (
	DefaultAmbient   = 0.2
	DefaultIntensity = 0.8
)

// Scene is one camera, one directional light and the meshes to draw.
type Scene struct {
	Camera  *graphics.PerspectiveCamera
	Light   graphics.DirectionalLight
	Ambient float32
	Meshes  []*mesh.Mesh
}

// New returns an empty scene with a camera at cameraPos looking down -Z and
// a light shining down and away from the viewer.
func New(cameraPos mgl32.Vec3, width, height int) *Scene {
	return &Scene{
		Camera:  graphics.NewPerspectiveCamera(cameraPos, width, height),
		Light:   graphics.NewDirectionalLight(mgl32.Vec3{-0.3, -0.5, -1}, DefaultIntensity),
		Ambient: DefaultAmbient,
	}
}

// Add appends meshes to the scene.
func (s *Scene) Add(meshes ...*mesh.Mesh) {
	s.Meshes = append(s.Meshes, meshes...)
}

// Resize updates the camera for a new viewport size.
func (s *Scene) Resize(width, height int) {
	s.Camera.SetViewport(width, height)
}

// Render clears r and draws every mesh into it.
func (s *Scene) Render(r *raster.Renderer) mesh.DrawStats {
	func() { defer profiling.Track("raster.Clear")(); r.Clear() }()

	var stats mesh.DrawStats
	for _, m := range s.Meshes {
		stats.Add(s.draw(r, m))
	}
	return stats
}

func (s *Scene) draw(r *raster.Renderer, d Drawable) mesh.DrawStats {
	defer profiling.Track("mesh.Draw")()
	return d.Draw(r, s.Camera, s.Light, s.Ambient)
}
