package graphics

import (
	"softrast/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// DirectionalLight is a light with a fixed direction and intensity and no
// position or falloff. Direction is the way the light travels.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Intensity float32
}

// NewDirectionalLight returns a light travelling along direction.
func NewDirectionalLight(direction mgl32.Vec3, intensity float32) DirectionalLight {
	return DirectionalLight{
		Direction: geom.Normalize(direction),
		Intensity: intensity,
	}
}
