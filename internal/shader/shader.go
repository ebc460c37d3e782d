// Package shader defines how a rasterized pixel is coloured and how a face
// is lit.
package shader

import (
	"image/color"

	"softrast/internal/geom"
	"softrast/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultColor is the flat colour of meshes without an explicit shader.
var DefaultColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Shader colours fragments and computes per-face brightness.
type Shader interface {
	// Fragment returns the colour at barycentric weights bary of a triangle
	// whose vertices carry the texture coordinates uvA, uvB and uvC.
	Fragment(bary mgl32.Vec3, uvA, uvB, uvC mgl32.Vec2) color.RGBA
	// Lighting returns the brightness in [0, 1] of a face with the given
	// world-space normal.
	Lighting(normal mgl32.Vec3, light graphics.DirectionalLight, ambient float32) float32
}

// DefaultLighting is Lambertian diffuse plus an ambient floor, clamped to [0, 1].
// A face is fully lit when its normal points against the light's direction.
func DefaultLighting(normal mgl32.Vec3, light graphics.DirectionalLight, ambient float32) float32 {
	diffuse := geom.CosineSimilarity(normal, light.Direction.Mul(-1))
	if diffuse < 0 {
		diffuse = 0
	}
	return geom.Clamp01(ambient + diffuse*light.Intensity)
}

// Scale multiplies the colour channels by brightness, clamping each to [0, 255].
// Alpha is kept.
func Scale(c color.RGBA, brightness float32) color.RGBA {
	return color.RGBA{
		R: scaleChannel(c.R, brightness),
		G: scaleChannel(c.G, brightness),
		B: scaleChannel(c.B, brightness),
		A: c.A,
	}
}

func scaleChannel(v uint8, brightness float32) uint8 {
	f := float32(v) * brightness
	switch {
	case f <= 0 || !geom.IsFinite(f):
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f + 0.5)
}

// Standard renders a flat colour with default lighting.
type Standard struct {
	Color color.RGBA
}

// NewStandard returns a flat colour shader.
func NewStandard(c color.RGBA) *Standard {
	return &Standard{Color: c}
}

func (s *Standard) Fragment(_ mgl32.Vec3, _, _, _ mgl32.Vec2) color.RGBA {
	return s.Color
}

func (s *Standard) Lighting(normal mgl32.Vec3, light graphics.DirectionalLight, ambient float32) float32 {
	return DefaultLighting(normal, light, ambient)
}

// Wireframe draws triangle edges and is unlit.
type Wireframe struct {
	Edge       color.RGBA
	Background color.RGBA
	// Thickness is the barycentric distance from an edge that still counts
	// as the edge.
	Thickness float32
}

// NewWireframe returns a wireframe shader with a black background.
func NewWireframe(edge color.RGBA, thickness float32) *Wireframe {
	return &Wireframe{
		Edge:       edge,
		Background: color.RGBA{A: 255},
		Thickness:  thickness,
	}
}

func (w *Wireframe) Fragment(bary mgl32.Vec3, _, _, _ mgl32.Vec2) color.RGBA {
	if bary[0] < w.Thickness || bary[1] < w.Thickness || bary[2] < w.Thickness {
		return w.Edge
	}
	return w.Background
}

// Lighting is always 1; wireframes are not shaded.
func (w *Wireframe) Lighting(mgl32.Vec3, graphics.DirectionalLight, float32) float32 {
	return 1
}

// TextureShader samples a texture with nearest-neighbour lookup. UVs are
// interpolated linearly in screen space.
type TextureShader struct {
	Texture *Texture
}

// NewTextureShader returns a shader sampling tex.
func NewTextureShader(tex *Texture) *TextureShader {
	return &TextureShader{Texture: tex}
}

func (s *TextureShader) Fragment(bary mgl32.Vec3, uvA, uvB, uvC mgl32.Vec2) color.RGBA {
	u := bary[0]*uvA[0] + bary[1]*uvB[0] + bary[2]*uvC[0]
	v := bary[0]*uvA[1] + bary[1]*uvB[1] + bary[2]*uvC[1]
	return s.Texture.Sample(u, v)
}

func (s *TextureShader) Lighting(normal mgl32.Vec3, light graphics.DirectionalLight, ambient float32) float32 {
	return DefaultLighting(normal, light, ambient)
}
