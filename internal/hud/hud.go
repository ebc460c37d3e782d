// Package hud draws text overlays onto the CPU framebuffer after the scene
// has been rasterized.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"softrast/internal/mesh"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	margin     = 6
	lineHeight = 15
)

var face = basicfont.Face7x13

// DrawText draws text with its top-left corner at (x, y).
func DrawText(dst *image.RGBA, x, y int, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

// MeasureText returns the pixel width of text.
func MeasureText(text string) int {
	return font.MeasureString(face, text).Ceil()
}

// Frame is the data shown by DrawStats.
type Frame struct {
	FPS       int
	Stats     mesh.DrawStats
	Profile   string
	Paused    bool
	CameraZ   float32
	Wireframe bool
}

// Lines formats f as the overlay text, one entry per line.
func (f Frame) Lines() []string {
	mode := "shaded"
	if f.Wireframe {
		mode = "wireframe"
	}
	lines := []string{
		fmt.Sprintf("fps %d  %s", f.FPS, mode),
		fmt.Sprintf("faces %d  culled %d  pixels %d", f.Stats.Faces, f.Stats.Culled, f.Stats.Pixels),
		fmt.Sprintf("camera z %.1f", f.CameraZ),
	}
	if f.Profile != "" {
		lines = append(lines, f.Profile)
	}
	if f.Paused {
		lines = append(lines, "paused")
	}
	return lines
}

// DrawStats draws f in the top-left corner on a translucent panel.
func DrawStats(dst *image.RGBA, f Frame) {
	lines := f.Lines()
	width := 0
	for _, l := range lines {
		width = max(width, MeasureText(l))
	}
	panel := image.Rect(0, 0, width+2*margin, len(lines)*lineHeight+2*margin).Intersect(dst.Bounds())
	draw.Draw(dst, panel, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	for i, l := range lines {
		DrawText(dst, margin, margin+i*lineHeight, l, color.RGBA{R: 230, G: 230, B: 230, A: 255})
	}
}
