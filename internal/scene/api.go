package scene

import (
	"softrast/internal/graphics"
	"softrast/internal/mesh"
	"softrast/internal/raster"
)

// Drawable is anything the scene can rasterize during a frame.
type Drawable interface {
	Draw(r *raster.Renderer, cam *graphics.PerspectiveCamera, light graphics.DirectionalLight, ambient float32) mesh.DrawStats
}

var _ Drawable = (*mesh.Mesh)(nil)
