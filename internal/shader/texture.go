package shader

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyTexture is returned when a decoded image has no pixels.
var ErrEmptyTexture = errors.New("texture has no pixels")

// Texture is a decoded image as flat row-major RGB bytes.
type Texture struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewTexture converts any image into an RGB texture.
func NewTexture(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyTexture
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	tex := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, b.Dx()*b.Dy()*3),
	}
	for i, j := 0, 0; i < len(rgba.Pix); i, j = i+4, j+3 {
		tex.Pix[j] = rgba.Pix[i]
		tex.Pix[j+1] = rgba.Pix[i+1]
		tex.Pix[j+2] = rgba.Pix[i+2]
	}
	return tex, nil
}

// DecodeTexture decodes a PNG, JPEG, GIF, BMP, TIFF or WebP stream.
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return NewTexture(img)
}

// LoadTexture reads a texture from disk. When maxSize > 0 and a side is
// larger, the image is downsampled to fit, keeping its aspect ratio.
func LoadTexture(path string, maxSize int) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return NewTexture(fitImage(img, maxSize))
}

func fitImage(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Checkerboard builds a size x size texture of cells x cells squares.
func Checkerboard(size, cells int, a, b color.RGBA) *Texture {
	if size < 1 {
		size = 1
	}
	if cells < 1 {
		cells = 1
	}
	tex := &Texture{Width: size, Height: size, Pix: make([]uint8, size*size*3)}
	cell := max(1, size/cells)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			i := (y*size + x) * 3
			tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2] = c.R, c.G, c.B
		}
	}
	return tex
}

// Sample returns the texel nearest to (u, v). u and v are expected in [0, 1]
// with v = 0 at the top row; indices are clamped to the texture.
func (t *Texture) Sample(u, v float32) color.RGBA {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return color.RGBA{A: 255}
	}
	x := clampIndex(u*float32(t.Width), t.Width)
	y := clampIndex(v*float32(t.Height), t.Height)
	i := (y*t.Width + x) * 3
	if i+2 >= len(t.Pix) {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2], A: 255}
}

func clampIndex(f float32, n int) int {
	if !(f > 0) { // also catches NaN
		return 0
	}
	i := int(f)
	if i >= n {
		return n - 1
	}
	return i
}
