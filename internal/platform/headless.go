package platform

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

type encoder func(io.Writer, image.Image) error

var encoders = map[string]encoder{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	".tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
}

// Headless renders at a fixed size without a window. After the configured
// number of frames it writes the last one to disk and asks to quit.
type Headless struct {
	width, height int
	frames        int
	presented     int
	path          string
	encode        encoder
}

// NewHeadless returns a surface that stops after frames presents. The image
// format is chosen from the extension of path (.png, .bmp, .tif, .tiff).
func NewHeadless(width, height, frames int, path string) (*Headless, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("headless surface %dx%d: size must be positive", width, height)
	}
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("output %q: %w", path, ErrUnsupportedFormat)
	}
	return &Headless{
		width:  width,
		height: height,
		frames: max(frames, 1),
		path:   path,
		encode: enc,
	}, nil
}

// Size returns the fixed render size.
func (h *Headless) Size() (int, int) { return h.width, h.height }

// Presented returns how many frames have been presented.
func (h *Headless) Presented() int { return h.presented }

// Present counts the frame and writes it out when it is the last one.
func (h *Headless) Present(img *image.RGBA) error {
	h.presented++
	if h.presented != h.frames {
		return nil
	}
	return h.write(img)
}

func (h *Headless) write(img *image.RGBA) error {
	f, err := os.Create(h.path)
	if err != nil {
		return fmt.Errorf("create frame output: %w", err)
	}
	if err := h.encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", h.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", h.path, err)
	}
	return nil
}

// PollEvents reports Quit once every frame has been presented.
func (h *Headless) PollEvents() []Event {
	if h.presented >= h.frames {
		return []Event{{Kind: EventQuit}}
	}
	return nil
}

func (h *Headless) Close() {}
