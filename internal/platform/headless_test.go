package platform

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func frame(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestHeadlessQuitsAfterFrames(t *testing.T) {
	h, err := NewHeadless(8, 6, 3, filepath.Join(t.TempDir(), "out.png"))
	if err != nil {
		t.Fatalf("NewHeadless failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if ev := h.PollEvents(); len(ev) != 0 {
			t.Fatalf("Frame %d: unexpected events %v", i, ev)
		}
		if err := h.Present(frame(color.RGBA{A: 255})); err != nil {
			t.Fatalf("Present failed: %v", err)
		}
	}
	ev := h.PollEvents()
	if len(ev) != 1 || ev[0].Kind != EventQuit {
		t.Errorf("Expected a single Quit event, got %v", ev)
	}
	if h.Presented() != 3 {
		t.Errorf("Expected 3 frames presented, got %d", h.Presented())
	}
}

func TestHeadlessWritesDecodableImage(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"png", "frame.png"},
		{"bmp", "frame.bmp"},
		{"tiff", "frame.tiff"},
	}
	want := color.RGBA{R: 200, G: 40, B: 10, A: 255}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			h, err := NewHeadless(8, 6, 1, path)
			if err != nil {
				t.Fatalf("NewHeadless failed: %v", err)
			}
			if err := h.Present(frame(want)); err != nil {
				t.Fatalf("Present failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			defer f.Close()
			img, format, err := image.Decode(f)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if format != tt.name {
				t.Errorf("Expected format %s, got %s", tt.name, format)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("Expected 8x6 image, got %v", b)
			}
			r, g, b, _ := img.At(3, 2).RGBA()
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
				t.Errorf("Expected %v, got %v", want, img.At(3, 2))
			}
		})
	}
}

func TestHeadlessRejectsUnknownExtension(t *testing.T) {
	if _, err := NewHeadless(8, 6, 1, "frame.xyz"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := NewHeadless(0, 6, 1, "frame.png"); err == nil {
		t.Errorf("Expected error for zero width")
	}
}

func TestHeadlessPresentErrorIsReturned(t *testing.T) {
	h, err := NewHeadless(8, 6, 1, filepath.Join(t.TempDir(), "missing", "frame.png"))
	if err != nil {
		t.Fatalf("NewHeadless failed: %v", err)
	}
	if err := h.Present(frame(color.RGBA{A: 255})); err == nil {
		t.Errorf("Expected write error for missing directory")
	}
}
