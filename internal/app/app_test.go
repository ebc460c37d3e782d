package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"softrast/internal/config"
	"softrast/internal/input"
	"softrast/internal/mesh"
	"softrast/internal/platform"
	"softrast/internal/scene"
	"softrast/internal/shader"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeSurface hands out one batch of events per poll and counts presents.
type fakeSurface struct {
	w, h      int
	batches   [][]platform.Event
	presented int
	last      image.Rectangle
	err       error
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) Present(img *image.RGBA) error {
	if s.err != nil {
		return s.err
	}
	s.presented++
	s.last = img.Bounds()
	return nil
}

func (s *fakeSurface) PollEvents() []platform.Event {
	if len(s.batches) == 0 {
		return nil
	}
	ev := s.batches[0]
	s.batches = s.batches[1:]
	return ev
}

func (s *fakeSurface) Close() {}

func unlimited(t *testing.T) {
	t.Helper()
	prev := config.GetFPSLimit()
	config.SetFPSLimit(0)
	t.Cleanup(func() { config.SetFPSLimit(prev) })
}

func newApp(surface platform.Surface, im *input.Manager, opts Options) (*App, *mesh.Mesh) {
	sc := scene.New(mgl32.Vec3{0, 0, 5}, 1, 1)
	cube := mesh.Cube(1)
	sc.Add(cube)
	opts.Logger = quiet
	return New(surface, sc, im, opts), cube
}

func TestRunHeadlessWritesLastFrame(t *testing.T) {
	unlimited(t)
	path := filepath.Join(t.TempDir(), "frame.png")
	h, err := platform.NewHeadless(64, 48, 3, path)
	if err != nil {
		t.Fatalf("NewHeadless failed: %v", err)
	}
	a, _ := newApp(h, nil, Options{Spin: DefaultSpin, FixedStep: time.Second / 60})

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if a.Frames() != 3 || h.Presented() != 3 {
		t.Errorf("Expected 3 frames, got app=%d surface=%d", a.Frames(), h.Presented())
	}
	if a.LastStats().Pixels == 0 {
		t.Errorf("Expected the cube to cover pixels, got %+v", a.LastStats())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	unlimited(t)
	s := &fakeSurface{w: 32, h: 32}
	a, _ := newApp(s, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Errorf("Expected nil error on cancel, got %v", err)
	}
	if s.presented != 0 {
		t.Errorf("Expected no frames after cancel, got %d", s.presented)
	}
}

func TestRunReturnsPresentError(t *testing.T) {
	unlimited(t)
	boom := errors.New("boom")
	a, _ := newApp(&fakeSurface{w: 16, h: 16, err: boom}, nil, Options{})
	if err := a.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped present error, got %v", err)
	}
}

func TestResizeEvent(t *testing.T) {
	s := &fakeSurface{w: 40, h: 30, batches: [][]platform.Event{{{Kind: platform.EventResized, Width: 120, Height: 90}}}}
	a, _ := newApp(s, nil, Options{})

	if quit, err := a.Frame(); quit || err != nil {
		t.Fatalf("Unexpected frame result quit=%v err=%v", quit, err)
	}
	if w, h := a.Renderer().Size(); w != 120 || h != 90 {
		t.Errorf("Expected renderer 120x90, got %dx%d", w, h)
	}
	if s.last != image.Rect(0, 0, 120, 90) {
		t.Errorf("Expected presented frame 120x90, got %v", s.last)
	}
	if w, h := a.scene.Camera.Viewport(); w != 120 || h != 90 {
		t.Errorf("Expected camera viewport 120x90, got %vx%v", w, h)
	}
}

func TestQuitEventStopsBeforeDrawing(t *testing.T) {
	s := &fakeSurface{w: 16, h: 16, batches: [][]platform.Event{{{Kind: platform.EventQuit}}}}
	a, _ := newApp(s, nil, Options{})
	quit, err := a.Frame()
	if !quit || err != nil {
		t.Errorf("Expected quit, got quit=%v err=%v", quit, err)
	}
	if s.presented != 0 {
		t.Errorf("Expected nothing presented, got %d", s.presented)
	}
}

func TestKeyActions(t *testing.T) {
	im := input.NewManager()
	a, _ := newApp(&fakeSurface{w: 16, h: 16}, im, Options{DollySpeed: 5, FixedStep: 100 * time.Millisecond})

	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	a.Frame()
	if !a.Paused() {
		t.Errorf("Expected paused after Space")
	}

	im.HandleKeyEvent(glfw.KeySpace, glfw.Release)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	before := a.scene.Camera.Position().Z()
	a.Frame()
	if got, want := a.scene.Camera.Position().Z(), before-0.5; mgl32.Abs(got-want) > 1e-4 {
		t.Errorf("Expected camera z %v after dolly, got %v", want, got)
	}

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if quit, _ := a.Frame(); !quit {
		t.Errorf("Expected Escape to quit")
	}
}

func TestWireframeToggleSwapsShaders(t *testing.T) {
	defer config.SetWireframe(config.GetWireframe())
	config.SetWireframe(false)

	wire := shader.NewWireframe(shader.DefaultColor, 0.05)
	a, cube := newApp(&fakeSurface{w: 16, h: 16}, nil, Options{Wireframe: wire})
	own := cube.Shader

	config.SetWireframe(true)
	a.Frame()
	if cube.Shader != shader.Shader(wire) {
		t.Errorf("Expected wireframe shader, got %T", cube.Shader)
	}

	config.SetWireframe(false)
	a.Frame()
	if cube.Shader != own {
		t.Errorf("Expected the mesh's own shader restored, got %T", cube.Shader)
	}
}

func TestAnimationPausedKeepsPose(t *testing.T) {
	im := input.NewManager()
	a, cube := newApp(&fakeSurface{w: 16, h: 16}, im, Options{Spin: 1, FixedStep: 500 * time.Millisecond})

	a.Frame()
	moved := cube.Transform.Rotation()
	if moved.ApproxEqual(mgl32.QuatIdent()) {
		t.Fatalf("Expected rotation after one frame")
	}

	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	a.Frame()
	if got := cube.Transform.Rotation(); !got.ApproxEqual(moved) {
		t.Errorf("Expected pose frozen while paused, got %v want %v", got, moved)
	}
}

func TestBackgroundFollowsConfig(t *testing.T) {
	defer config.SetBackground(config.GetBackground())

	a, _ := newApp(&fakeSurface{w: 64, h: 64}, nil, Options{})
	want := color.RGBA{R: 90, G: 10, B: 10, A: 255}
	config.SetBackground(want)
	a.Frame()
	if got := a.Renderer().Image().RGBAAt(0, 0); got != want {
		t.Errorf("Expected corner in the new background %v, got %v", want, got)
	}
}
