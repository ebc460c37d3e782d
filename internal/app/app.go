// Package app runs the frame loop: poll events, animate, rasterize the
// scene, draw the overlay, present, then wait for the next frame.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"softrast/internal/config"
	"softrast/internal/hud"
	"softrast/internal/input"
	"softrast/internal/mesh"
	"softrast/internal/platform"
	"softrast/internal/profiling"
	"softrast/internal/raster"
	"softrast/internal/scene"
	"softrast/internal/shader"

	"github.com/go-gl/mathgl/mgl32"
)

// Defaults for Options.
const (
	DefaultSpin       = 0.8 // radians per second
	DefaultDollySpeed = 5   // units per second
	slowFrame         = 50 * time.Millisecond
)

// Options tune the animation and logging of an App.
type Options struct {
	// Spin is the mesh rotation speed in radians per second.
	Spin float32
	// SpinAxis defaults to a diagonal so three sides show.
	SpinAxis   mgl32.Vec3
	DollySpeed float32
	// FixedStep replaces wall-clock frame time when non-zero, which makes
	// headless output reproducible.
	FixedStep time.Duration
	// Wireframe is drawn instead of each mesh's own shader while wireframe
	// mode is on.
	Wireframe shader.Shader
	Logger    *slog.Logger
}

// App owns the renderer and drives the scene onto a surface.
type App struct {
	surface  platform.Surface
	input    *input.Manager
	scene    *scene.Scene
	renderer *raster.Renderer
	limiter  *FPSLimiter
	logger   *slog.Logger
	opts     Options

	// own shaders, restored when wireframe mode is switched off
	shaders     map[*mesh.Mesh]shader.Shader
	wireframeOn bool

	paused    bool
	lastTime  time.Time
	total     int
	frames    int
	fps       int
	fpsSince  time.Time
	lastStats mesh.DrawStats
}

// New creates an App rendering sc onto surface. im may be nil when the
// surface has no keyboard.
func New(surface platform.Surface, sc *scene.Scene, im *input.Manager, opts Options) *App {
	if opts.SpinAxis == (mgl32.Vec3{}) {
		opts.SpinAxis = mgl32.Vec3{1, 1, 0}
	}
	if opts.Wireframe == nil {
		opts.Wireframe = shader.NewWireframe(shader.DefaultColor, 0.02)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	w, h := surface.Size()
	sc.Resize(w, h)

	a := &App{
		surface:  surface,
		input:    im,
		scene:    sc,
		renderer: raster.New(w, h, config.GetBackground()),
		limiter:  NewFPSLimiter(),
		logger:   opts.Logger,
		opts:     opts,
		shaders:  make(map[*mesh.Mesh]shader.Shader),
	}
	for _, m := range sc.Meshes {
		a.shaders[m] = m.Shader
	}
	return a
}

// Renderer returns the renderer frames are drawn with.
func (a *App) Renderer() *raster.Renderer { return a.renderer }

// Paused reports whether animation is paused.
func (a *App) Paused() bool { return a.paused }

// Frames returns the number of frames presented.
func (a *App) Frames() int { return a.total }

// LastStats returns the draw statistics of the last frame.
func (a *App) LastStats() mesh.DrawStats { return a.lastStats }

// Run draws frames until the surface asks to quit, the quit action fires or
// ctx is cancelled. Present errors end the loop and are returned.
func (a *App) Run(ctx context.Context) error {
	a.lastTime = time.Now()
	a.fpsSince = a.lastTime

	for {
		if ctx.Err() != nil {
			a.logger.Info("frame loop cancelled", "frames", a.total)
			return nil
		}
		quit, err := a.Frame()
		if err != nil {
			return err
		}
		if quit {
			a.logger.Info("frame loop finished", "frames", a.total)
			return nil
		}
		a.limiter.Wait(a.paused)
	}
}

// Frame runs one iteration of the loop. It reports true when the app should
// stop; in that case nothing was drawn.
func (a *App) Frame() (bool, error) {
	profiling.ResetFrame()
	start := time.Now()
	dt := a.frameTime(start)

	for _, ev := range a.surface.PollEvents() {
		switch ev.Kind {
		case platform.EventQuit:
			return true, nil
		case platform.EventResized:
			a.resize(ev.Width, ev.Height)
		}
	}
	if a.handleInput(dt) {
		return true, nil
	}

	a.syncShaders()
	a.renderer.SetBackground(config.GetBackground())
	if !a.paused {
		a.animate(dt)
	}

	a.lastStats = a.scene.Render(a.renderer)
	if config.GetShowHUD() {
		func() { defer profiling.Track("hud.DrawStats")(); a.drawHUD() }()
	}

	var err error
	func() { defer profiling.Track("platform.Present")(); err = a.surface.Present(a.renderer.Image()) }()
	if err != nil {
		return false, fmt.Errorf("present frame %d: %w", a.total, err)
	}
	if a.input != nil {
		a.input.PostUpdate()
	}

	a.countFrame(start)
	if d := time.Since(start); d > slowFrame {
		a.logger.Debug("slow frame", "duration", d, "top", profiling.TopN(5))
	}
	return false, nil
}

func (a *App) frameTime(now time.Time) float32 {
	if a.opts.FixedStep > 0 {
		return float32(a.opts.FixedStep.Seconds())
	}
	if a.lastTime.IsZero() {
		a.lastTime = now
	}
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now
	return float32(dt)
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.renderer.Resize(width, height)
	a.scene.Resize(width, height)
	a.logger.Debug("viewport resized", "width", width, "height", height)
}

// handleInput applies this frame's actions and reports whether to quit.
func (a *App) handleInput(dt float32) bool {
	im := a.input
	if im == nil {
		return false
	}
	if im.JustPressed(input.ActionQuit) {
		return true
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		a.logger.Debug("wireframe toggled", "on", config.ToggleWireframe())
	}
	if im.JustPressed(input.ActionToggleHUD) {
		config.ToggleHUD()
	}
	if im.JustPressed(input.ActionPause) {
		a.paused = !a.paused
	}

	var dolly float32
	if im.IsActive(input.ActionDollyIn) {
		dolly--
	}
	if im.IsActive(input.ActionDollyOut) {
		dolly++
	}
	if dolly != 0 {
		a.Dolly(dolly * a.opts.DollySpeed * dt)
	}
	return false
}

// Dolly moves the camera along its view axis; negative moves closer.
func (a *App) Dolly(delta float32) {
	cam := a.scene.Camera
	cam.SetPosition(cam.Position().Add(mgl32.Vec3{0, 0, delta}))
}

// syncShaders swaps every mesh to the wireframe shader or back when the
// wireframe setting changed.
func (a *App) syncShaders() {
	on := config.GetWireframe()
	if on == a.wireframeOn {
		return
	}
	a.wireframeOn = on
	for _, m := range a.scene.Meshes {
		if _, ok := a.shaders[m]; !ok {
			a.shaders[m] = m.Shader
		}
		if on {
			m.Shader = a.opts.Wireframe
		} else {
			m.Shader = a.shaders[m]
		}
	}
}

func (a *App) animate(dt float32) {
	if a.opts.Spin == 0 {
		return
	}
	for _, m := range a.scene.Meshes {
		m.Transform.Rotate(a.opts.Spin*dt, a.opts.SpinAxis)
	}
}

func (a *App) drawHUD() {
	hud.DrawStats(a.renderer.Image(), hud.Frame{
		FPS:       a.fps,
		Stats:     a.lastStats,
		Profile:   profiling.TopN(3),
		Paused:    a.paused,
		CameraZ:   a.scene.Camera.Position().Z(),
		Wireframe: a.wireframeOn,
	})
}

func (a *App) countFrame(now time.Time) {
	a.total++
	a.frames++
	if a.fpsSince.IsZero() {
		a.fpsSince = now
	}
	if elapsed := now.Sub(a.fpsSince); elapsed >= time.Second {
		a.fps = int(float64(a.frames) / elapsed.Seconds())
		a.logger.Debug("fps", "fps", a.fps, "faces", a.lastStats.Faces, "pixels", a.lastStats.Pixels)
		a.frames = 0
		a.fpsSince = now
	}
}
