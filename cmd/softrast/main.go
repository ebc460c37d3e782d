// Command softrast renders a mesh on the CPU and shows it in a window, or
// writes frames to an image file with -headless.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"softrast/internal/app"
	"softrast/internal/config"
	"softrast/internal/input"
	"softrast/internal/mesh"
	"softrast/internal/platform"
	"softrast/internal/scene"
	"softrast/internal/shader"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	settings := parseFlags(os.Args[1:])
	logger := newLogger(settings.LogLevel)
	slog.SetDefault(logger)

	defer closer.Close()
	config.Apply(settings)

	sc, err := buildScene(settings)
	if err != nil {
		closer.Fatalln("softrast: load scene:", err)
	}

	opts := app.Options{
		Spin:       app.DefaultSpin,
		DollySpeed: app.DefaultDollySpeed,
		Logger:     logger,
	}
	surface, im, err := openSurface(settings, &opts)
	if err != nil {
		closer.Fatalln("softrast:", err)
	}
	closer.Bind(surface.Close)

	logger.Info("rendering",
		"meshes", len(sc.Meshes),
		"width", settings.Width,
		"height", settings.Height,
		"headless", settings.Headless,
	)

	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)
	if err := app.New(surface, sc, im, opts).Run(ctx); err != nil {
		closer.Fatalln("softrast:", err)
	}
	if settings.Headless {
		logger.Info("frame written", "path", settings.OutPath)
	}
}

func parseFlags(args []string) config.Settings {
	s := config.Defaults()
	fs := flag.NewFlagSet("softrast", flag.ExitOnError)
	fs.IntVar(&s.Width, "width", s.Width, "framebuffer width in pixels")
	fs.IntVar(&s.Height, "height", s.Height, "framebuffer height in pixels")
	fs.StringVar(&s.ObjPath, "obj", s.ObjPath, "Wavefront OBJ file to render (default: a cube)")
	fs.StringVar(&s.TexturePath, "texture", s.TexturePath, "image to texture the mesh with")
	fs.IntVar(&s.TextureMax, "texture-max", s.TextureMax, "downsample textures larger than this")
	fs.BoolVar(&s.Wireframe, "wireframe", s.Wireframe, "start in wireframe mode")
	fs.IntVar(&s.FPSLimit, "fps", s.FPSLimit, "frame rate cap, 0 for unlimited")
	fs.BoolVar(&s.Headless, "headless", s.Headless, "render without a window and write the last frame to -out")
	fs.IntVar(&s.Frames, "frames", s.Frames, "frames to render in headless mode")
	fs.StringVar(&s.OutPath, "out", s.OutPath, "headless output image (.png, .bmp, .tiff)")
	fs.Float64Var(&s.CameraZ, "camera-z", s.CameraZ, "initial camera distance along +Z")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "debug, info, warn or error")
	fs.Func("background", "clear colour as #rrggbb (default #14141c)", func(v string) error {
		c, err := parseHexColor(v)
		if err != nil {
			return err
		}
		s.Background = c
		return nil
	})
	fs.Parse(args)
	return s
}

func parseHexColor(v string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	if _, err := fmt.Sscanf(strings.TrimPrefix(v, "#"), "%2x%2x%2x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", v, err)
	}
	return c, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func buildScene(s config.Settings) (*scene.Scene, error) {
	sc := scene.New(mgl32.Vec3{0, 0, float32(s.CameraZ)}, s.Width, s.Height)

	var m *mesh.Mesh
	if s.ObjPath != "" {
		loaded, err := mesh.LoadOBJ(s.ObjPath)
		if err != nil {
			return nil, err
		}
		m = loaded
	} else {
		m = mesh.Cube(2)
		m.Shader = shader.NewTextureShader(shader.Checkerboard(256, 8,
			color.RGBA{R: 230, G: 120, B: 40, A: 255},
			color.RGBA{R: 40, G: 40, B: 50, A: 255}))
	}

	if s.TexturePath != "" {
		tex, err := shader.GetTexture(s.TexturePath, s.TextureMax)
		if err != nil {
			return nil, err
		}
		m.Shader = shader.NewTextureShader(tex)
	}

	sc.Add(m)
	return sc, nil
}

// openSurface returns the headless writer or a GLFW window. Headless runs use
// a fixed time step and no frame cap.
func openSurface(s config.Settings, opts *app.Options) (platform.Surface, *input.Manager, error) {
	if s.Headless {
		h, err := platform.NewHeadless(s.Width, s.Height, s.Frames, s.OutPath)
		if err != nil {
			return nil, nil, err
		}
		opts.FixedStep = time.Second / 60
		config.SetFPSLimit(0)
		return h, nil, nil
	}

	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("init glfw: %w", err)
	}
	closer.Bind(glfw.Terminate)

	im := input.NewManager()
	w, err := platform.NewWindow("softrast", s.Width, s.Height, im)
	if err != nil {
		return nil, nil, err
	}
	return w, im, nil
}
