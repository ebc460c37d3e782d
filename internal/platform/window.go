package platform

import (
	"fmt"
	"image"
	"strings"

	"softrast/internal/input"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// The fullscreen triangle is generated from gl_VertexID. Texture row 0 holds
// the top image row, so v is flipped.
const blitVertexShader = `#version 410 core
out vec2 uv;
void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	uv = vec2(p.x, 1.0 - p.y);
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

const blitFragmentShader = `#version 410 core
in vec2 uv;
uniform sampler2D frame;
out vec4 color;
void main() {
	color = texture(frame, uv);
}
` + "\x00"

// Window shows frames in a GLFW window by uploading them into a texture and
// drawing it over the whole viewport. glfw.Init must have been called, and
// every method must run on the main thread.
type Window struct {
	win    *glfw.Window
	input  *input.Manager
	events []Event

	program uint32
	vao     uint32
	texture uint32
	texW    int
	texH    int
}

// NewWindow opens a width x height window with an OpenGL 4.1 core context.
// Key events are forwarded to im when it is non-nil.
func NewWindow(title string, width, height int, im *input.Manager) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}
	// Frame pacing is done by the app's FPS limiter.
	glfw.SwapInterval(0)

	w := &Window{win: win, input: im}
	if err := w.initBlit(); err != nil {
		win.Destroy()
		return nil, err
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if w.input != nil {
			w.input.HandleKeyEvent(key, action)
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		if fbWidth == 0 || fbHeight == 0 {
			// minimized
			return
		}
		w.events = append(w.events, Event{Kind: EventResized, Width: fbWidth, Height: fbHeight})
	})

	return w, nil
}

func (w *Window) initBlit() error {
	program, err := compileProgram(blitVertexShader, blitFragmentShader)
	if err != nil {
		return err
	}
	w.program = program

	// Core profile refuses to draw without a bound vertex array.
	gl.GenVertexArrays(1, &w.vao)

	gl.GenTextures(1, &w.texture)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.UseProgram(w.program)
	gl.Uniform1i(gl.GetUniformLocation(w.program, gl.Str("frame\x00")), 0)
	return nil
}

// Size returns the framebuffer size in pixels, which differs from the window
// size on high-DPI displays.
func (w *Window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

// Present uploads img and swaps buffers.
func (w *Window) Present(img *image.RGBA) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}
	if img.Stride != 4*width {
		return fmt.Errorf("present: stride %d does not match width %d", img.Stride, width)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if width != w.texW || height != w.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		w.texW, w.texH = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	fbW, fbH := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	w.win.SwapBuffers()
	return nil
}

// PollEvents pumps the GLFW queue and returns resize and close events.
func (w *Window) PollEvents() []Event {
	glfw.PollEvents()
	if w.win.ShouldClose() {
		w.events = append(w.events, Event{Kind: EventQuit})
	}
	events := w.events
	w.events = nil
	return events
}

// Close releases the GL objects and destroys the window.
func (w *Window) Close() {
	gl.DeleteTextures(1, &w.texture)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.program)
	w.win.Destroy()
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link blit program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}
