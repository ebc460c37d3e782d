// Package config holds render settings that may change while running.
package config

import (
	"image/color"
	"sync"
)

// Settings are the startup options parsed from the command line.
type Settings struct {
	Width       int
	Height      int
	ObjPath     string
	TexturePath string
	TextureMax  int
	Wireframe   bool
	FPSLimit    int
	Headless    bool
	Frames      int
	OutPath     string
	CameraZ     float64
	LogLevel    string
	Background  color.RGBA
}

// Defaults returns the settings used when no flags are given.
func Defaults() Settings {
	return Settings{
		Width:      800,
		Height:     600,
		TextureMax: 1024,
		FPSLimit:   60,
		Frames:     1,
		OutPath:    "frame.png",
		CameraZ:    10,
		LogLevel:   "info",
		Background: color.RGBA{R: 20, G: 20, B: 28, A: 255},
	}
}

// RenderSettings holds render configuration toggled at runtime
type RenderSettings struct {
	mu         sync.RWMutex
	fpsLimit   int
	wireframe  bool
	showHUD    bool
	background color.RGBA
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:   60,
	background: color.RGBA{R: 20, G: 20, B: 28, A: 255},
}

// Apply copies the runtime-mutable parts of s into the global settings.
func Apply(s Settings) {
	SetFPSLimit(s.FPSLimit)
	SetWireframe(s.Wireframe)
	if s.Background.A != 0 {
		SetBackground(s.Background)
	}
}

// GetFPSLimit returns the frame rate cap; 0 means unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}

// GetWireframe reports whether meshes are drawn with the wireframe shader
func GetWireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// SetWireframe enables or disables wireframe rendering
func SetWireframe(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = enabled
}

// ToggleWireframe flips wireframe rendering and returns the new state
func ToggleWireframe() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// GetShowHUD reports whether the statistics overlay is drawn
func GetShowHUD() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showHUD
}

// ToggleHUD flips the statistics overlay and returns the new state
func ToggleHUD() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showHUD = !globalRenderSettings.showHUD
	return globalRenderSettings.showHUD
}

// GetBackground returns the framebuffer clear colour
func GetBackground() color.RGBA {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.background
}

// SetBackground changes the framebuffer clear colour
func SetBackground(c color.RGBA) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.background = c
}
