// Package platform presents finished framebuffers and reports window events.
package platform

import "image"

// EventKind identifies a surface event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventResized
)

// Event is produced by Surface.PollEvents. Width and Height are set for
// EventResized.
type Event struct {
	Kind          EventKind
	Width, Height int
}

// Surface is where frames end up.
type Surface interface {
	// Size returns the pixel size frames should be rendered at.
	Size() (width, height int)
	// Present shows or stores img. img is not retained after it returns.
	Present(img *image.RGBA) error
	// PollEvents returns the events that arrived since the last call.
	PollEvents() []Event
	Close()
}
