package glimpse

import "github.com/cogentcore/webgpu/wgpu"

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// allow the user to resize the window
	Resizable bool
}

type Window interface {
	// GetSize returns the physical size of the drawable area in pixels.
	GetSize() (uint32, uint32)

	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PollEvents processes pending window system events and returns them in the order
	// they occurred. The returned slice is owned by the caller.
	PollEvents() []Event

	// RequestRedraw asks for an EventRedraw on one of the next calls to PollEvents.
	RequestRedraw()

	Terminate()
}
