package glimpse

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw must only ever be called from the main thread
	runtime.LockOSThread()
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape: KeyEscape,
	glfw.KeySpace:  KeySpace,
	glfw.KeyEnter:  KeyEnter,
	glfw.KeyW:      KeyW,
	glfw.KeyA:      KeyA,
	glfw.KeyS:      KeyS,
	glfw.KeyD:      KeyD,
	glfw.KeyQ:      KeyQ,
	glfw.KeyE:      KeyE,
	glfw.KeyUp:     KeyUp,
	glfw.KeyDown:   KeyDown,
	glfw.KeyLeft:   KeyLeft,
	glfw.KeyRight:  KeyRight,
}

type glfwWindow struct {
	win *glfw.Window

	// events collected by the callbacks since the last call to PollEvents
	events []Event

	redrawRequested bool
	closeReported   bool
}

type windowHint struct {
	hint  glfw.Hint
	value int
}

func windowHints(opts WindowOptions) []windowHint {
	resizable := glfw.False
	if opts.Resizable {
		resizable = glfw.True
	}

	return []windowHint{
		// webgpu renders into the window, no opengl context needed
		{hint: glfw.ClientAPI, value: glfw.NoAPI},
		{hint: glfw.Resizable, value: resizable},
	}
}

func NewWindow(opts WindowOptions) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	for _, hint := range windowHints(opts) {
		glfw.WindowHint(hint.hint, hint.value)
	}

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{
		win: window,

		// the first frame is drawn without waiting for the window system
		redrawRequested: true,
	}

	w.configureCallbacks()

	return w, nil
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(max(width, 0)), uint32(max(height, 0))
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) PollEvents() []Event {
	if g.redrawRequested || len(g.events) > 0 {
		glfw.PollEvents()
	} else {
		// nothing to draw, sleep until the window has something for us
		glfw.WaitEventsTimeout(0.1)
	}

	// the close callback might not fire on every platform
	if g.win.ShouldClose() && !g.closeReported {
		g.push(Event{Kind: EventClose})
	}

	if g.redrawRequested {
		g.redrawRequested = false
		g.events = append(g.events, Event{Kind: EventRedraw})
	}

	events := g.events
	g.events = nil

	return events
}

func (g *glfwWindow) RequestRedraw() {
	g.redrawRequested = true
}

func (g *glfwWindow) Terminate() {
	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) push(ev Event) {
	if ev.Kind == EventClose {
		g.closeReported = true
	}

	g.events = append(g.events, ev)
}

func (g *glfwWindow) configureCallbacks() {
	g.win.SetFramebufferSizeCallback(func(_win *glfw.Window, width int, height int) {
		g.push(ResizeEvent(uint32(max(width, 0)), uint32(max(height, 0))))
	})

	g.win.SetCloseCallback(func(_win *glfw.Window) {
		g.push(Event{Kind: EventClose})
	})

	g.win.SetRefreshCallback(func(_win *glfw.Window) {
		g.redrawRequested = true
	})

	g.win.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		g.push(KeyEvent(key, action == glfw.Press))
	})
}

func keyOf(glfwKey glfw.Key) (key Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)
	}

	return
}
