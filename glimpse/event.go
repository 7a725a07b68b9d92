package glimpse

import "log/slog"

type EventKind uint8

const (
	// EventResize reports the new physical size of the window in pixels.
	EventResize EventKind = iota + 1

	// EventKey reports a key press or release.
	EventKey

	// EventClose is emitted when the user asks to close the window.
	EventClose

	// EventRedraw is emitted when the window wants a new frame.
	EventRedraw
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "Resize"
	case EventKey:
		return "Key"
	case EventClose:
		return "Close"
	case EventRedraw:
		return "Redraw"
	default:
		return "Unknown"
	}
}

type Event struct {
	Kind EventKind

	// set for EventResize
	Width, Height uint32

	// set for EventKey
	Key     Key
	Pressed bool
}

func ResizeEvent(width, height uint32) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

func KeyEvent(key Key, pressed bool) Event {
	return Event{Kind: EventKey, Key: key, Pressed: pressed}
}

func (e Event) LogValue() slog.Value {
	switch e.Kind {
	case EventResize:
		return slog.GroupValue(
			slog.String("kind", e.Kind.String()),
			slog.Int("width", int(e.Width)),
			slog.Int("height", int(e.Height)),
		)

	case EventKey:
		return slog.GroupValue(
			slog.String("kind", e.Kind.String()),
			slog.String("key", e.Key.String()),
			slog.Bool("pressed", e.Pressed),
		)

	default:
		return slog.GroupValue(slog.String("kind", e.Kind.String()))
	}
}
