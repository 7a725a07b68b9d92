package orion

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/hermit/glimpse"
	"github.com/oliverbestmann/hermit/pulse"
)

type LoopState uint8

const (
	StateIdle LoopState = iota
	StateFrameAcquired
	StateRecordingPass
	StateSubmitted
	StatePresented
	StateTerminated
)

func (s LoopState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFrameAcquired:
		return "FrameAcquired"
	case StateRecordingPass:
		return "RecordingPass"
	case StateSubmitted:
		return "Submitted"
	case StatePresented:
		return "Presented"
	case StateTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("LoopState(%d)", uint8(s))
	}
}

// Events is the window side of the loop.
type Events interface {
	PollEvents() []glimpse.Event
	RequestRedraw()
}

// Surface is the part of the pulse.Context the loop drives.
type Surface interface {
	Resize(width, height uint32) (bool, error)
	Reconfigure() error
	AcquireFrame() (pulse.Frame, error)
}

var _ Surface = (*pulse.Context)(nil)

// Loop owns the per tick state of a running game.
type Loop struct {
	events     Events
	surface    Surface
	game       Game
	background pulse.Color

	input glimpse.InputState
	times FrameTimes

	state LoopState
	err   error
}

func NewLoop(events Events, surface Surface, game Game, background pulse.Color) *Loop {
	return &Loop{
		events:     events,
		surface:    surface,
		game:       game,
		background: background,
	}
}

func (l *Loop) State() LoopState {
	return l.state
}

// Err returns the error the loop terminated with, if any.
func (l *Loop) Err() error {
	return l.err
}

func (l *Loop) Input() *glimpse.InputState {
	return &l.input
}

func (l *Loop) FrameTimes() *FrameTimes {
	return &l.times
}

// Run ticks the loop until it terminates.
func (l *Loop) Run() error {
	for l.Tick() {
	}

	return l.err
}

// Tick runs one iteration of the loop and reports whether the loop is still running.
func (l *Loop) Tick() bool {
	if l.state == StateTerminated {
		return false
	}

	redraw, err := l.drainEvents()
	if err != nil {
		l.terminate(err)
		return false
	}

	if l.state == StateTerminated {
		return false
	}

	if !redraw {
		return true
	}

	if err := l.frame(); err != nil {
		l.terminate(err)
		return false
	}

	return true
}

// drainEvents applies all pending window events in order. It stops at the first
// event that terminates the loop.
func (l *Loop) drainEvents() (redraw bool, err error) {
	for _, ev := range l.events.PollEvents() {
		slog.Debug("Handle event", slog.Any("event", ev))

		switch ev.Kind {
		case glimpse.EventClose:
			slog.Info("Window close requested")
			l.terminate(nil)
			return false, nil

		case glimpse.EventKey:
			if ev.Key == glimpse.KeyEscape && ev.Pressed {
				slog.Info("Escape pressed")
				l.terminate(nil)
				return false, nil
			}

			l.input.Apply(ev)

		case glimpse.EventResize:
			accepted, err := l.surface.Resize(ev.Width, ev.Height)
			if err != nil {
				return false, fmt.Errorf("resize surface: %w", err)
			}

			if accepted {
				l.game.Resize(ev.Width, ev.Height)

				// draw at the new size, also if the surface was never drawn to before
				l.events.RequestRedraw()
			}

		case glimpse.EventRedraw:
			redraw = true
		}
	}

	return redraw, nil
}

func (l *Loop) frame() error {
	frame, err := l.surface.AcquireFrame()

	switch {
	case errors.Is(err, pulse.ErrSurfaceLost), errors.Is(err, pulse.ErrSurfaceOutdated):
		slog.Warn("Surface needs to be reconfigured", slog.String("err", err.Error()))

		if err := l.surface.Reconfigure(); err != nil {
			return fmt.Errorf("reconfigure surface: %w", err)
		}

		// try again on the next tick
		l.events.RequestRedraw()
		return nil

	case errors.Is(err, pulse.ErrSurfaceUnconfigured):
		// a minimized window, wait for a resize to request the next frame
		slog.Debug("Skip frame of unconfigured surface")
		return nil

	case errors.Is(err, pulse.ErrSurfaceTimeout):
		slog.Warn("Skip frame", slog.String("err", err.Error()))
		l.events.RequestRedraw()
		return nil

	case err != nil:
		return fmt.Errorf("acquire frame: %w", err)
	}

	defer frame.Release()

	l.state = StateFrameAcquired

	if err := l.game.Update(&l.input); err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	err = frame.Render(l.background, func(pass pulse.RenderPass) error {
		l.state = StateRecordingPass
		return l.game.Draw(pass)
	})

	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	l.state = StateSubmitted

	frame.Present()
	l.state = StatePresented

	l.input.NextTick()

	l.events.RequestRedraw()
	l.state = StateIdle

	if l.times.Tick() {
		slog.Debug(
			"Frame times",
			slog.Uint64("frames", l.times.FrameCount),
			slog.Duration("avg", l.times.AverageDuration),
			slog.Duration("max", l.times.MaxDuration),
			slog.Float64("fps", l.times.FPS()),
		)
	}

	return nil
}

func (l *Loop) terminate(err error) {
	if err != nil {
		slog.Error("Terminate loop", slog.String("err", err.Error()))
	}

	l.state = StateTerminated
	l.err = err
}
