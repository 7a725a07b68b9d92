package orion

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/hermit/glimpse"
	"github.com/oliverbestmann/hermit/pulse"
	"github.com/pkg/profile"
)

type RunOptions struct {
	// builds the game once the context exists. This is the only field that is required
	Setup func(ctx *pulse.Context) (Game, error)

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// let the user resize the window, the surface follows the new size
	Resizable bool

	// create a depth buffer, cleared to 1.0 every frame
	Depth bool

	// clear color of every frame, defaults to pulse.ColorBackground
	Background *pulse.Color
}

func (opts RunOptions) withDefaults() RunOptions {
	if opts.WindowWidth == 0 {
		opts.WindowWidth = 800
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 800
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Hermit"
	}

	if opts.Background == nil {
		background := pulse.ColorBackground
		opts.Background = &background
	}

	return opts
}

func (opts RunOptions) windowOptions() glimpse.WindowOptions {
	return glimpse.WindowOptions{
		Width:     opts.WindowWidth,
		Height:    opts.WindowHeight,
		Title:     opts.WindowTitle,
		Resizable: opts.Resizable,
	}
}

// Run opens a window, creates the gpu context and runs the game until the window
// is closed. Startup failures are returned, as is a fatal error of the frame loop.
func Run(opts RunOptions) error {
	if opts.Setup == nil {
		return errors.New("Setup must not be nil")
	}

	opts = opts.withDefaults()

	if prof := startProfile(os.Getenv("HERMIT_PROFILE")); prof != nil {
		defer prof.Stop()
	}

	// create a new window
	win, err := glimpse.NewWindow(opts.windowOptions())
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	ctxOpts := pulse.OptionsFromEnv()
	ctxOpts.Depth = opts.Depth

	width, height := win.GetSize()

	// initialize the webgpu device
	ctx, err := pulse.New(win.SurfaceDescriptor(), width, height, ctxOpts)
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer ctx.Release()

	game, err := opts.Setup(ctx)
	if err != nil {
		return fmt.Errorf("setup game: %w", err)
	}

	if releaser, ok := game.(pulse.Releaser); ok {
		defer releaser.Release()
	}

	slog.Info("Start loop",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Bool("depth", opts.Depth),
	)

	loop := NewLoop(win, ctx, game, *opts.Background)
	return loop.Run()
}

type stopper interface {
	Stop()
}

func startProfile(mode string) stopper {
	switch mode {
	case "":
		return nil

	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)

	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)

	default:
		slog.Warn("Unknown profile mode", slog.String("mode", mode))
		return nil
	}
}
