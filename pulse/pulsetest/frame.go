package pulsetest

import (
	"github.com/oliverbestmann/hermit/pulse"
)

// Frame records what a frame loop does with an acquired frame.
type Frame struct {
	Pass RenderPass

	Clear pulse.Color

	Rendered  bool
	PassEnded bool
	Presented bool
	Released  bool

	// returned by Render after drawing, if set
	SubmitErr error
}

var _ pulse.Frame = (*Frame)(nil)

func (f *Frame) Render(clear pulse.Color, draw func(pass pulse.RenderPass) error) error {
	f.Rendered = true
	f.Clear = clear

	defer func() { f.PassEnded = true }()

	if err := draw(&f.Pass); err != nil {
		return err
	}

	return f.SubmitErr
}

func (f *Frame) Present() {
	f.Presented = true
}

func (f *Frame) Release() {
	f.Released = true
}
