package orion

import (
	"github.com/oliverbestmann/hermit/glimpse"
	"github.com/oliverbestmann/hermit/pulse"
	"github.com/oliverbestmann/hermit/pulse/shape"
)

// Game is driven by the Loop, one call of Update and Draw per presented frame.
type Game interface {
	// Resize is called once the context accepted a new surface size.
	Resize(width, height uint32)

	// Update is called after a frame was acquired, before the render pass is opened.
	Update(input *glimpse.InputState) error

	// Draw records into the open render pass of the frame.
	Draw(pass pulse.RenderPass) error
}

// DefaultGame implements every method of Game as a no-op. Embed it to only
// implement what you need.
type DefaultGame struct{}

func (DefaultGame) Resize(width, height uint32) {}

func (DefaultGame) Update(input *glimpse.InputState) error {
	return nil
}

func (DefaultGame) Draw(pass pulse.RenderPass) error {
	return nil
}

// Scene is a Game that draws its drawables in the order they were added.
type Scene struct {
	DefaultGame

	drawables []shape.Drawable
}

func (s *Scene) Add(drawables ...shape.Drawable) {
	s.drawables = append(s.drawables, drawables...)
}

func (s *Scene) Len() int {
	return len(s.drawables)
}

func (s *Scene) Draw(pass pulse.RenderPass) error {
	for _, drawable := range s.drawables {
		drawable.Draw(pass)
	}

	return nil
}
