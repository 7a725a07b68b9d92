package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is an acquired presentable image.
type Frame interface {
	// Render opens exactly one render pass on the frame, clearing color to the given
	// value and depth to 1.0, lets draw record into it and submits the result.
	// The pass is ended before Render returns, even if draw fails or panics.
	Render(clear Color, draw func(pass RenderPass) error) error

	// Present shows the frame on screen.
	Present()

	// Release frees the frame. Must be called exactly once, presented or not.
	Release()
}

type surfaceFrame struct {
	ctx     *Context
	texture *wgpu.Texture
	view    *wgpu.TextureView

	presented bool
}

func (f *surfaceFrame) Render(clear Color, draw func(pass RenderPass) error) error {
	enc, err := f.ctx.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Frame",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	desc := &wgpu.RenderPassDescriptor{
		Label: "Frame",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       f.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear.ToWGPU(),
			},
		},
	}

	if f.ctx.depth != nil {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            f.ctx.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}

	if err := recordPass(encoderPass{pass: enc.BeginRenderPass(desc)}, draw); err != nil {
		return err
	}

	// encode into a command buffer
	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "Frame"})
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer buf.Release()

	f.ctx.queue.Submit(buf)

	return nil
}

// passEncoder is an open render pass that needs to be ended and released.
type passEncoder interface {
	RenderPass
	End() error
	Release()
}

func recordPass(pass passEncoder, draw func(pass RenderPass) error) error {
	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	// the pass must be ended on every path, also if draw panics
	ended := false
	defer func() {
		if !ended {
			_ = pass.End()
		}
	}()

	drawErr := draw(pass)

	ended = true
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
	passGuard.Release()

	if drawErr != nil {
		return fmt.Errorf("record draw commands: %w", drawErr)
	}

	return nil
}

func (f *surfaceFrame) Present() {
	f.ctx.surface.Present()
	f.presented = true
}

func (f *surfaceFrame) Release() {
	f.view.Release()

	// a presented texture belongs to the surface again
	if !f.presented {
		f.texture.Release()
	}
}
