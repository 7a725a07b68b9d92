package pulse

import "github.com/cogentcore/webgpu/wgpu"

// RenderPass is an open render pass that drawables record their commands into.
// It is only valid during the call it was handed to.
type RenderPass interface {
	SetPipeline(pipeline *Pipeline)
	SetBindGroup(slot uint32, set *BindingSet)
	SetVertexBuffer(slot uint32, buffer *Buffer)

	// SetIndexBuffer binds a buffer of uint16 indices.
	SetIndexBuffer(buffer *Buffer)

	DrawIndexed(indexCount, instanceCount uint32)
}

type encoderPass struct {
	pass *wgpu.RenderPassEncoder
}

func (p encoderPass) SetPipeline(pipeline *Pipeline) {
	p.pass.SetPipeline(pipeline.pipeline)
}

func (p encoderPass) SetBindGroup(slot uint32, set *BindingSet) {
	p.pass.SetBindGroup(slot, set.group, nil)
}

func (p encoderPass) SetVertexBuffer(slot uint32, buffer *Buffer) {
	p.pass.SetVertexBuffer(slot, buffer.buffer, 0, wgpu.WholeSize)
}

func (p encoderPass) SetIndexBuffer(buffer *Buffer) {
	p.pass.SetIndexBuffer(buffer.buffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
}

func (p encoderPass) DrawIndexed(indexCount, instanceCount uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

func (p encoderPass) End() error {
	return p.pass.End()
}

func (p encoderPass) Release() {
	p.pass.Release()
}
