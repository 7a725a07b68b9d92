// Package pulsetest provides recording fakes for the gpu facing interfaces of pulse.
// The fakes hand out zero value wgpu handles, which must never be used with the
// real driver and must never be released.
package pulsetest

import (
	"bytes"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hermit/pulse"
)

// Device records every descriptor it is asked to create a resource from.
type Device struct {
	Buffers          []wgpu.BufferInitDescriptor
	Shaders          []wgpu.ShaderModuleDescriptor
	BindGroupLayouts []wgpu.BindGroupLayoutDescriptor
	BindGroups       []wgpu.BindGroupDescriptor
	PipelineLayouts  []wgpu.PipelineLayoutDescriptor
	Pipelines        []wgpu.RenderPipelineDescriptor
	Textures         []wgpu.TextureDescriptor
	Samplers         []wgpu.SamplerDescriptor

	// if set, every create call fails with this error
	Err error
}

var _ pulse.Device = (*Device)(nil)

func (d *Device) CreateBufferInit(descriptor *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	desc := *descriptor
	desc.Contents = bytes.Clone(desc.Contents)
	d.Buffers = append(d.Buffers, desc)

	return &wgpu.Buffer{}, nil
}

func (d *Device) CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	d.Shaders = append(d.Shaders, *descriptor)
	return &wgpu.ShaderModule{}, nil
}

func (d *Device) CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	d.BindGroupLayouts = append(d.BindGroupLayouts, *descriptor)
	return &wgpu.BindGroupLayout{}, nil
}

func (d *Device) CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	d.BindGroups = append(d.BindGroups, *descriptor)
	return &wgpu.BindGroup{}, nil
}

func (d *Device) CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	d.PipelineLayouts = append(d.PipelineLayouts, *descriptor)
	return &wgpu.PipelineLayout{}, nil
}

func (d *Device) CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	d.Pipelines = append(d.Pipelines, *descriptor)
	return &wgpu.RenderPipeline{}, nil
}

func (d *Device) CreateTexture(descriptor *wgpu.TextureDescriptor) (*wgpu.Texture, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	d.Textures = append(d.Textures, *descriptor)
	return &wgpu.Texture{}, nil
}

func (d *Device) CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	d.Samplers = append(d.Samplers, *descriptor)
	return &wgpu.Sampler{}, nil
}

type BufferWrite struct {
	Buffer *wgpu.Buffer
	Offset uint64
	Data   []byte
}

// Queue records buffer and texture writes.
type Queue struct {
	BufferWrites  []BufferWrite
	TextureWrites int
}

var _ pulse.Queue = (*Queue)(nil)

func (q *Queue) WriteBuffer(buffer *wgpu.Buffer, bufferOffset uint64, data []byte) error {
	q.BufferWrites = append(q.BufferWrites, BufferWrite{
		Buffer: buffer,
		Offset: bufferOffset,
		Data:   bytes.Clone(data),
	})

	return nil
}

func (q *Queue) WriteTexture(destination *wgpu.TexelCopyTextureInfo, data []byte, dataLayout *wgpu.TexelCopyBufferLayout, writeSize *wgpu.Extent3D) error {
	q.TextureWrites++
	return nil
}

// NewContext returns an offscreen context backed by a recording Device and Queue.
func NewContext(opts pulse.Options) (*pulse.Context, *Device, *Queue) {
	device := &Device{}
	queue := &Queue{}

	ctx := pulse.NewOffscreen(device, queue, wgpu.TextureFormatBGRA8UnormSrgb, opts)

	return ctx, device, queue
}
