package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// maxBindGroups is the number of bind groups every webgpu device supports.
const maxBindGroups = 4

// VertexLayout describes the vertex buffers a pipeline consumes. Layouts are compared
// by identity, so declare them once and share the pointer.
type VertexLayout struct {
	Name    string
	Buffers []wgpu.VertexBufferLayout
}

type PipelineOptions struct {
	Label      string
	Shader     *Shader
	Vertex     *VertexLayout
	BindGroups []*BindGroupLayout

	// enable depth testing. Requires a context with depth.
	Depth bool
}

// Pipeline is an immutable render pipeline.
type Pipeline struct {
	label    string
	depth    bool
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
}

// NewPipeline builds a render pipeline using a fixed policy: triangle lists with counter
// clockwise front faces, back face culling, no multisampling and replace blending into
// a target of the surface format. Depth testing is either fully enabled or disabled.
func NewPipeline(ctx *Context, opts PipelineOptions) (*Pipeline, error) {
	if opts.Depth && !ctx.Depth() {
		return nil, fmt.Errorf("build pipeline %q: %w", opts.Label, ErrNoDepthBuffer)
	}

	if len(opts.BindGroups) > maxBindGroups {
		return nil, fmt.Errorf("build pipeline %q: %d bind groups exceed the limit of %d",
			opts.Label, len(opts.BindGroups), maxBindGroups)
	}

	slog.Info(
		"Create RenderPipeline",
		slog.String("label", opts.Label),
		slog.String("shader", opts.Shader.Label()),
		slog.Int("bindGroups", len(opts.BindGroups)),
		slog.Bool("depth", opts.Depth),
	)

	var bindGroupLayouts []*wgpu.BindGroupLayout
	for _, bgl := range opts.BindGroups {
		bindGroupLayouts = append(bindGroupLayouts, bgl.layout)
	}

	layout, err := ctx.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            opts.Label,
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout %q: %w", opts.Label, err)
	}

	pipeline, err := ctx.Device.CreateRenderPipeline(pipelineDescriptor(ctx.Format(), layout, opts))
	if err != nil {
		layout.Release()
		return nil, fmt.Errorf("build pipeline %q: %w", opts.Label, err)
	}

	p := &Pipeline{
		label:    opts.Label,
		depth:    opts.Depth,
		layout:   layout,
		pipeline: pipeline,
	}

	return p, nil
}

func pipelineDescriptor(format wgpu.TextureFormat, layout *wgpu.PipelineLayout, opts PipelineOptions) *wgpu.RenderPipelineDescriptor {
	var vertexBuffers []wgpu.VertexBufferLayout
	if opts.Vertex != nil {
		vertexBuffers = opts.Vertex.Buffers
	}

	blend := wgpu.BlendStateReplace

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  opts.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     opts.Shader.module,
			EntryPoint: opts.Shader.vertexEntry,
			Buffers:    vertexBuffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     opts.Shader.module,
			EntryPoint: opts.Shader.fragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	if opts.Depth {
		desc.DepthStencil = depthStencilState()
	}

	return desc
}

func depthStencilState() *wgpu.DepthStencilState {
	keep := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}

	return &wgpu.DepthStencilState{
		Format:            wgpu.TextureFormatDepth32Float,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      keep,
		StencilBack:       keep,
	}
}

func (p *Pipeline) Label() string {
	return p.label
}

func (p *Pipeline) Depth() bool {
	return p.depth
}

func (p *Pipeline) Release() {
	p.pipeline.Release()
	p.layout.Release()
}
