package pulse_test

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hermit/pulse"
	"github.com/oliverbestmann/hermit/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVertexLayout = &pulse.VertexLayout{
	Name: "Position",
	Buffers: []wgpu.VertexBufferLayout{
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		},
	},
}

func TestPipelineFixedPolicy(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	shader, err := pulse.NewShader(ctx, "Test", testShaderSource)
	require.NoError(t, err)

	pipeline, err := pulse.NewPipeline(ctx, pulse.PipelineOptions{
		Label:  "Test",
		Shader: shader,
		Vertex: testVertexLayout,
	})
	require.NoError(t, err)
	assert.False(t, pipeline.Depth())

	require.Len(t, device.Pipelines, 1)
	desc := device.Pipelines[0]

	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, desc.Primitive.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, desc.Primitive.FrontFace)
	assert.Equal(t, wgpu.CullModeBack, desc.Primitive.CullMode)
	assert.Equal(t, uint32(1), desc.Multisample.Count)
	assert.Equal(t, uint32(0xFFFFFFFF), desc.Multisample.Mask)
	assert.False(t, desc.Multisample.AlphaToCoverageEnabled)

	assert.Equal(t, "vs_main", desc.Vertex.EntryPoint)
	assert.Equal(t, testVertexLayout.Buffers, desc.Vertex.Buffers)

	require.NotNil(t, desc.Fragment)
	assert.Equal(t, "fs_main", desc.Fragment.EntryPoint)
	require.Len(t, desc.Fragment.Targets, 1)

	target := desc.Fragment.Targets[0]
	assert.Equal(t, ctx.Format(), target.Format)
	assert.Equal(t, wgpu.ColorWriteMaskAll, target.WriteMask)
	require.NotNil(t, target.Blend)
	assert.Equal(t, wgpu.BlendStateReplace, *target.Blend)

	assert.Nil(t, desc.DepthStencil)
}

func TestPipelineDepthIsFullyConfigured(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{Depth: true})

	shader, err := pulse.NewShader(ctx, "Test", testShaderSource)
	require.NoError(t, err)

	pipeline, err := pulse.NewPipeline(ctx, pulse.PipelineOptions{
		Label:  "Test",
		Shader: shader,
		Vertex: testVertexLayout,
		Depth:  true,
	})
	require.NoError(t, err)
	assert.True(t, pipeline.Depth())

	require.Len(t, device.Pipelines, 1)
	depth := device.Pipelines[0].DepthStencil

	require.NotNil(t, depth)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, depth.Format)
	assert.Equal(t, wgpu.CompareFunctionLess, depth.DepthCompare)
	assert.True(t, depth.DepthWriteEnabled)
}

func TestPipelineDepthNeedsDepthContext(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	shader, err := pulse.NewShader(ctx, "Test", testShaderSource)
	require.NoError(t, err)

	_, err = pulse.NewPipeline(ctx, pulse.PipelineOptions{
		Label:  "Test",
		Shader: shader,
		Depth:  true,
	})

	assert.ErrorIs(t, err, pulse.ErrNoDepthBuffer)
	assert.Empty(t, device.Pipelines)
}

func TestPipelineBindGroupLayouts(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	shader, err := pulse.NewShader(ctx, "Test", testShaderSource)
	require.NoError(t, err)

	texture, err := pulse.DeclareLayout(ctx, "Texture",
		pulse.TextureEntry(0, wgpu.ShaderStageFragment),
		pulse.SamplerEntry(1, wgpu.ShaderStageFragment),
	)
	require.NoError(t, err)

	camera, err := pulse.DeclareLayout(ctx, "Camera", pulse.UniformEntry(0, wgpu.ShaderStageVertex))
	require.NoError(t, err)

	_, err = pulse.NewPipeline(ctx, pulse.PipelineOptions{
		Label:      "Test",
		Shader:     shader,
		Vertex:     testVertexLayout,
		BindGroups: []*pulse.BindGroupLayout{texture, camera},
	})
	require.NoError(t, err)

	require.Len(t, device.PipelineLayouts, 1)
	assert.Len(t, device.PipelineLayouts[0].BindGroupLayouts, 2)
}

func TestPipelineCacheSharesPipelines(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})
	cache := pulse.NewPipelineCache(ctx)

	shader, err := pulse.NewShader(ctx, "Test", testShaderSource)
	require.NoError(t, err)

	opts := pulse.PipelineOptions{Label: "First", Shader: shader, Vertex: testVertexLayout}

	first, err := cache.Get(opts)
	require.NoError(t, err)

	opts.Label = "Second"
	second, err := cache.Get(opts)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "First", second.Label())
	assert.Len(t, device.Pipelines, 1)

	// a different bind group layout is a different pipeline
	camera, err := pulse.DeclareLayout(ctx, "Camera", pulse.UniformEntry(0, wgpu.ShaderStageVertex))
	require.NoError(t, err)

	opts.BindGroups = []*pulse.BindGroupLayout{camera}
	third, err := cache.Get(opts)
	require.NoError(t, err)

	assert.NotSame(t, first, third)
	assert.Len(t, device.Pipelines, 2)
	assert.Equal(t, 2, cache.Len())
}

func TestPipelineCacheKeepsEvictedPipelinesAlive(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})
	cache := pulse.NewPipelineCacheWithSize(ctx, 1)

	shader, err := pulse.NewShader(ctx, "Test", testShaderSource)
	require.NoError(t, err)

	first, err := cache.Get(pulse.PipelineOptions{Label: "First", Shader: shader, Vertex: testVertexLayout})
	require.NoError(t, err)

	camera, err := pulse.DeclareLayout(ctx, "Camera", pulse.UniformEntry(0, wgpu.ShaderStageVertex))
	require.NoError(t, err)

	second, err := cache.Get(pulse.PipelineOptions{
		Label:      "Second",
		Shader:     shader,
		Vertex:     testVertexLayout,
		BindGroups: []*pulse.BindGroupLayout{camera},
	})
	require.NoError(t, err)

	// the first pipeline was pushed out of the cache, but a mesh might still draw with it
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, []*pulse.Pipeline{first}, cache.Retired())
	assert.NotSame(t, first, second)

	// asking for it again builds a new one
	again, err := cache.Get(pulse.PipelineOptions{Label: "Again", Shader: shader, Vertex: testVertexLayout})
	require.NoError(t, err)

	assert.NotSame(t, first, again)
	assert.Len(t, device.Pipelines, 3)
	assert.Equal(t, []*pulse.Pipeline{first, second}, cache.Retired())
}
