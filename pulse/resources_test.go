package pulse_test

import (
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hermit/pulse"
	"github.com/oliverbestmann/hermit/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShaderSource = `
@vertex fn vs_main(@location(0) pos: vec3<f32>) -> @builtin(position) vec4<f32> {
	return vec4<f32>(pos, 1.0);
}

@fragment fn fs_main() -> @location(0) vec4<f32> {
	return vec4<f32>(1.0);
}
`

func TestNewBufferUploadsContents(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	buf, err := pulse.NewBuffer(ctx, "Indices", []uint16{0, 1, 2}, wgpu.BufferUsageIndex)
	require.NoError(t, err)

	assert.Equal(t, uint64(6), buf.Size())
	assert.Equal(t, "Indices", buf.Label())

	require.Len(t, device.Buffers, 1)
	assert.Equal(t, wgpu.BufferUsageIndex, device.Buffers[0].Usage)
	assert.Equal(t, []byte{0, 0, 1, 0, 2, 0}, device.Buffers[0].Contents)
}

func TestUniformBufferIsWritable(t *testing.T) {
	ctx, device, queue := pulsetest.NewContext(pulse.Options{})

	value := [4]float32{1, 2, 3, 4}
	buf, err := pulse.NewUniformBuffer(ctx, "Uniform", &value)
	require.NoError(t, err)

	require.Len(t, device.Buffers, 1)
	usage := device.Buffers[0].Usage
	assert.NotZero(t, usage&wgpu.BufferUsageUniform)
	assert.NotZero(t, usage&wgpu.BufferUsageCopyDst)
	assert.Equal(t, uint64(16), buf.Size())

	value[0] = 5
	require.NoError(t, pulse.WriteValue(ctx, buf, &value))

	require.Len(t, queue.BufferWrites, 1)
	assert.Equal(t, pulse.AsByteSlice(&value), queue.BufferWrites[0].Data)
}

func TestWriteRequiresCopyDst(t *testing.T) {
	ctx, _, queue := pulsetest.NewContext(pulse.Options{})

	buf, err := pulse.NewBuffer(ctx, "Vertices", []float32{1, 2, 3}, wgpu.BufferUsageVertex)
	require.NoError(t, err)

	err = buf.Write(ctx, make([]byte, 4))
	assert.ErrorIs(t, err, pulse.ErrNotWritable)
	assert.Empty(t, queue.BufferWrites)
}

func TestWriteRejectsOversizedData(t *testing.T) {
	ctx, _, _ := pulsetest.NewContext(pulse.Options{})

	value := float32(1)
	buf, err := pulse.NewUniformBuffer(ctx, "Uniform", &value)
	require.NoError(t, err)

	assert.Error(t, buf.Write(ctx, make([]byte, 8)))
}

func TestNewShaderDefaultsEntries(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	shader, err := pulse.NewShader(ctx, "Test", testShaderSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", shader.VertexEntry())
	assert.Equal(t, "fs_main", shader.FragmentEntry())

	require.Len(t, device.Shaders, 1)
	assert.Equal(t, testShaderSource, device.Shaders[0].WGSLSource.Code)

	custom := shader.WithEntries("vertex", "fragment")
	assert.Equal(t, "vertex", custom.VertexEntry())
	assert.Equal(t, "vs_main", shader.VertexEntry())
}

func TestLoadShader(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	path := filepath.Join(t.TempDir(), "shape.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(testShaderSource), 0o644))

	shader, err := pulse.LoadShader(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "shape.wgsl", shader.Label())
	assert.Len(t, device.Shaders, 1)
}

func TestLoadShaderMissingFile(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	_, err := pulse.LoadShader(ctx, filepath.Join(t.TempDir(), "missing.wgsl"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, device.Shaders)
}

func TestDeclareLayout(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	layout, err := pulse.DeclareLayout(ctx, "Texture",
		pulse.TextureEntry(0, wgpu.ShaderStageFragment),
		pulse.SamplerEntry(1, wgpu.ShaderStageFragment),
	)
	require.NoError(t, err)
	assert.Len(t, layout.Entries(), 2)

	// declaring a layout never creates a bind group
	assert.Empty(t, device.BindGroups)

	require.Len(t, device.BindGroupLayouts, 1)
	entries := device.BindGroupLayouts[0].Entries
	require.Len(t, entries, 2)

	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, entries[0].Texture.ViewDimension)

	assert.Equal(t, uint32(1), entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[1].Sampler.Type)
}

func TestDeclareLayoutRejectsDuplicateSlots(t *testing.T) {
	ctx, _, _ := pulsetest.NewContext(pulse.Options{})

	_, err := pulse.DeclareLayout(ctx, "Broken",
		pulse.UniformEntry(0, wgpu.ShaderStageVertex),
		pulse.UniformEntry(0, wgpu.ShaderStageFragment),
	)
	assert.Error(t, err)
}

func TestMaterialize(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	layout, err := pulse.DeclareLayout(ctx, "Camera", pulse.UniformEntry(0, wgpu.ShaderStageVertex))
	require.NoError(t, err)

	value := [16]float32{}
	buf, err := pulse.NewUniformBuffer(ctx, "Camera", &value)
	require.NoError(t, err)

	set, err := pulse.Materialize(ctx, layout, "Camera", pulse.BufferResource(0, buf))
	require.NoError(t, err)
	assert.Same(t, layout, set.Layout())

	require.Len(t, device.BindGroups, 1)
	require.Len(t, device.BindGroups[0].Entries, 1)
	assert.Equal(t, uint64(wgpu.WholeSize), device.BindGroups[0].Entries[0].Size)
}

func TestMaterializeMissingSlot(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	layout, err := pulse.DeclareLayout(ctx, "Texture",
		pulse.TextureEntry(0, wgpu.ShaderStageFragment),
		pulse.SamplerEntry(1, wgpu.ShaderStageFragment),
	)
	require.NoError(t, err)

	sampler, err := ctx.Sampler(pulse.SamplerLinear)
	require.NoError(t, err)

	_, err = pulse.Materialize(ctx, layout, "Texture", pulse.SamplerResource(1, sampler))
	assert.ErrorIs(t, err, pulse.ErrMissingBinding)
	assert.Empty(t, device.BindGroups)
}

func TestMaterializeUnexpectedSlot(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	layout, err := pulse.DeclareLayout(ctx, "Sampler", pulse.SamplerEntry(0, wgpu.ShaderStageFragment))
	require.NoError(t, err)

	sampler, err := ctx.Sampler(pulse.SamplerLinear)
	require.NoError(t, err)

	// undeclared slot
	_, err = pulse.Materialize(ctx, layout, "Sampler",
		pulse.SamplerResource(0, sampler),
		pulse.SamplerResource(3, sampler),
	)
	assert.ErrorIs(t, err, pulse.ErrUnexpectedBinding)

	// wrong kind
	value := float32(0)
	buf, err := pulse.NewUniformBuffer(ctx, "Value", &value)
	require.NoError(t, err)

	_, err = pulse.Materialize(ctx, layout, "Sampler", pulse.BufferResource(0, buf))
	assert.ErrorIs(t, err, pulse.ErrUnexpectedBinding)

	assert.Empty(t, device.BindGroups)
}

func TestSamplerIsCached(t *testing.T) {
	ctx, device, _ := pulsetest.NewContext(pulse.Options{})

	first, err := ctx.Sampler(pulse.SamplerLinear)
	require.NoError(t, err)

	second, err := ctx.Sampler(pulse.SamplerLinear)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, device.Samplers, 1)
}

func TestEmptyImageIsRejected(t *testing.T) {
	ctx, device, queue := pulsetest.NewContext(pulse.Options{})

	for _, bounds := range []image.Rectangle{image.Rect(0, 0, 0, 0), image.Rect(0, 0, 16, 0), image.Rect(4, 4, 4, 8)} {
		_, err := pulse.NewTextureFromImage(ctx, "Empty", image.NewRGBA(bounds), 0)
		assert.ErrorIs(t, err, pulse.ErrEmptyTexture)
	}

	_, err := pulse.NewTexture(ctx, pulse.TextureOptions{Label: "Empty", Width: 16})
	assert.ErrorIs(t, err, pulse.ErrEmptyTexture)

	// the driver never saw any of them
	assert.Empty(t, device.Textures)
	assert.Zero(t, queue.TextureWrites)
}
