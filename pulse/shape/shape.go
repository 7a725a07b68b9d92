package shape

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hermit/pulse"
)

var (
	ErrIndexCount = errors.New("index count must be a non-zero multiple of three")
	ErrIndexRange = errors.New("index out of range")

	// ErrLayout is returned if the options do not fit the vertex layout or binding slots.
	ErrLayout = errors.New("invalid shape layout")
)

var (
	triangleIndices  = []uint16{0, 1, 2}
	rectangleIndices = []uint16{0, 2, 1, 0, 3, 2}
)

// Drawable records its draw commands into an open render pass. The pass outlives
// the call, the drawable outlives the pass.
type Drawable interface {
	Draw(pass pulse.RenderPass)
}

type Options struct {
	Label string

	// texture binding set at slot 0
	Texture *pulse.BindingSet

	// further binding sets at slots 1 to n. Requires a Texture at slot 0.
	Groups []*pulse.BindingSet

	// per instance data bound at vertex buffer slot 1
	Instances *pulse.Buffer

	// number of instances to draw, defaults to one
	InstanceCount uint32

	// vertex layout to use instead of VertexLayout. Must describe the instance
	// buffer as its second buffer if Instances is set.
	Layout *pulse.VertexLayout

	// draw with depth testing
	Depth bool
}

// mesh is the indexed geometry every shape is built from.
type mesh struct {
	pipeline *pulse.Pipeline

	vertices *pulse.Buffer
	indices  *pulse.Buffer

	indexData     []uint16
	instances     *pulse.Buffer
	instanceCount uint32

	bindings []*pulse.BindingSet
}

func newMesh(ctx *pulse.Context, cache *pulse.PipelineCache, shader *pulse.Shader, kind string, vertices []Vertex, indices []uint16, opts *Options) (*mesh, error) {
	if opts == nil {
		opts = &Options{}
	}

	label := opts.Label
	if label == "" {
		label = kind
	}

	if err := validateIndices(len(vertices), indices); err != nil {
		return nil, fmt.Errorf("create %s %q: %w", kind, label, err)
	}

	layout := opts.Layout
	if layout == nil {
		layout = VertexLayout
	}

	if opts.Instances != nil && len(layout.Buffers) < 2 {
		return nil, fmt.Errorf("create %s %q: instances need a second vertex buffer: %w", kind, label, ErrLayout)
	}

	if opts.Instances == nil && len(layout.Buffers) > 1 {
		return nil, fmt.Errorf("create %s %q: layout %q expects an instance buffer: %w", kind, label, layout.Name, ErrLayout)
	}

	if len(opts.Groups) > 0 && opts.Texture == nil {
		return nil, fmt.Errorf("create %s %q: groups start at slot 1, slot 0 needs a texture: %w", kind, label, ErrLayout)
	}

	var bindings []*pulse.BindingSet
	if opts.Texture != nil {
		bindings = append(bindings, opts.Texture)
	}

	bindings = append(bindings, opts.Groups...)

	// the pipeline is derived from the sets we bind, so they always match
	var bindGroups []*pulse.BindGroupLayout
	for _, set := range bindings {
		bindGroups = append(bindGroups, set.Layout())
	}

	pipeline, err := cache.Get(pulse.PipelineOptions{
		Label:      label,
		Shader:     shader,
		Vertex:     layout,
		BindGroups: bindGroups,
		Depth:      opts.Depth,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", kind, label, err)
	}

	bufVertices, err := pulse.NewBuffer(ctx, label+".Vertices", vertices, wgpu.BufferUsageVertex)
	if err != nil {
		return nil, err
	}

	bufIndices, err := pulse.NewBuffer(ctx, label+".Indices", paddedIndices(indices), wgpu.BufferUsageIndex)
	if err != nil {
		bufVertices.Release()
		return nil, err
	}

	instanceCount := opts.InstanceCount
	if instanceCount == 0 {
		instanceCount = 1
	}

	m := &mesh{
		pipeline:      pipeline,
		vertices:      bufVertices,
		indices:       bufIndices,
		indexData:     slices.Clone(indices),
		instances:     opts.Instances,
		instanceCount: instanceCount,
		bindings:      bindings,
	}

	return m, nil
}

func validateIndices(vertexCount int, indices []uint16) error {
	if len(indices) == 0 || len(indices)%3 != 0 {
		return fmt.Errorf("got %d indices: %w", len(indices), ErrIndexCount)
	}

	for _, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d with %d vertices: %w", idx, vertexCount, ErrIndexRange)
		}
	}

	return nil
}

// paddedIndices pads the index data to a multiple of four bytes, as required
// for buffer copies. The padding is never drawn.
func paddedIndices(indices []uint16) []uint16 {
	if len(indices)%2 == 0 {
		return indices
	}

	return append(slices.Clone(indices), 0)
}

func (m *mesh) Draw(pass pulse.RenderPass) {
	pass.SetPipeline(m.pipeline)

	for slot, set := range m.bindings {
		pass.SetBindGroup(uint32(slot), set)
	}

	pass.SetVertexBuffer(0, m.vertices)

	if m.instances != nil {
		pass.SetVertexBuffer(1, m.instances)
	}

	pass.SetIndexBuffer(m.indices)
	pass.DrawIndexed(m.IndexCount(), m.instanceCount)
}

func (m *mesh) IndexCount() uint32 {
	return uint32(len(m.indexData))
}

// Indices returns a copy of the index list the shape draws.
func (m *mesh) Indices() []uint16 {
	return slices.Clone(m.indexData)
}

func (m *mesh) InstanceCount() uint32 {
	return m.instanceCount
}

// SetInstanceCount changes the number of instances drawn from the instance buffer.
func (m *mesh) SetInstanceCount(count uint32) {
	m.instanceCount = count
}

func (m *mesh) Pipeline() *pulse.Pipeline {
	return m.pipeline
}

// Release releases the vertex and index buffers. The pipeline is owned by
// the cache, bindings and instances are owned by the caller.
func (m *mesh) Release() {
	m.vertices.Release()
	m.indices.Release()
}

// Triangle draws three vertices in their given winding order.
type Triangle struct {
	*mesh
}

func NewTriangle(ctx *pulse.Context, cache *pulse.PipelineCache, shader *pulse.Shader, vertices [3]Vertex, opts *Options) (*Triangle, error) {
	m, err := newMesh(ctx, cache, shader, "Triangle", vertices[:], triangleIndices, opts)
	if err != nil {
		return nil, err
	}

	return &Triangle{mesh: m}, nil
}

// Rectangle draws four vertices as two triangles, A-C-B and A-D-C. List the corners
// clockwise starting at the bottom left to have both triangles face the viewer.
type Rectangle struct {
	*mesh
}

func NewRectangle(ctx *pulse.Context, cache *pulse.PipelineCache, shader *pulse.Shader, vertices [4]Vertex, opts *Options) (*Rectangle, error) {
	m, err := newMesh(ctx, cache, shader, "Rectangle", vertices[:], rectangleIndices, opts)
	if err != nil {
		return nil, err
	}

	return &Rectangle{mesh: m}, nil
}

// Polygon draws arbitrary indexed triangles.
type Polygon struct {
	*mesh
}

func NewPolygon(ctx *pulse.Context, cache *pulse.PipelineCache, shader *pulse.Shader, vertices []Vertex, indices []uint16, opts *Options) (*Polygon, error) {
	m, err := newMesh(ctx, cache, shader, "Polygon", vertices, indices, opts)
	if err != nil {
		return nil, err
	}

	return &Polygon{mesh: m}, nil
}
