package shape

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hermit/glm"
	"github.com/oliverbestmann/hermit/pulse"
)

// Vertex is the vertex format of every shape. The second attribute is either an rgb color
// or a texture coordinate, depending on the shader the shape is drawn with.
type Vertex struct {
	Position     [3]float32
	ColorOrCoord [3]float32
}

// VertexBufferLayout describes a buffer of Vertex values at locations 0 and 1.
var VertexBufferLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{
			// position
			Format:         wgpu.VertexFormatFloat32x3,
			Offset:         uint64(unsafe.Offsetof(Vertex{}.Position)),
			ShaderLocation: 0,
		},
		{
			// color or uv
			Format:         wgpu.VertexFormatFloat32x3,
			Offset:         uint64(unsafe.Offsetof(Vertex{}.ColorOrCoord)),
			ShaderLocation: 1,
		},
	},
}

// VertexLayout is the layout used by shapes drawn without instancing.
var VertexLayout = &pulse.VertexLayout{
	Name:    "Vertex",
	Buffers: []wgpu.VertexBufferLayout{VertexBufferLayout},
}

// Colored creates a vertex with an rgb color.
func Colored(x, y, z float32, color pulse.Color) Vertex {
	return Vertex{
		Position:     [3]float32{x, y, z},
		ColorOrCoord: color.RGB(),
	}
}

// Textured creates a vertex with a texture coordinate.
func Textured(x, y, z float32, u, v float32) Vertex {
	return Vertex{
		Position:     [3]float32{x, y, z},
		ColorOrCoord: [3]float32{u, v, 0},
	}
}

// Transformed returns a copy of the vertices with every position transformed by m.
func Transformed(vertices []Vertex, m glm.Mat4f) []Vertex {
	result := make([]Vertex, len(vertices))

	for idx, vertex := range vertices {
		position := glm.Vec3f(vertex.Position).Extend(1)
		vertex.Position = m.Transform(position).Project()
		result[idx] = vertex
	}

	return result
}
