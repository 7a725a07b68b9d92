package orion

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/furui/fastnoiselite-go"
	"github.com/oliverbestmann/hermit/glm"
)

// Instance places one copy of a mesh in the world.
type Instance struct {
	Position glm.Vec3f
	Rotation glm.Quatf
}

// InstanceRaw is the model matrix of an instance as uploaded to the gpu.
type InstanceRaw struct {
	Model [16]float32
}

func (i Instance) ToRaw() InstanceRaw {
	x, y, z := i.Position.XYZ()
	model := glm.TranslationMat4(x, y, z).Mul(glm.Mat4FromQuaternion(i.Rotation))
	return InstanceRaw{Model: model}
}

// InstanceBufferLayout describes a buffer of InstanceRaw values, one matrix column
// per location from 5 to 8.
var InstanceBufferLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(InstanceRaw{})),
	StepMode:    wgpu.VertexStepModeInstance,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
	},
}

type GridOptions struct {
	// instances per row and column, defaults to 10
	PerRow int

	// distance between two instances, defaults to 3
	Spacing float32

	// maximum displacement along the y axis. Zero keeps the grid flat
	Displacement float32
}

// InstanceGrid lays out PerRow x PerRow instances on the xz plane around the origin.
// Every instance except the one at the origin is rotated by 45 degrees around
// its position.
func InstanceGrid(opts GridOptions) []Instance {
	if opts.PerRow <= 0 {
		opts.PerRow = 10
	}

	if opts.Spacing == 0 {
		opts.Spacing = 3
	}

	var noise *fastnoiselite.FastNoiseLite
	if opts.Displacement != 0 {
		noise = fastnoiselite.NewNoise()
		noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
		noise.FractalType = fastnoiselite.FractalTypeFBm
		noise.Frequency = 0.05
		noise.SetFractalOctaves(3)
	}

	half := float32(opts.PerRow) / 2

	instances := make([]Instance, 0, opts.PerRow*opts.PerRow)

	for z := range opts.PerRow {
		for x := range opts.PerRow {
			position := glm.Vec3f{
				opts.Spacing * (float32(x) - half),
				0,
				opts.Spacing * (float32(z) - half),
			}

			rotation := glm.IdentityQuaternion[float32]()
			if !position.IsZero() {
				rotation = glm.QuaternionFromAxisAngle(position.Normalize(), glm.DegToRad[float32](45))
			}

			if noise != nil {
				value := noise.GetNoise2D(fastnoiselite.FNLfloat(position[0]), fastnoiselite.FNLfloat(position[2]))
				position[1] = opts.Displacement * float32(value)
			}

			instances = append(instances, Instance{Position: position, Rotation: rotation})
		}
	}

	return instances
}

// RawInstances converts the instances into their gpu representation.
func RawInstances(instances []Instance) []InstanceRaw {
	raw := make([]InstanceRaw, 0, len(instances))
	for _, instance := range instances {
		raw = append(raw, instance.ToRaw())
	}

	return raw
}
