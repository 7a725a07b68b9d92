package orion

import (
	"github.com/oliverbestmann/hermit/glm"
)

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    glm.Vec3f
	Target glm.Vec3f
	Up     glm.Vec3f

	Aspect float32
	FovY   glm.Rad
	ZNear  float32
	ZFar   float32
}

// NewCamera returns the camera of the cube demo, one unit above and two units
// in front of the origin.
func NewCamera(width, height uint32) Camera {
	camera := Camera{
		Eye:    glm.Vec3f{0, 1, 2},
		Target: glm.Vec3f{0, 0, 0},
		Up:     glm.Vec3f{0, 1, 0},
		FovY:   glm.DegToRad[float32](45),
		ZNear:  0.1,
		ZFar:   100,
	}

	camera.Resize(width, height)

	return camera
}

// Resize recomputes the aspect ratio. Zero sizes are ignored.
func (c *Camera) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}

	c.Aspect = float32(width) / float32(height)
}

// ViewProjection maps world space into webgpu clip space.
func (c *Camera) ViewProjection() glm.Mat4f {
	view := glm.LookAt(c.Eye, c.Target, c.Up)
	proj := glm.Perspective(c.FovY, c.Aspect, c.ZNear, c.ZFar)

	return glm.OpenGLToWGPU.Mul(proj.Mul(view))
}

// CameraUniform is the camera as seen by the shader.
type CameraUniform struct {
	ViewProj [16]float32
}

func (u *CameraUniform) Update(camera *Camera) {
	u.ViewProj = camera.ViewProjection()
}
