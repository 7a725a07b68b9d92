package glm

import "math"

// OpenGLToWGPU maps the OpenGL clip space depth range of -1..1 to the 0..1
// range webgpu uses.
var OpenGLToWGPU = Mat4Of([4][4]float32{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 0.5, 0},
	{0, 0, 0.5, 1},
})

// Perspective builds a right handed projection matrix using OpenGL clip space conventions.
func Perspective[T Numeric](fovY Rad, aspect, near, far T) Mat4[T] {
	f := T(1 / fastTan(fovY*0.5))

	return Mat4Of([4][4]T{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (far + near) / (near - far), -1},
		{0, 0, (2 * far * near) / (near - far), 0},
	})
}

// LookAt builds a right handed view matrix for a camera at eye looking at center.
func LookAt[T Numeric](eye, center, up Vec3[T]) Mat4[T] {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4Of([4][4]T{
		{s[0], u[0], -f[0], 0},
		{s[1], u[1], -f[1], 0},
		{s[2], u[2], -f[2], 0},
		{-eye.Dot(s), -eye.Dot(u), eye.Dot(f), 1},
	})
}

func DegToRad[T Numeric](deg T) Rad {
	return Rad(float64(deg) * (math.Pi / 180))
}
