package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, expected, actual Vec3f) {
	t.Helper()

	for idx := range expected {
		assert.InDelta(t, expected[idx], actual[idx], 1e-4, "component %d of %v", idx, actual)
	}
}

func TestMat4Of(t *testing.T) {
	m := Mat4Of([4][4]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	})

	assert.Equal(t, []float32{5, 6, 7, 8}, m[4:8])
	assert.Equal(t, float32(16), m[15])
}

func TestMat4MulIdentity(t *testing.T) {
	m := TranslationMat4[float32](1, 2, 3).Scale(2, 2, 2)
	assert.Equal(t, m, IdentityMat4[float32]().Mul(m))
	assert.Equal(t, m, m.Mul(IdentityMat4[float32]()))
}

func TestTranslateThenScale(t *testing.T) {
	m := TranslationMat4[float32](1, 2, 3).Scale(2, 2, 2)
	actual := m.Transform(Vec4f{1, 1, 1, 1})
	assert.Equal(t, Vec4f{3, 4, 5, 1}, actual)
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3f{0, 1, 0}, math.Pi/2)

	// rotating +x by 90 degrees around y ends up at -z
	actual := Mat4FromQuaternion(q).Transform(Vec4f{1, 0, 0, 1}).Truncate()
	assertVec3InDelta(t, Vec3f{0, 0, -1}, actual)

	axis := Vec3f{1, 1, 0}.Normalize()
	q = QuaternionFromAxisAngle(axis, DegToRad[float32](45))

	v := Vec3f{0.3, -2, 5}
	rotated := Mat4FromQuaternion(q).Transform(v.Extend(1)).Truncate()

	// rotation keeps the length and the axis
	assert.InDelta(t, v.Length(), rotated.Length(), 1e-4)
	assertVec3InDelta(t, axis, Mat4FromQuaternion(q).Transform(axis.Extend(1)).Truncate())
}

func TestIdentityQuaternion(t *testing.T) {
	assert.Equal(t, IdentityMat4[float32](), Mat4FromQuaternion(IdentityQuaternion[float32]()))
}

func TestNormalizeZero(t *testing.T) {
	assert.True(t, Vec3f{}.Normalize().IsZero())
	assert.InDelta(t, 1.0, Vec3f{3, 4, 0}.Normalize().Length(), 1e-5)
}

func TestDoublePrecision(t *testing.T) {
	assert.InDelta(t, 1.0, Vec3[float64]{3, 4, 0}.Normalize().Length(), 1e-5)
	assert.Equal(t, Vec3[float64]{0.5, 0.25, 2}, Vec4[float64]{2, 1, 8, 4}.Project())
}

func TestCross(t *testing.T) {
	assert.Equal(t, Vec3f{0, 0, 1}, Vec3f{1, 0, 0}.Cross(Vec3f{0, 1, 0}))
}

func TestLookAt(t *testing.T) {
	view := LookAt(Vec3f{0, 1, 2}, Vec3f{}, Vec3f{0, 1, 0})

	// the target ends up straight ahead of the camera on the negative z axis
	target := view.Transform(Vec4f{0, 0, 0, 1}).Truncate()
	assert.InDelta(t, 0, target[0], 1e-5)
	assert.InDelta(t, 0, target[1], 1e-5)
	assert.InDelta(t, -math.Sqrt(5), target[2], 1e-4)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := OpenGLToWGPU.Mul(Perspective[float32](DegToRad[float32](45), 1, 0.1, 100))

	near := proj.Transform(Vec4f{0, 0, -0.1, 1}).Project()
	far := proj.Transform(Vec4f{0, 0, -100, 1}).Project()

	assert.InDelta(t, 0, near[2], 1e-4)
	assert.InDelta(t, 1, far[2], 1e-4)
}

func TestPolar(t *testing.T) {
	p := Polar[float32](math.Pi/2, 2)
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 2, p[1], 1e-5)

	assert.Equal(t, float32(-1), p.Extend(-1)[2])
}
