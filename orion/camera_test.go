package orion_test

import (
	"testing"

	"github.com/oliverbestmann/hermit/glimpse"
	"github.com/oliverbestmann/hermit/glm"
	"github.com/oliverbestmann/hermit/orion"
	"github.com/stretchr/testify/assert"
)

func TestCameraAspectFollowsResize(t *testing.T) {
	camera := orion.NewCamera(800, 600)
	assert.InDelta(t, 4.0/3.0, camera.Aspect, 1e-6)

	camera.Resize(1000, 500)
	assert.InDelta(t, 2.0, camera.Aspect, 1e-6)

	// zero sizes are ignored
	camera.Resize(0, 500)
	assert.InDelta(t, 2.0, camera.Aspect, 1e-6)
}

func TestCameraViewProjection(t *testing.T) {
	camera := orion.NewCamera(800, 800)

	var uniform orion.CameraUniform
	uniform.Update(&camera)

	viewProj := glm.Mat4f(uniform.ViewProj)

	// the target is in the center of the screen, inside of the depth range
	target := viewProj.Transform(camera.Target.Extend(1)).Project()
	assert.InDelta(t, 0, target[0], 1e-5)
	assert.InDelta(t, 0, target[1], 1e-5)
	assert.Greater(t, target[2], float32(0))
	assert.Less(t, target[2], float32(1))

	// something behind the far plane is clipped
	far := viewProj.Transform(glm.Vec4f{0, -50, -100, 1}).Project()
	assert.Greater(t, far[2], float32(1))
}

func keys(pressed ...glimpse.Key) *glimpse.KeysState {
	state := &glimpse.KeysState{Pressed: map[glimpse.Key]bool{}}
	for _, key := range pressed {
		state.Pressed[key] = true
	}

	return state
}

func distance(camera orion.Camera) float32 {
	return camera.Target.Sub(camera.Eye).Length()
}

func TestControllerOrbitKeepsDistance(t *testing.T) {
	controller := orion.CameraController{Speed: 0.2}

	for _, key := range []glimpse.Key{glimpse.KeyA, glimpse.KeyD, glimpse.KeyLeft, glimpse.KeyRight} {
		camera := orion.NewCamera(800, 800)
		before := distance(camera)

		controller.Update(&camera, keys(key))

		assert.NotEqual(t, glm.Vec3f{0, 1, 2}, camera.Eye, "key %s", key)
		assert.InDelta(t, before, distance(camera), 1e-4, "key %s", key)
	}
}

func TestControllerMovesTowardsTarget(t *testing.T) {
	controller := orion.CameraController{Speed: 0.2}

	camera := orion.NewCamera(800, 800)
	before := distance(camera)

	controller.Update(&camera, keys(glimpse.KeyW))
	assert.InDelta(t, before-0.2, distance(camera), 1e-4)

	controller.Update(&camera, keys(glimpse.KeyDown))
	assert.InDelta(t, before, distance(camera), 1e-4)
}

func TestControllerNeverPassesTarget(t *testing.T) {
	controller := orion.CameraController{Speed: 0.2}

	camera := orion.NewCamera(800, 800)
	camera.Eye = glm.Vec3f{0, 0, 0.1}

	controller.Update(&camera, keys(glimpse.KeyUp))
	assert.Equal(t, glm.Vec3f{0, 0, 0.1}, camera.Eye)
}

func TestControllerIdle(t *testing.T) {
	controller := orion.CameraController{Speed: 0.2}

	camera := orion.NewCamera(800, 800)
	controller.Update(&camera, keys())

	assert.Equal(t, glm.Vec3f{0, 1, 2}, camera.Eye)
}
