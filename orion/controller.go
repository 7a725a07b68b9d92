package orion

import (
	"github.com/oliverbestmann/hermit/glimpse"
)

// CameraController moves a camera using the keyboard. Forward and backward move the
// eye towards the target, left and right orbit around it.
type CameraController struct {
	Speed float32
}

func (c CameraController) Update(camera *Camera, keys *glimpse.KeysState) {
	forwardPressed := keys.IsPressed(glimpse.KeyW, glimpse.KeyUp)
	backwardPressed := keys.IsPressed(glimpse.KeyS, glimpse.KeyDown)
	leftPressed := keys.IsPressed(glimpse.KeyA, glimpse.KeyLeft)
	rightPressed := keys.IsPressed(glimpse.KeyD, glimpse.KeyRight)

	forward := camera.Target.Sub(camera.Eye)
	forwardDir := forward.Normalize()
	distance := forward.Length()

	// never move into or through the target
	if forwardPressed && distance > c.Speed {
		camera.Eye = camera.Eye.Add(forwardDir.MulScalar(c.Speed))
	}

	if backwardPressed {
		camera.Eye = camera.Eye.Sub(forwardDir.MulScalar(c.Speed))
	}

	right := forwardDir.Cross(camera.Up)

	// the eye might have moved
	forward = camera.Target.Sub(camera.Eye)
	distance = forward.Length()

	if rightPressed {
		dir := forward.Add(right.MulScalar(c.Speed)).Normalize()
		camera.Eye = camera.Target.Sub(dir.MulScalar(distance))
	}

	if leftPressed {
		dir := forward.Sub(right.MulScalar(c.Speed)).Normalize()
		camera.Eye = camera.Target.Sub(dir.MulScalar(distance))
	}
}
