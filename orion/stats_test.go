package orion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTimes(t *testing.T) {
	var times FrameTimes
	assert.Zero(t, times.FPS())

	start := time.Unix(0, 0)

	var reports []uint64
	for idx := range 120 {
		if times.tickAt(start.Add(time.Duration(idx) * 10 * time.Millisecond)) {
			reports = append(reports, times.FrameCount)
		}
	}

	assert.Equal(t, []uint64{60, 120}, reports)
	assert.Equal(t, 10*time.Millisecond, times.Delta)
	assert.Equal(t, 10*time.Millisecond, times.AverageDuration)
	assert.Equal(t, 10*time.Millisecond, times.MaxDuration)
	assert.InDelta(t, 100, times.FPS(), 1e-6)
}
