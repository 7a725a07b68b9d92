package glimpse

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func hintValue(hints []windowHint, hint glfw.Hint) (int, bool) {
	for _, h := range hints {
		if h.hint == hint {
			return h.value, true
		}
	}

	return 0, false
}

func TestWindowHintsResizable(t *testing.T) {
	value, ok := hintValue(windowHints(WindowOptions{Resizable: true}), glfw.Resizable)
	assert.True(t, ok)
	assert.Equal(t, glfw.True, value)

	value, ok = hintValue(windowHints(WindowOptions{}), glfw.Resizable)
	assert.True(t, ok)
	assert.Equal(t, glfw.False, value)
}

func TestWindowHintsNoClientAPI(t *testing.T) {
	value, ok := hintValue(windowHints(WindowOptions{}), glfw.ClientAPI)
	assert.True(t, ok)
	assert.Equal(t, glfw.NoAPI, value)
}
