package glimpse

import "log/slog"

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to NextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to NextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

// IsPressed reports whether any of the given keys is currently held down.
func (k *KeysState) IsPressed(keys ...Key) bool {
	for _, key := range keys {
		if k.Pressed[key] {
			return true
		}
	}

	return false
}

type InputState struct {
	Keys KeysState
}

// Apply updates the input state with a single event. Events other than
// key events are ignored.
func (s *InputState) Apply(ev Event) {
	if ev.Kind != EventKey || ev.Key == KeyUnknown {
		return
	}

	if ev.Pressed {
		s.Keys.press(ev.Key)
	} else {
		s.Keys.release(ev.Key)
	}
}

// NextTick forgets the keys that were just pressed or released.
func (s *InputState) NextTick() {
	s.Keys.nextTick()
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
