package console

import (
	"slices"
	"strings"
)

const maxMouseButtons = 8

type buttonState struct {
	down     bool
	pressed  bool
	released bool
}

// InputState is a mutable Input implementation shared by the loops. A loop
// feeds device events into it, hands it to the engine, then calls EndFrame.
type InputState struct {
	down     map[string]bool
	pressed  map[string]bool
	released map[string]bool
	text     strings.Builder
	buttons  [maxMouseButtons]buttonState
	mouseX   float32
	mouseY   float32
	close    bool
}

var _ Input = (*InputState)(nil)

// NewInputState returns an empty input state.
func NewInputState() *InputState {
	return &InputState{
		down:     make(map[string]bool),
		pressed:  make(map[string]bool),
		released: make(map[string]bool),
	}
}

// KeyDown records that the key went down. Repeated calls while the key is
// held do not mark it pressed again.
func (s *InputState) KeyDown(code string) {
	if s.down[code] {
		return
	}
	s.down[code] = true
	s.pressed[code] = true
}

// KeyUp records that the key went up.
func (s *InputState) KeyUp(code string) {
	if !s.down[code] {
		return
	}
	delete(s.down, code)
	s.released[code] = true
}

// SetKeysDown replaces the held key set, deriving pressed and released keys
// from the difference with the previous set.
func (s *InputState) SetKeysDown(codes []string) {
	next := make(map[string]bool, len(codes))
	for _, code := range codes {
		next[code] = true
	}
	for code := range s.down {
		if !next[code] {
			s.KeyUp(code)
		}
	}
	for code := range next {
		s.KeyDown(code)
	}
}

// AppendText records typed characters.
func (s *InputState) AppendText(text string) {
	s.text.WriteString(text)
}

// ButtonDown records that mouse button n went down.
func (s *InputState) ButtonDown(n int) {
	if n < 0 || n >= maxMouseButtons || s.buttons[n].down {
		return
	}
	s.buttons[n].down = true
	s.buttons[n].pressed = true
}

// ButtonUp records that mouse button n went up.
func (s *InputState) ButtonUp(n int) {
	if n < 0 || n >= maxMouseButtons || !s.buttons[n].down {
		return
	}
	s.buttons[n].down = false
	s.buttons[n].released = true
}

// MoveMouse records the cursor position in console cells.
func (s *InputState) MoveMouse(x, y float32) {
	s.mouseX, s.mouseY = x, y
}

// RequestClose marks that the user asked to close the window.
func (s *InputState) RequestClose() {
	s.close = true
}

// EndFrame clears everything that only lasts one frame: pressed and released
// keys and buttons, typed text and the close request.
func (s *InputState) EndFrame() {
	clear(s.pressed)
	clear(s.released)
	s.text.Reset()
	for i := range s.buttons {
		s.buttons[i].pressed = false
		s.buttons[i].released = false
	}
	s.close = false
}

func (s *InputState) Key(code string) bool         { return s.down[code] }
func (s *InputState) KeyPressed(code string) bool  { return s.pressed[code] }
func (s *InputState) KeyReleased(code string) bool { return s.released[code] }
func (s *InputState) KeysDown() []string           { return sortedKeys(s.down) }
func (s *InputState) KeysPressed() []string        { return sortedKeys(s.pressed) }
func (s *InputState) KeysReleased() []string       { return sortedKeys(s.released) }
func (s *InputState) Text() string                 { return s.text.String() }
func (s *InputState) MousePos() (float32, float32) { return s.mouseX, s.mouseY }
func (s *InputState) CloseRequested() bool         { return s.close }

func (s *InputState) MouseButton(n int) bool {
	return n >= 0 && n < maxMouseButtons && s.buttons[n].down
}

func (s *InputState) MouseButtonPressed(n int) bool {
	return n >= 0 && n < maxMouseButtons && s.buttons[n].pressed
}

func (s *InputState) MouseButtonReleased(n int) bool {
	return n >= 0 && n < maxMouseButtons && s.buttons[n].released
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
