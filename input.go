package burrow

import (
	"fmt"
	"slices"

	"github.com/phanxgames/burrow/console"
)

// MouseButton identifies a mouse button by its console index.
type MouseButton int

// Buttons polled by default. Other indices are passed through to the console
// loop unchanged.
const (
	MouseButtonLeft   MouseButton = console.MouseLeft
	MouseButtonMiddle MouseButton = console.MouseMiddle
	MouseButtonRight  MouseButton = console.MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	}
	return fmt.Sprintf("button%d", int(b))
}

// Input is the keyboard and mouse state for the current update pass. The
// frame driver rebuilds it from the console loop's snapshot before every
// pass; nothing carries over from the previous frame.
type Input struct {
	keysDown     []string
	keysPressed  []string
	keysReleased []string
	text         string

	buttonsDown     []MouseButton
	buttonsPressed  []MouseButton
	buttonsReleased []MouseButton

	mouseX, mouseY float32
	closeRequested bool
}

// InputResource holds the Input.
var InputResource = NewResource[Input]("Input")

// handleInput overwrites in from snap. Only the listed mouse buttons are
// polled; snap is not retained.
func (in *Input) handleInput(listeners []MouseButton, snap console.Input) {
	in.keysDown = sortedCopy(in.keysDown, snap.KeysDown())
	in.keysPressed = sortedCopy(in.keysPressed, snap.KeysPressed())
	in.keysReleased = sortedCopy(in.keysReleased, snap.KeysReleased())
	in.text = snap.Text()

	in.buttonsDown = in.buttonsDown[:0]
	in.buttonsPressed = in.buttonsPressed[:0]
	in.buttonsReleased = in.buttonsReleased[:0]
	for _, b := range listeners {
		n := int(b)
		if snap.MouseButton(n) {
			in.buttonsDown = append(in.buttonsDown, b)
		}
		if snap.MouseButtonPressed(n) {
			in.buttonsPressed = append(in.buttonsPressed, b)
		}
		if snap.MouseButtonReleased(n) {
			in.buttonsReleased = append(in.buttonsReleased, b)
		}
	}

	in.mouseX, in.mouseY = snap.MousePos()
	in.closeRequested = snap.CloseRequested()
}

func sortedCopy(dst, src []string) []string {
	dst = append(dst[:0], src...)
	slices.Sort(dst)
	return slices.Compact(dst)
}

// Key reports whether the key is held down.
func (in *Input) Key(code string) bool {
	_, ok := slices.BinarySearch(in.keysDown, code)
	return ok
}

// KeyPressed reports whether the key went down this frame.
func (in *Input) KeyPressed(code string) bool {
	_, ok := slices.BinarySearch(in.keysPressed, code)
	return ok
}

// KeyReleased reports whether the key went up this frame.
func (in *Input) KeyReleased(code string) bool {
	_, ok := slices.BinarySearch(in.keysReleased, code)
	return ok
}

// KeysDown returns the held keys in sorted order.
func (in *Input) KeysDown() []string { return slices.Clone(in.keysDown) }

// KeysPressed returns the keys that went down this frame in sorted order.
func (in *Input) KeysPressed() []string { return slices.Clone(in.keysPressed) }

// KeysReleased returns the keys that went up this frame in sorted order.
func (in *Input) KeysReleased() []string { return slices.Clone(in.keysReleased) }

// Text returns the characters typed this frame.
func (in *Input) Text() string { return in.text }

// MouseButton reports whether b is held down. Buttons that are not listened
// to always report false.
func (in *Input) MouseButton(b MouseButton) bool {
	return slices.Contains(in.buttonsDown, b)
}

// MouseButtonPressed reports whether b went down this frame.
func (in *Input) MouseButtonPressed(b MouseButton) bool {
	return slices.Contains(in.buttonsPressed, b)
}

// MouseButtonReleased reports whether b went up this frame.
func (in *Input) MouseButtonReleased(b MouseButton) bool {
	return slices.Contains(in.buttonsReleased, b)
}

// MousePosition returns the cursor position in console cells.
func (in *Input) MousePosition() (x, y float32) { return in.mouseX, in.mouseY }

// CloseRequested reports whether the user asked to close the window. It is
// only ever set when AppOptions.InterceptCloseRequest is enabled.
func (in *Input) CloseRequested() bool { return in.closeRequested }
