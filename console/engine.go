package console

// UpdateEvent is returned by Engine.Update to tell the loop what to do next.
type UpdateEvent uint8

const (
	UpdateContinue UpdateEvent = iota // keep running
	UpdateExit                        // stop the loop before the next frame
)

// Engine receives the loop callbacks. A loop never invokes these
// concurrently.
type Engine interface {
	// Start is called once, before any other callback, when the loop knows
	// its real screen and console sizes.
	Start(api API)
	// Update is called once per tick, before Render.
	Update(api API) UpdateEvent
	// Render is called once per displayed frame.
	Render(api API)
	// Resize is called after the screen size changed.
	Resize(api API)
}

// API is the handle a loop passes to its engine. It is only valid for the
// duration of the callback it was passed to.
type API interface {
	// Con returns the loop's root console.
	Con() *Console
	// Input returns the input snapshot for the current frame.
	Input() Input
	// FPS returns the instantaneous frame rate.
	FPS() int
	// AverageFPS returns the frame rate averaged over the last second.
	AverageFPS() int
	// ScreenSize returns the current screen size in the loop's units
	// (pixels for windows, cells for terminals).
	ScreenSize() (width, height int)
	// SetFontPath requests that the loop switch to another font.
	SetFontPath(path string)
}

// Mouse button indices understood by Input.MouseButton.
const (
	MouseLeft   = 0
	MouseMiddle = 1
	MouseRight  = 2
)

// Input is a polled snapshot of the keyboard, mouse and window state.
type Input interface {
	// Key reports whether the key is currently held down.
	Key(code string) bool
	// KeyPressed reports whether the key went down this frame.
	KeyPressed(code string) bool
	// KeyReleased reports whether the key went up this frame.
	KeyReleased(code string) bool
	// KeysDown returns the codes of every held key.
	KeysDown() []string
	// KeysPressed returns the codes of keys that went down this frame.
	KeysPressed() []string
	// KeysReleased returns the codes of keys that went up this frame.
	KeysReleased() []string
	// Text returns the characters typed this frame.
	Text() string
	// MouseButton reports whether button n is held down.
	MouseButton(n int) bool
	// MouseButtonPressed reports whether button n went down this frame.
	MouseButtonPressed(n int) bool
	// MouseButtonReleased reports whether button n went up this frame.
	MouseButtonReleased(n int) bool
	// MousePos returns the cursor position in console cells.
	MousePos() (x, y float32)
	// CloseRequested reports whether the user asked to close the window.
	// Only set when AppOptions.InterceptCloseRequest is true.
	CloseRequested() bool
}

// Backend creates a loop from options and runs it with the given engine until
// the engine asks to exit or the loop fails.
type Backend func(opts AppOptions, engine Engine) error
