// Package headless provides a console loop that runs without a display.
// Tests drive it frame by frame; automated runs feed it a JSON script.
package headless

import (
	"errors"

	"github.com/phanxgames/burrow/console"
)

// ErrFrameLimit is returned by a frame-limited backend when the engine did
// not ask to exit within the allowed number of frames.
var ErrFrameLimit = errors.New("headless: frame limit reached")

// Loop is an in-process console loop. It implements console.API.
type Loop struct {
	con          console.Console
	input        *console.InputState
	screenWidth  int
	screenHeight int
	fps          int
	averageFPS   int
	fontPath     string
	fontHistory  []string
	frames       int
	script       *Script
	snapshots    map[string]string
	started      bool
}

var _ console.API = (*Loop)(nil)

// New creates a loop with the console and screen sizes from opts. The frame
// rates report opts.FPS() until changed with SetFPS.
func New(opts console.AppOptions) *Loop {
	return &Loop{
		con:          console.New(opts.ConsoleWidth, opts.ConsoleHeight),
		input:        console.NewInputState(),
		screenWidth:  opts.ScreenWidth,
		screenHeight: opts.ScreenHeight,
		fps:          opts.FPS(),
		averageFPS:   opts.FPS(),
		fontPath:     opts.FontPath,
		snapshots:    make(map[string]string),
	}
}

func (l *Loop) Con() *console.Console           { return &l.con }
func (l *Loop) Input() console.Input            { return l.input }
func (l *Loop) FPS() int                        { return l.fps }
func (l *Loop) AverageFPS() int                 { return l.averageFPS }
func (l *Loop) ScreenSize() (int, int)          { return l.screenWidth, l.screenHeight }
func (l *Loop) InputState() *console.InputState { return l.input }

// SetFontPath records the font change request.
func (l *Loop) SetFontPath(path string) {
	l.fontPath = path
	l.fontHistory = append(l.fontHistory, path)
}

// FontPath returns the current font path.
func (l *Loop) FontPath() string { return l.fontPath }

// FontHistory returns every path passed to SetFontPath, oldest first.
func (l *Loop) FontHistory() []string { return l.fontHistory }

// Frames returns the number of completed Step calls.
func (l *Loop) Frames() int { return l.frames }

// SetFPS overrides the reported frame rates.
func (l *Loop) SetFPS(fps, average int) {
	l.fps, l.averageFPS = fps, average
}

// Press marks a key as down.
func (l *Loop) Press(code string) { l.input.KeyDown(code) }

// Release marks a key as up.
func (l *Loop) Release(code string) { l.input.KeyUp(code) }

// PressButton marks mouse button n as down.
func (l *Loop) PressButton(n int) { l.input.ButtonDown(n) }

// ReleaseButton marks mouse button n as up.
func (l *Loop) ReleaseButton(n int) { l.input.ButtonUp(n) }

// MoveMouse sets the cursor position in console cells.
func (l *Loop) MoveMouse(x, y float32) { l.input.MoveMouse(x, y) }

// Type records typed text for the next frame.
func (l *Loop) Type(text string) { l.input.AppendText(text) }

// RequestClose sets the close request for the next frame.
func (l *Loop) RequestClose() { l.input.RequestClose() }

// start calls engine.Start before the loop's first callback.
func (l *Loop) start(engine console.Engine) {
	if !l.started {
		l.started = true
		engine.Start(l)
	}
}

// Step runs one frame: Update, then Render unless Update asked to exit.
// It reports whether the engine asked to exit. The first Step or Resize
// calls engine.Start.
func (l *Loop) Step(engine console.Engine) bool {
	l.start(engine)
	if l.script != nil {
		l.script.step(l, engine)
	}
	exit := engine.Update(l) == console.UpdateExit
	if !exit {
		engine.Render(l)
	}
	l.input.EndFrame()
	l.frames++
	return exit
}

// Resize changes the screen size and calls engine.Resize.
func (l *Loop) Resize(engine console.Engine, width, height int) {
	l.start(engine)
	l.screenWidth, l.screenHeight = width, height
	engine.Resize(l)
}

// Run steps the engine until it asks to exit or maxFrames frames have run.
// A non-positive maxFrames runs without a limit.
func (l *Loop) Run(engine console.Engine, maxFrames int) error {
	for maxFrames <= 0 || l.frames < maxFrames {
		if l.Step(engine) {
			return nil
		}
	}
	return ErrFrameLimit
}

// Backend returns a console.Backend that runs a fresh Loop for at most
// maxFrames frames. If onDone is not nil it receives the loop after the run,
// so callers can inspect the console.
func Backend(maxFrames int, onDone func(*Loop)) console.Backend {
	return func(opts console.AppOptions, engine console.Engine) error {
		l := New(opts)
		err := l.Run(engine, maxFrames)
		if onDone != nil {
			onDone(l)
		}
		return err
	}
}
