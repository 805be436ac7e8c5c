// Package terminal runs a console loop in a terminal through tcell.
//
// Screen and console sizes are both measured in cells. Terminals do not
// report key releases, so a key is considered released on the frame after it
// was last seen.
package terminal

import (
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/burrow/console"
)

// Loop drives an Engine from a tcell screen.
type Loop struct {
	opts   console.AppOptions
	screen tcell.Screen
	con    console.Console
	input  *console.InputState
	fps    console.FPSCounter

	fontPath string
	width    int
	height   int
	// keys seen this frame; everything else held is released at EndFrame
	seen    map[string]bool
	exiting bool
}

var _ console.API = (*Loop)(nil)

// New creates a loop on screen. A nil screen opens the controlling terminal.
func New(opts console.AppOptions, screen tcell.Screen) (*Loop, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("terminal: open screen: %w", err)
		}
		screen = s
	}
	return &Loop{
		opts:     opts,
		screen:   screen,
		con:      console.New(opts.ConsoleWidth, opts.ConsoleHeight),
		input:    console.NewInputState(),
		fontPath: opts.FontPath,
		seen:     make(map[string]bool),
	}, nil
}

// Run opens the controlling terminal and runs engine in it. It matches
// console.Backend.
func Run(opts console.AppOptions, engine console.Engine) error {
	l, err := New(opts, nil)
	if err != nil {
		return err
	}
	return l.Run(engine)
}

func (l *Loop) Con() *console.Console  { return &l.con }
func (l *Loop) Input() console.Input   { return l.input }
func (l *Loop) FPS() int               { return l.fps.FPS() }
func (l *Loop) AverageFPS() int        { return l.fps.Average() }
func (l *Loop) ScreenSize() (int, int) { return l.width, l.height }

// SetFontPath is recorded but has no visible effect: the terminal owns the
// font.
func (l *Loop) SetFontPath(path string) { l.fontPath = path }

// FontPath returns the last requested font path.
func (l *Loop) FontPath() string { return l.fontPath }

// Run initializes the screen, then updates and renders at opts.FPS() until
// the engine asks to exit.
func (l *Loop) Run(engine console.Engine) error {
	if err := l.screen.Init(); err != nil {
		return fmt.Errorf("terminal: init screen: %w", err)
	}
	defer l.screen.Fini()
	l.Start(engine)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := l.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(l.opts.FPS()))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			l.HandleEvent(engine, ev)
		case now := <-ticker.C:
			if l.Frame(engine, now) {
				return nil
			}
		}
	}
}

// Start prepares an initialized screen and reports its size, in cells, to
// engine. Run calls it; tests driving Frame and HandleEvent call it directly.
func (l *Loop) Start(engine console.Engine) {
	l.screen.EnableMouse()
	if !l.opts.ShowCursor {
		l.screen.HideCursor()
	}
	l.width, l.height = l.screen.Size()
	engine.Start(l)
}

// Frame runs one update and render and flushes the console to the screen.
// It reports whether the loop should stop.
func (l *Loop) Frame(engine console.Engine, now time.Time) bool {
	l.fps.Tick(now)
	if l.exiting || engine.Update(l) == console.UpdateExit {
		return true
	}
	engine.Render(l)
	l.draw()
	l.endFrame()
	return false
}

// HandleEvent feeds a tcell event into the input state, or resizes.
func (l *Loop) HandleEvent(engine console.Engine, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		l.handleKey(ev)
	case *tcell.EventMouse:
		l.handleMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		if w == l.width && h == l.height {
			return
		}
		l.width, l.height = w, h
		l.screen.Sync()
		engine.Resize(l)
	}
}

func (l *Loop) handleKey(ev *tcell.EventKey) {
	if isInterrupt(ev) {
		if l.opts.InterceptCloseRequest {
			l.input.RequestClose()
		} else {
			l.exiting = true
		}
		return
	}
	code, ok := keyCode(ev)
	if !ok {
		return
	}
	l.input.KeyDown(code)
	l.seen[code] = true
	if ev.Key() == tcell.KeyRune {
		l.input.AppendText(string(ev.Rune()))
	}
}

// isInterrupt reports whether ev is Ctrl+C, whether tcell delivers it as a
// control key or as a rune with the Ctrl modifier.
func isInterrupt(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		unicode.ToLower(ev.Rune()) == 'c'
}

func (l *Loop) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	l.input.MoveMouse(float32(x), float32(y))
	buttons := ev.Buttons()
	for mask, n := range buttonIndex {
		if buttons&mask != 0 {
			l.input.ButtonDown(n)
		} else {
			l.input.ButtonUp(n)
		}
	}
}

// endFrame releases keys that were not repeated during the frame, then clears
// the per-frame input.
func (l *Loop) endFrame() {
	l.input.EndFrame()
	for _, code := range l.input.KeysDown() {
		if !l.seen[code] {
			l.input.KeyUp(code)
		}
	}
	clear(l.seen)
}

// draw copies the console to the screen, clipped to the terminal.
func (l *Loop) draw() {
	cw, ch := l.con.Size()
	for y := range min(ch, l.height) {
		for x := range min(cw, l.width) {
			cell := l.con.At(x, y)
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			l.screen.SetContent(x, y, r, nil, cellStyle(cell))
		}
	}
	l.screen.Show()
}

func cellStyle(cell console.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(cell.Fore.R), int32(cell.Fore.G), int32(cell.Fore.B))).
		Background(tcell.NewRGBColor(int32(cell.Back.R), int32(cell.Back.G), int32(cell.Back.B)))
}
