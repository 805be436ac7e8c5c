package burrow

import (
	"go.uber.org/zap"

	"github.com/phanxgames/burrow/console"
)

// engine drives an App from a console loop. It implements console.Engine.
type engine struct {
	app  *App
	cell *ownershipCell
	log  *zap.Logger

	exitReader     EventReader[AppExit]
	fontPathReader EventReader[SetFontPath]

	listeners      []MouseButton
	resizeMode     ResizeMode
	resizeCallback func(*RootConsole, Resized)

	screenWidth, screenHeight   int
	consoleWidth, consoleHeight int
}

var _ console.Engine = (*engine)(nil)

// newEngine takes its initial sizes from the options. Start replaces them
// with the loop's real sizes, which differ for terminals (cells, not pixels).
func newEngine(app *App, s Settings) *engine {
	opts := s.AppOptions
	return &engine{
		app:            app,
		cell:           newOwnershipCell(),
		log:            s.Logger,
		listeners:      s.MouseButtonListeners,
		resizeMode:     s.ResizeMode,
		resizeCallback: s.ResizeCallback,
		screenWidth:    opts.ScreenWidth,
		screenHeight:   opts.ScreenHeight,
		consoleWidth:   opts.ConsoleWidth,
		consoleHeight:  opts.ConsoleHeight,
	}
}

// Start records the loop's screen and console sizes as the baseline for the
// first resize.
func (e *engine) Start(api console.API) {
	e.screenWidth, e.screenHeight = api.ScreenSize()
	e.consoleWidth, e.consoleHeight = api.Con().Size()
	e.log.Debug("console loop started",
		zap.Int("screen_width", e.screenWidth), zap.Int("screen_height", e.screenHeight),
		zap.Int("console_width", e.consoleWidth), zap.Int("console_height", e.consoleHeight))
}

func (e *engine) takeConsole(api console.API) {
	e.cell.take(api.Con(), RootConsoleResource.MustGet(e.app.World))
}

func (e *engine) restoreConsole(api console.API) {
	e.cell.restore(api.Con(), RootConsoleResource.MustGet(e.app.World))
}

// Update refreshes FPSInfo and Input, runs the update pass with the root
// console lent out, then forwards the last font path request and reports
// whether an AppExit was sent.
func (e *engine) Update(api console.API) console.UpdateEvent {
	w := e.app.World
	*FPSInfoResource.MustGet(w) = FPSInfo{FPS: api.FPS(), AverageFPS: api.AverageFPS()}
	InputResource.MustGet(w).handleInput(e.listeners, api.Input())

	e.takeConsole(api)
	e.app.Update()
	e.restoreConsole(api)

	if ev, ok := e.fontPathReader.Last(FontPathEvents.Events(w)); ok {
		e.log.Debug("font path changed", zap.String("path", ev.Path))
		api.SetFontPath(ev.Path)
	}

	if e.exitReader.Any(ExitEvents.Events(w)) {
		e.log.Info("exit requested")
		return console.UpdateExit
	}
	return console.UpdateContinue
}

// Render runs pending state searches and the render schedule with the root
// console lent out.
func (e *engine) Render(api console.API) {
	w := e.app.World
	e.takeConsole(api)
	RenderStateResource.MustGet(w).run(w)
	runRenderSchedule(w)
	e.restoreConsole(api)
}

// Resize emits Resized and applies the resize mode.
func (e *engine) Resize(api console.API) {
	w := e.app.World
	width, height := api.ScreenSize()
	ev := Resized{
		PreviousWidth:  e.screenWidth,
		PreviousHeight: e.screenHeight,
		NewWidth:       width,
		NewHeight:      height,
	}
	ResizedEvents.Send(w, ev)
	ResizedEvent.Publish(w, ev)
	e.log.Debug("screen resized",
		zap.Int("previous_width", ev.PreviousWidth), zap.Int("previous_height", ev.PreviousHeight),
		zap.Int("width", ev.NewWidth), zap.Int("height", ev.NewHeight))

	switch e.resizeMode {
	case ResizeAutomatic:
		e.resizeAutomatic(api, ev)
	case ResizeCallback:
		e.takeConsole(api)
		e.resizeCallback(RootConsoleResource.MustGet(w), ev)
		e.restoreConsole(api)
	}

	e.screenWidth, e.screenHeight = width, height
	e.consoleWidth, e.consoleHeight = api.Con().Size()
}

// resizeAutomatic keeps the number of screen units per console cell
// established by the previous size. The ratio is integer division, so
// fractional ratios truncate.
func (e *engine) resizeAutomatic(api console.API, ev Resized) {
	if e.consoleWidth <= 0 || e.consoleHeight <= 0 {
		e.log.Warn("automatic resize skipped: empty console",
			zap.Int("console_width", e.consoleWidth), zap.Int("console_height", e.consoleHeight))
		return
	}
	wRatio := ev.PreviousWidth / e.consoleWidth
	hRatio := ev.PreviousHeight / e.consoleHeight
	if wRatio == 0 || hRatio == 0 {
		e.log.Warn("automatic resize skipped: screen smaller than console",
			zap.Int("width_ratio", wRatio), zap.Int("height_ratio", hRatio))
		return
	}
	api.Con().Resize(ev.NewWidth/wRatio, ev.NewHeight/hRatio)
}
