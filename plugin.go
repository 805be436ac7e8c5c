package burrow

import "go.uber.org/zap"

// ConsolePlugin installs the console bridge: the Input, FPSInfo, RootConsole
// and RenderState resources, the SetFontPath and Resized events, the render
// schedule, and a runner that hands the App to the configured backend.
//
// Update systems run once per console loop update; systems added with
// AddRenderSystem run once per rendered frame.
type ConsolePlugin struct{}

// Build implements Plugin.
func (ConsolePlugin) Build(app *App) {
	w := app.World
	RootConsoleResource.Insert(w, RootConsole{})
	InputResource.Insert(w, Input{})
	FPSInfoResource.Insert(w, FPSInfo{})
	RenderStateResource.Insert(w, newRenderState())
	renderSystems.Insert(w, renderSlot{schedule: NewRenderSchedule()})
	app.AddEvent(FontPathEvents).
		AddEvent(ResizedEvents).
		SetRunner(consoleRunner)
}

// consoleRunner consumes the Settings and runs the backend until the App
// sends AppExit or the backend fails.
func consoleRunner(app *App) error {
	s := takeSettings(app.World)
	if err := s.Validate(); err != nil {
		return err
	}
	if s.AppOptions.Logger == nil {
		s.AppOptions.Logger = s.Logger
	}
	s.Logger.Info("starting console loop",
		zap.Int("console_width", s.AppOptions.ConsoleWidth),
		zap.Int("console_height", s.AppOptions.ConsoleHeight),
		zap.Stringer("resize_mode", s.ResizeMode))
	err := s.Backend(s.AppOptions, newEngine(app, s))
	_ = s.Logger.Sync()
	return err
}
