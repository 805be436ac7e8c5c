package console

import "go.uber.org/zap"

// AppOptions configures a loop. Field names follow the settings file keys.
type AppOptions struct {
	ConsoleWidth          int    `yaml:"console_width"`
	ConsoleHeight         int    `yaml:"console_height"`
	ScreenWidth           int    `yaml:"screen_width"`
	ScreenHeight          int    `yaml:"screen_height"`
	WindowTitle           string `yaml:"window_title"`
	FontPath              string `yaml:"font_path"`
	VSync                 bool   `yaml:"vsync"`
	Fullscreen            bool   `yaml:"fullscreen"`
	ShowCursor            bool   `yaml:"show_cursor"`
	Resizable             bool   `yaml:"resizable"`
	InterceptCloseRequest bool   `yaml:"intercept_close_request"`
	// MaxFPS caps the frame rate. Zero selects DefaultMaxFPS.
	MaxFPS int `yaml:"max_fps"`
	// Logger receives backend diagnostics such as font load failures.
	Logger *zap.Logger `yaml:"-"`
}

// DefaultMaxFPS is the frame rate used when AppOptions.MaxFPS is zero.
const DefaultMaxFPS = 60

// DefaultAppOptions returns an 80x45 console on a 640x400 screen using the
// 8x8 terminal font.
func DefaultAppOptions() AppOptions {
	return AppOptions{
		ConsoleWidth:  80,
		ConsoleHeight: 45,
		ScreenWidth:   640,
		ScreenHeight:  400,
		FontPath:      "terminal_8x8.png",
		VSync:         true,
	}
}

// FPS returns MaxFPS, or DefaultMaxFPS if it is not set.
func (o AppOptions) FPS() int {
	if o.MaxFPS <= 0 {
		return DefaultMaxFPS
	}
	return o.MaxFPS
}

// Log returns Logger, or a no-op logger if it is not set.
func (o AppOptions) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
