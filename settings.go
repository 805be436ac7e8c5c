package burrow

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/burrow/console"
	"github.com/phanxgames/burrow/console/terminal"
)

// ResizeMode selects what the frame driver does when the screen is resized.
type ResizeMode uint8

const (
	// ResizeNothing leaves the console alone. Resized is still sent.
	ResizeNothing ResizeMode = iota
	// ResizeAutomatic resizes the console to keep the number of screen
	// units per cell established at startup.
	ResizeAutomatic
	// ResizeCallback calls Settings.ResizeCallback with the root console
	// lent out. This is the only safe place to resize the console yourself:
	// Resized reaches systems too late in the frame.
	ResizeCallback
)

var resizeModeNames = map[ResizeMode]string{
	ResizeNothing:   "nothing",
	ResizeAutomatic: "automatic",
	ResizeCallback:  "callback",
}

func (m ResizeMode) String() string {
	if name, ok := resizeModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ResizeMode(%d)", uint8(m))
}

// UnmarshalYAML accepts "nothing", "automatic" or "callback".
func (m *ResizeMode) UnmarshalYAML(value *yaml.Node) error {
	for mode, name := range resizeModeNames {
		if value.Value == name {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown resize mode %q", value.Line, value.Value)
}

// UnmarshalYAML accepts "left", "middle", "right" or a button index.
func (b *MouseButton) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "left":
		*b = MouseButtonLeft
	case "middle":
		*b = MouseButtonMiddle
	case "right":
		*b = MouseButtonRight
	default:
		n, err := strconv.Atoi(value.Value)
		if err != nil || n < 0 {
			return fmt.Errorf("line %d: invalid mouse button %q", value.Line, value.Value)
		}
		*b = MouseButton(n)
	}
	return nil
}

// Settings configures the console plugin. Insert it with SettingsResource
// before calling App.Run; the runner consumes it once and later changes have
// no effect.
type Settings struct {
	// AppOptions is passed to the backend.
	AppOptions console.AppOptions
	// MouseButtonListeners lists the buttons polled into Input. Nil means
	// left, middle and right; an empty non-nil slice polls no button.
	MouseButtonListeners []MouseButton
	ResizeMode           ResizeMode
	// ResizeCallback is required when ResizeMode is ResizeCallback.
	ResizeCallback func(root *RootConsole, ev Resized)
	// Backend runs the console loop.
	Backend console.Backend
	Logger  *zap.Logger
}

// SettingsResource holds the Settings until the runner consumes them.
var SettingsResource = NewResource[Settings]("Settings")

// DefaultSettings returns the default app options, the left, middle and
// right mouse buttons, ResizeNothing, the terminal backend and a no-op
// logger.
func DefaultSettings() Settings {
	return Settings{
		AppOptions:           console.DefaultAppOptions(),
		MouseButtonListeners: []MouseButton{MouseButtonLeft, MouseButtonMiddle, MouseButtonRight},
		ResizeMode:           ResizeNothing,
		Backend:              terminal.Run,
		Logger:               zap.NewNop(),
	}
}

// Validate reports configuration errors that would break the loop.
func (s *Settings) Validate() error {
	var errs []error
	o := s.AppOptions
	if o.ConsoleWidth <= 0 || o.ConsoleHeight <= 0 {
		errs = append(errs, fmt.Errorf("console size %dx%d must be positive", o.ConsoleWidth, o.ConsoleHeight))
	}
	if o.ScreenWidth <= 0 || o.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", o.ScreenWidth, o.ScreenHeight))
	}
	if _, ok := resizeModeNames[s.ResizeMode]; !ok {
		errs = append(errs, fmt.Errorf("unknown resize mode %v", s.ResizeMode))
	}
	if s.ResizeMode == ResizeCallback && s.ResizeCallback == nil {
		errs = append(errs, errors.New("resize mode callback requires a ResizeCallback"))
	}
	if s.Backend == nil {
		errs = append(errs, errors.New("backend is nil"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("burrow: invalid settings: %w", err)
	}
	return nil
}

// takeSettings returns the stored settings, or the defaults when none were
// inserted, and leaves the defaults in their place. A nil Backend, Logger or
// MouseButtonListeners is replaced by its default.
func takeSettings(w donburi.World) Settings {
	if !SettingsResource.Has(w) {
		SettingsResource.Insert(w, DefaultSettings())
		return DefaultSettings()
	}
	s := SettingsResource.Replace(w, DefaultSettings())
	if s.Backend == nil {
		s.Backend = terminal.Run
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.MouseButtonListeners == nil {
		s.MouseButtonListeners = DefaultSettings().MouseButtonListeners
	}
	return s
}

// LogConfig configures the zap logger built by LoadSettings.
type LogConfig struct {
	// Level is a zap level name; empty means info.
	Level string `yaml:"level"`
	// Development selects zap's development config with colored levels.
	Development bool `yaml:"development"`
}

// Build creates the logger.
func (c LogConfig) Build() (*zap.Logger, error) {
	var cfg zap.Config
	if c.Development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	level := zapcore.InfoLevel
	if c.Level != "" {
		l, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

type settingsFile struct {
	AppOptions           console.AppOptions `yaml:"app_options"`
	MouseButtonListeners []MouseButton      `yaml:"mouse_button_listeners"`
	ResizeMode           ResizeMode         `yaml:"resize_mode"`
	Log                  *LogConfig         `yaml:"log"`
}

// LoadSettings decodes YAML settings over DefaultSettings. Unknown keys are
// rejected. The backend and resize callback cannot be set from YAML.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	f := settingsFile{
		AppOptions:           s.AppOptions,
		MouseButtonListeners: s.MouseButtonListeners,
		ResizeMode:           s.ResizeMode,
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("burrow: decode settings: %w", err)
	}
	s.AppOptions = f.AppOptions
	s.MouseButtonListeners = f.MouseButtonListeners
	s.ResizeMode = f.ResizeMode
	if f.Log != nil {
		logger, err := f.Log.Build()
		if err != nil {
			return Settings{}, fmt.Errorf("burrow: build logger: %w", err)
		}
		s.Logger = logger
	}
	return s, nil
}

// LoadSettingsFile reads settings from a YAML file.
func LoadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("burrow: open settings: %w", err)
	}
	defer f.Close()
	return LoadSettings(f)
}
