package headless

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/burrow/console"
)

// scriptStep is a single action in a script. Each step consumes one frame.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Button int     `json:"button,omitempty"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Label  string  `json:"label,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input, resizes and console snapshots across
// frames. Attach it to a Loop with SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
}

var knownActions = map[string]bool{
	"press": true, "release": true, "button_down": true, "button_up": true,
	"move": true, "close": true, "resize": true, "wait": true, "snapshot": true,
}

// LoadScript parses a JSON script. A "click" step expands into a button press
// followed by a release on the next frame.
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	s := &Script{}
	for i, st := range file.Steps {
		if st.Action == "click" {
			down, up := st, st
			down.Action, up.Action = "button_down", "button_up"
			s.steps = append(s.steps, down, up)
			continue
		}
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		s.steps = append(s.steps, st)
	}
	return s, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.cursor >= len(s.steps) && s.waitCount == 0
}

// SetScript attaches a script; one step runs at the start of each Step.
func (l *Loop) SetScript(s *Script) {
	l.script = s
}

// Snapshot returns the console text captured by the "snapshot" step with the
// given label.
func (l *Loop) Snapshot(label string) (string, bool) {
	text, ok := l.snapshots[label]
	return text, ok
}

func (s *Script) step(l *Loop, engine console.Engine) {
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		return
	}
	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "press":
		l.Press(st.Key)
	case "release":
		l.Release(st.Key)
	case "button_down":
		l.MoveMouse(st.X, st.Y)
		l.PressButton(st.Button)
	case "button_up":
		l.MoveMouse(st.X, st.Y)
		l.ReleaseButton(st.Button)
	case "move":
		l.MoveMouse(st.X, st.Y)
	case "close":
		l.RequestClose()
	case "resize":
		l.Resize(engine, st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		l.snapshots[st.Label] = l.con.String()
	}
}
