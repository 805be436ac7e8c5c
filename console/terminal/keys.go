package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/burrow/console"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      console.KeyEnter,
	tcell.KeyEsc:        console.KeyEscape,
	tcell.KeyTab:        console.KeyTab,
	tcell.KeyBackspace:  console.KeyBackspace,
	tcell.KeyBackspace2: console.KeyBackspace,
	tcell.KeyDelete:     console.KeyDelete,
	tcell.KeyInsert:     console.KeyInsert,
	tcell.KeyHome:       console.KeyHome,
	tcell.KeyEnd:        console.KeyEnd,
	tcell.KeyPgUp:       console.KeyPageUp,
	tcell.KeyPgDn:       console.KeyPageDown,
	tcell.KeyUp:         console.KeyArrowUp,
	tcell.KeyDown:       console.KeyArrowDown,
	tcell.KeyLeft:       console.KeyArrowLeft,
	tcell.KeyRight:      console.KeyArrowRight,
}

// tcell reports Button2 for the secondary button and Button3 for the middle
// one.
var buttonIndex = map[tcell.ButtonMask]int{
	tcell.Button1: console.MouseLeft,
	tcell.Button3: console.MouseMiddle,
	tcell.Button2: console.MouseRight,
}

// keyCode maps a tcell key event to a console key code.
func keyCode(ev *tcell.EventKey) (string, bool) {
	key := ev.Key()
	if key == tcell.KeyRune {
		return console.RuneKeyCode(ev.Rune())
	}
	if code, ok := specialKeys[key]; ok {
		return code, true
	}
	if key >= tcell.KeyF1 && key <= tcell.KeyF12 {
		return fmt.Sprintf("F%d", int(key-tcell.KeyF1)+1), true
	}
	return "", false
}
