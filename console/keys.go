package console

// Key codes for keys that have no printable character. Letter keys are
// "KeyA" through "KeyZ" and digit keys "Digit0" through "Digit9".
const (
	KeyEscape     = "Escape"
	KeyEnter      = "Enter"
	KeySpace      = "Space"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyInsert     = "Insert"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

var punctuationCodes = map[rune]string{
	'-': "Minus", '_': "Minus",
	'=': "Equal", '+': "Equal",
	'[': "BracketLeft", '{': "BracketLeft",
	']': "BracketRight", '}': "BracketRight",
	'\\': "Backslash", '|': "Backslash",
	';': "Semicolon", ':': "Semicolon",
	'\'': "Quote", '"': "Quote",
	',': "Comma", '<': "Comma",
	'.': "Period", '>': "Period",
	'/': "Slash", '?': "Slash",
	'`': "Backquote", '~': "Backquote",
}

// RuneKeyCode returns the code of the key that produces r on a US layout.
// The second result is false for runes without a key.
func RuneKeyCode(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(r-'a'+'A'), true
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r), true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), true
	case r == ' ':
		return KeySpace, true
	}
	code, ok := punctuationCodes[r]
	return code, ok
}
