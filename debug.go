package burrow

import "fmt"

// ProtocolError describes a broken bridge invariant: a required resource that
// was never inserted, a console taken twice, a render schedule re-entered.
// These are wiring bugs, so they are raised with panic rather than returned.
type ProtocolError struct {
	Op  string // operation that detected the violation
	Msg string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("burrow: %s: %s", e.Op, e.Msg)
}

// protocolPanic panics with a *ProtocolError.
func protocolPanic(op, format string, args ...any) {
	panic(&ProtocolError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
