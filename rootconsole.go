package burrow

import "github.com/phanxgames/burrow/console"

// RootConsole lends the console loop's root console to systems. The console
// is only available while a pass runs; the frame driver takes it from the
// loop before the pass and gives it back afterwards.
type RootConsole struct {
	con *console.Console
}

// RootConsoleResource holds the RootConsole.
var RootConsoleResource = NewResource[RootConsole]("RootConsole")

// Console returns the root console. It panics with a *ProtocolError outside
// of an update, render or resize callback pass.
func (r *RootConsole) Console() *console.Console {
	if r.con == nil {
		protocolPanic("root console", "console is not lent out; use it from a system")
	}
	return r.con
}

// Held reports whether the console is currently lent out.
func (r *RootConsole) Held() bool { return r.con != nil }

// ownershipCell moves the root console between the loop and RootConsole by
// swapping values with a parked placeholder. Exactly one side holds the real
// console at any time; the other holds the placeholder.
type ownershipCell struct {
	swap *console.Console
}

func newOwnershipCell() *ownershipCell {
	placeholder := console.New(1, 1)
	return &ownershipCell{swap: &placeholder}
}

// take moves the loop's console into root and leaves the placeholder in live.
func (c *ownershipCell) take(live *console.Console, root *RootConsole) {
	if c.swap == nil || root.con != nil {
		protocolPanic("take root console", "console is already taken")
	}
	*live, *c.swap = *c.swap, *live
	root.con, c.swap = c.swap, nil
}

// restore moves the console from root back into live and parks the
// placeholder again.
func (c *ownershipCell) restore(live *console.Console, root *RootConsole) {
	if root.con == nil {
		protocolPanic("restore root console", "console was not taken")
	}
	*live, *root.con = *root.con, *live
	c.swap, root.con = root.con, nil
}
