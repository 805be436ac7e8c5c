package burrow

// AppExit asks the frame driver to stop the console loop after the current
// update pass. Send it with ExitEvents.Send.
type AppExit struct{}

// SetFontPath asks the console loop to switch fonts. When several are sent
// during one update pass only the last one is applied.
type SetFontPath struct {
	Path string
}

// Resized is emitted every time the console loop reports a new screen size.
// Sizes are in the loop's screen units (pixels for windows, cells for
// terminals).
type Resized struct {
	PreviousWidth  int
	PreviousHeight int
	NewWidth       int
	NewHeight      int
}

// FPSInfo holds the frame rates reported by the console loop on the current
// update tick.
type FPSInfo struct {
	FPS        int
	AverageFPS int
}

// FPSInfoResource holds the FPSInfo refreshed at the start of every update.
var FPSInfoResource = NewResource[FPSInfo]("FPSInfo")
