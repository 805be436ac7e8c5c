package console

import "time"

// FPSCounter measures the instantaneous frame rate and a rolling average over
// the last second. Loops that do not get frame rates from their platform use
// it.
type FPSCounter struct {
	last    time.Time
	window  []time.Time
	fps     int
	average int
}

// Tick records a frame at now.
func (f *FPSCounter) Tick(now time.Time) {
	if !f.last.IsZero() {
		if dt := now.Sub(f.last); dt > 0 {
			f.fps = int(time.Second / dt)
		}
	}
	f.last = now

	f.window = append(f.window, now)
	cutoff := now.Add(-time.Second)
	drop := 0
	for drop < len(f.window) && !f.window[drop].After(cutoff) {
		drop++
	}
	f.window = append(f.window[:0], f.window[drop:]...)
	f.average = len(f.window)
}

// FPS returns the rate derived from the last frame interval.
func (f *FPSCounter) FPS() int { return f.fps }

// Average returns the number of frames recorded during the last second.
func (f *FPSCounter) Average() int { return f.average }
