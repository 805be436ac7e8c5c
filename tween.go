package burrow

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/burrow/console"
)

// TweenGroup animates up to 4 values simultaneously. Create one with
// TweenPosition, TweenValue or TweenColor and advance it from a system with
// Update or UpdateFrame.
//
// There is no global animation manager; systems own their groups.
type TweenGroup struct {
	tweens [4]*gween.Tween
	set    [4]func(float32)
	count  int
	Done   bool
}

func (g *TweenGroup) add(from, to, duration float32, fn ease.TweenFunc, set func(float32)) {
	g.tweens[g.count] = gween.New(from, to, duration, fn)
	g.set[g.count] = set
	g.count++
}

// Update advances every tween by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := range g.count {
		val, finished := g.tweens[i].Update(dt)
		g.set[i](val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// UpdateFrame advances the group by one frame at the rate in FPSInfo.
func (g *TweenGroup) UpdateFrame(w donburi.World) {
	g.Update(FrameDelta(w))
}

// FrameDelta returns the duration of one frame in seconds, derived from the
// current FPSInfo. Before the loop reports a rate it assumes
// console.DefaultMaxFPS.
func FrameDelta(w donburi.World) float32 {
	fps := FPSInfoResource.MustGet(w).FPS
	if fps <= 0 {
		fps = console.DefaultMaxFPS
	}
	return 1 / float32(fps)
}

// TweenValue animates *v to the target value.
func TweenValue(v *float32, to, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(*v, to, duration, fn, func(x float32) { *v = x })
	return g
}

// TweenPosition animates a cell position. Values are fractional; round them
// when drawing.
func TweenPosition(x, y *float32, toX, toY, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(*x, toX, duration, fn, func(v float32) { *x = v })
	g.add(*y, toY, duration, fn, func(v float32) { *y = v })
	return g
}

// TweenColor animates all four components of *c to the target color.
func TweenColor(c *console.Color, to console.Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(float32(c.R), float32(to.R), duration, fn, func(v float32) { c.R = clampByte(v) })
	g.add(float32(c.G), float32(to.G), duration, fn, func(v float32) { c.G = clampByte(v) })
	g.add(float32(c.B), float32(to.B), duration, fn, func(v float32) { c.B = clampByte(v) })
	g.add(float32(c.A), float32(to.A), duration, fn, func(v float32) { c.A = clampByte(v) })
	return g
}

// clampByte rounds v to the nearest byte; easing functions may overshoot.
func clampByte(v float32) uint8 {
	return uint8(math.Round(float64(min(max(v, 0), 255))))
}
