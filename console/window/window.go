// Package window runs a console loop in an OS window through Ebitengine.
//
// Glyphs come from a bitmap font laid out as a 16x16 grid of code page 437
// characters, the format used by most roguelike fonts. The glyph size is the
// image size divided by 16. Until a font loads, glyphs are drawn with
// Ebitengine's debug font.
package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/phanxgames/burrow/console"
)

const glyphsPerRow = 16

var mouseButtons = [...]ebiten.MouseButton{
	console.MouseLeft:   ebiten.MouseButtonLeft,
	console.MouseMiddle: ebiten.MouseButtonMiddle,
	console.MouseRight:  ebiten.MouseButtonRight,
}

// Game adapts a console.Engine to ebiten.Game. It implements console.API for
// the engine callbacks.
type Game struct {
	opts   console.AppOptions
	engine console.Engine
	con    console.Console
	input  *console.InputState

	screenWidth  int
	screenHeight int

	fontPath   string
	loadedPath string
	font       *ebiten.Image
	glyphs     [256]*ebiten.Image
	glyphW     int
	glyphH     int

	keys  []ebiten.Key
	chars []rune
	codes []string
	pixel *ebiten.Image
}

var _ console.API = (*Game)(nil)

// New creates a game for engine. Call Run, or pass the game to
// ebiten.RunGame after configuring the window yourself.
func New(opts console.AppOptions, engine console.Engine) *Game {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Game{
		opts:         opts,
		engine:       engine,
		con:          console.New(opts.ConsoleWidth, opts.ConsoleHeight),
		input:        console.NewInputState(),
		screenWidth:  opts.ScreenWidth,
		screenHeight: opts.ScreenHeight,
		fontPath:     opts.FontPath,
		pixel:        pixel,
	}
}

// Run configures the window from opts and runs engine until it asks to exit
// or the window is closed. It matches console.Backend.
func Run(opts console.AppOptions, engine console.Engine) error {
	ebiten.SetWindowSize(opts.ScreenWidth, opts.ScreenHeight)
	ebiten.SetWindowTitle(opts.WindowTitle)
	if opts.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(opts.Fullscreen)
	ebiten.SetVsyncEnabled(opts.VSync)
	ebiten.SetTPS(opts.FPS())
	ebiten.SetWindowClosingHandled(opts.InterceptCloseRequest)
	if !opts.ShowCursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	g := New(opts, engine)
	engine.Start(g)
	return ebiten.RunGame(g)
}

func (g *Game) Con() *console.Console  { return &g.con }
func (g *Game) Input() console.Input   { return g.input }
func (g *Game) FPS() int               { return int(ebiten.ActualFPS()) }
func (g *Game) AverageFPS() int        { return int(ebiten.ActualTPS()) }
func (g *Game) ScreenSize() (int, int) { return g.screenWidth, g.screenHeight }

// SetFontPath schedules a font change; the font loads before the next
// update.
func (g *Game) SetFontPath(path string) { g.fontPath = path }

// Update polls input and runs the engine's update.
func (g *Game) Update() error {
	if g.fontPath != g.loadedPath {
		g.loadFont(g.fontPath)
	}
	g.pollInput()
	ev := g.engine.Update(g)
	g.input.EndFrame()
	if ev == console.UpdateExit {
		return ebiten.Termination
	}
	return nil
}

// Draw runs the engine's render and paints the console.
func (g *Game) Draw(screen *ebiten.Image) {
	g.engine.Render(g)
	g.drawConsole(screen)
}

// Layout reports the screen size and calls the engine's resize when the
// outside size changed.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.screenWidth, g.screenHeight = outsideWidth, outsideHeight
		g.engine.Resize(g)
	}
	return g.screenWidth, g.screenHeight
}

func (g *Game) pollInput() {
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	g.codes = g.codes[:0]
	for _, k := range g.keys {
		if code, ok := keyCode(k); ok {
			g.codes = append(g.codes, code)
		}
	}
	g.input.SetKeysDown(g.codes)

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	g.input.AppendText(string(g.chars))

	for n, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b) {
			g.input.ButtonDown(n)
		} else {
			g.input.ButtonUp(n)
		}
	}

	cw, ch := g.con.Size()
	x, y := ebiten.CursorPosition()
	g.input.MoveMouse(cellAt(x, g.screenWidth, cw), cellAt(y, g.screenHeight, ch))

	if ebiten.IsWindowBeingClosed() {
		g.input.RequestClose()
	}
}

func (g *Game) loadFont(path string) {
	g.loadedPath = path
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		g.opts.Log().Warn("window: load font failed, using the debug font",
			zap.String("path", path), zap.Error(err))
		return
	}
	b := img.Bounds()
	g.font = img
	g.glyphW, g.glyphH = b.Dx()/glyphsPerRow, b.Dy()/glyphsPerRow
	for i := range g.glyphs {
		x, y := (i%glyphsPerRow)*g.glyphW, (i/glyphsPerRow)*g.glyphH
		g.glyphs[i] = img.SubImage(image.Rect(x, y, x+g.glyphW, y+g.glyphH)).(*ebiten.Image)
	}
}

func (g *Game) glyph(r rune) *ebiten.Image {
	if r < 0 || int(r) >= len(g.glyphs) {
		r = '?'
	}
	return g.glyphs[r]
}

// drawConsole paints backgrounds first, then glyphs, so each pass uses a
// single source image and batches into one draw call.
func (g *Game) drawConsole(screen *ebiten.Image) {
	cw, ch := g.con.Size()
	if cw == 0 || ch == 0 {
		return
	}
	cellW := float64(g.screenWidth) / float64(cw)
	cellH := float64(g.screenHeight) / float64(ch)

	var op ebiten.DrawImageOptions
	for y := range ch {
		for x := range cw {
			op.GeoM.Reset()
			op.GeoM.Scale(cellW, cellH)
			op.GeoM.Translate(float64(x)*cellW, float64(y)*cellH)
			op.ColorScale.Reset()
			op.ColorScale.ScaleWithColor(toRGBA(g.con.At(x, y).Back))
			screen.DrawImage(g.pixel, &op)
		}
	}

	for y := range ch {
		for x := range cw {
			cell := g.con.At(x, y)
			if cell.Rune == ' ' || cell.Rune == 0 {
				continue
			}
			px, py := float64(x)*cellW, float64(y)*cellH
			if g.font == nil {
				ebitenutil.DebugPrintAt(screen, string(cell.Rune), int(px), int(py))
				continue
			}
			op.GeoM.Reset()
			op.GeoM.Scale(cellW/float64(g.glyphW), cellH/float64(g.glyphH))
			op.GeoM.Translate(px, py)
			op.ColorScale.Reset()
			op.ColorScale.ScaleWithColor(toRGBA(cell.Fore))
			screen.DrawImage(g.glyph(cell.Rune), &op)
		}
	}
}

func toRGBA(c console.Color) color.RGBA {
	// color.RGBA is premultiplied
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

// cellAt converts a pixel coordinate to a console cell coordinate.
func cellAt(pixel, screenSize, cells int) float32 {
	if screenSize <= 0 {
		return 0
	}
	return float32(pixel) * float32(cells) / float32(screenSize)
}

// keyCode maps an Ebitengine key to a console key code. Ebitengine already
// names most keys the same way; letter keys gain the "Key" prefix.
func keyCode(k ebiten.Key) (string, bool) {
	name := k.String()
	if name == "" {
		return "", false
	}
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return "Key" + name, true
	}
	return name, true
}
