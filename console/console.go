package console

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	ColorBlack = Color{0, 0, 0, 255}
	ColorWhite = Color{255, 255, 255, 255}
)

// Cell is a single character cell of a console.
type Cell struct {
	Rune rune
	Fore Color
	Back Color
}

// TextAlign controls how Print positions text relative to x.
type TextAlign uint8

const (
	AlignLeft   TextAlign = iota // text starts at x
	AlignCenter                  // text is centered on x
	AlignRight                   // text ends at x
)

// Console is a fixed-size grid of cells. The zero value is an empty 0x0
// console; use New to allocate one.
//
// Cells are row-major: cells[y*width + x].
type Console struct {
	width  int
	height int
	cells  []Cell
}

// New creates a console of the given size filled with blank cells.
// Negative dimensions are treated as zero.
func New(width, height int) Console {
	width, height = max(width, 0), max(height, 0)
	c := Console{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c.Clear(' ', ColorWhite, ColorBlack)
	return c
}

// Size returns the console dimensions in cells.
func (c *Console) Size() (width, height int) {
	return c.width, c.height
}

// Resize changes the console dimensions. Cells inside both the old and the
// new area keep their content; new cells are blank.
func (c *Console) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == c.width && height == c.height {
		return
	}
	next := New(width, height)
	for y := range min(height, c.height) {
		copy(next.cells[y*width:y*width+min(width, c.width)], c.cells[y*c.width:])
	}
	*c = next
}

// Clear sets every cell to the given rune and colors.
func (c *Console) Clear(r rune, fore, back Color) {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: r, Fore: fore, Back: back}
	}
}

// In reports whether (x, y) lies inside the console.
func (c *Console) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// At returns the cell at (x, y). Out-of-range coordinates yield a zero Cell.
func (c *Console) At(x, y int) Cell {
	if !c.In(x, y) {
		return Cell{}
	}
	return c.cells[y*c.width+x]
}

// Set replaces the cell at (x, y). Out-of-range coordinates are ignored.
func (c *Console) Set(x, y int, cell Cell) {
	if !c.In(x, y) {
		return
	}
	c.cells[y*c.width+x] = cell
}

// SetRune changes only the rune and foreground color at (x, y), keeping the
// background.
func (c *Console) SetRune(x, y int, r rune, fore Color) {
	if !c.In(x, y) {
		return
	}
	cell := &c.cells[y*c.width+x]
	cell.Rune = r
	cell.Fore = fore
}

// SetBack changes only the background color at (x, y).
func (c *Console) SetBack(x, y int, back Color) {
	if !c.In(x, y) {
		return
	}
	c.cells[y*c.width+x].Back = back
}

// Print writes s on row y using fore as the foreground color. Runes that
// occupy two terminal columns take two cells; the second is left blank.
func (c *Console) Print(x, y int, s string, align TextAlign, fore Color) {
	w := runewidth.StringWidth(s)
	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.SetRune(x, y, r, fore)
		for i := 1; i < rw; i++ {
			c.SetRune(x+i, y, ' ', fore)
		}
		x += rw
	}
}

// Cells returns the backing cell slice. The slice is shared with the console
// and becomes stale after Resize.
func (c *Console) Cells() []Cell {
	return c.cells
}

// Equal reports whether two consoles have the same size and cells.
func (c *Console) Equal(other *Console) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.cells {
		if c.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String returns the console runes row by row, separated by newlines, with
// trailing spaces and trailing blank rows trimmed.
func (c *Console) String() string {
	var b strings.Builder
	row := make([]rune, c.width)
	for y := range c.height {
		for x := range c.width {
			r := c.cells[y*c.width+x].Rune
			if r == 0 {
				r = ' '
			}
			row[x] = r
		}
		b.WriteString(strings.TrimRight(string(row), " "))
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
