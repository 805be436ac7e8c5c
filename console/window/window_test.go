package window

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/burrow/console"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want string
	}{
		{ebiten.KeyA, "KeyA"},
		{ebiten.KeyZ, "KeyZ"},
		{ebiten.KeyDigit1, "Digit1"},
		{ebiten.KeyEscape, console.KeyEscape},
		{ebiten.KeyArrowUp, console.KeyArrowUp},
		{ebiten.KeyPageDown, console.KeyPageDown},
	}
	for _, tt := range tests {
		got, ok := keyCode(tt.key)
		if !ok || got != tt.want {
			t.Errorf("keyCode(%v) = (%q, %v), want (%q, true)", tt.key, got, ok, tt.want)
		}
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		pixel, screen, cells int
		want                 float32
	}{
		{0, 800, 80, 0},
		{15, 800, 80, 1.5},
		{799, 800, 80, 79.9},
		{10, 0, 80, 0},
	}
	for _, tt := range tests {
		if got := cellAt(tt.pixel, tt.screen, tt.cells); got != tt.want {
			t.Errorf("cellAt(%d, %d, %d) = %v, want %v", tt.pixel, tt.screen, tt.cells, got, tt.want)
		}
	}
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		in   console.Color
		want color.RGBA
	}{
		{console.ColorWhite, color.RGBA{255, 255, 255, 255}},
		{console.Color{R: 200, G: 100, B: 50, A: 0}, color.RGBA{}},
		{console.Color{R: 255, G: 0, B: 0, A: 51}, color.RGBA{51, 0, 0, 51}},
	}
	for _, tt := range tests {
		if got := toRGBA(tt.in); got != tt.want {
			t.Errorf("toRGBA(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
