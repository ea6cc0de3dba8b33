package vterm

import (
	"image/color"
	"testing"
)

func TestColorKeys(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if !c.IsRGB() {
		t.Fatal("direct color should report IsRGB")
	}
	r, g, b := c.RGBValues()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("expected (12,34,56), got (%x,%x,%x)", r, g, b)
	}

	if Color(3).IsRGB() || Color(255).IsRGB() {
		t.Error("palette keys must not report IsRGB")
	}
	if !ColorForeground.IsSpecial() || !ColorCursor.IsSpecial() {
		t.Error("special slots should report IsSpecial")
	}
	if Color(15).IsSpecial() {
		t.Error("base palette keys are not special")
	}
}

func TestPaletteInit(t *testing.T) {
	p := NewPalette(DefaultBaseColors)

	if p.Color(1) != DefaultBaseColors[1] {
		t.Error("base colors should come from the configured table")
	}
	// Cube corners.
	if got := p.Color(16); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("cube start should be black, got %v", got)
	}
	if got := p.Color(231); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("cube end should be white, got %v", got)
	}
	// xterm cube: index 196 is pure red.
	if got := p.Color(196); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("index 196 should be red, got %v", got)
	}
	// Grayscale ramp.
	if got := p.Color(232); got != (color.RGBA{8, 8, 8, 255}) {
		t.Errorf("first gray should be 8, got %v", got)
	}
	if got := p.Color(255); got != (color.RGBA{238, 238, 238, 255}) {
		t.Errorf("last gray should be 238, got %v", got)
	}
}

func TestPaletteOverrideAndReset(t *testing.T) {
	p := NewPalette(DefaultBaseColors)

	p.Set(5, color.RGBA{1, 2, 3, 255})
	if p.Color(5) != (color.RGBA{1, 2, 3, 255}) {
		t.Error("override not applied")
	}
	p.Reset(5)
	if p.Color(5) != DefaultBaseColors[5] {
		t.Error("reset should restore the computed default")
	}

	p.Set(200, color.RGBA{9, 9, 9, 255})
	other := p.Color(100)
	p.Reset(200)
	if p.Color(100) != other {
		t.Error("resetting one index must not disturb others")
	}
}

func TestParseColorSpec(t *testing.T) {
	p := NewPalette(DefaultBaseColors)

	tests := []struct {
		name string
		in   string
		want color.RGBA
		ok   bool
	}{
		{"rgb form", "rgb:ff/00/80", color.RGBA{255, 0, 128, 255}, true},
		{"rgb short", "rgb:f/0/8", color.RGBA{255, 0, 136, 255}, true},
		{"rgb long", "rgb:ffff/0000/8080", color.RGBA{255, 0, 128, 255}, true},
		{"hash form", "#102030", color.RGBA{16, 32, 48, 255}, true},
		{"index form", "1", DefaultBaseColors[1], true},
		{"bad", "nonsense", color.RGBA{}, false},
		{"bad rgb", "rgb:zz/00/00", color.RGBA{}, false},
		{"out of range index", "300", color.RGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseColorSpec(tt.in, p)
			if ok != tt.ok {
				t.Fatalf("ok=%v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatColorResponse(t *testing.T) {
	got := formatColorResponse(color.RGBA{0xff, 0x00, 0x80, 0xff})
	if got != "rgb:ffff/0000/8080" {
		t.Errorf("expected 'rgb:ffff/0000/8080', got %q", got)
	}
}

func TestTerminalResolveColor(t *testing.T) {
	term := New(WithSize(2, 10))

	if got := term.ResolveColor(RGB(1, 2, 3)); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("direct color: got %v", got)
	}
	if got := term.ResolveColor(Color(1)); got != DefaultBaseColors[1] {
		t.Errorf("palette color: got %v", got)
	}
	if got := term.ResolveColor(ColorForeground); got != (color.RGBA{229, 229, 229, 255}) {
		t.Errorf("default fg: got %v", got)
	}
	if got := term.ResolveColor(ColorBackground); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("default bg: got %v", got)
	}
}
