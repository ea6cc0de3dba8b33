package vterm

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how the terminal is rendered to an image.
type ScreenshotConfig struct {
	// Font face for glyph rendering. Defaults to basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions derived from
	// font metrics.
	CellWidth  int
	CellHeight int

	// ShowCursor controls whether the cursor cell is inverted. Default
	// true.
	ShowCursor *bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot renders the visible screen to an RGBA image with default
// settings.
func (t *Terminal) Screenshot() *image.RGBA {
	return t.ScreenshotWithConfig(&ScreenshotConfig{})
}

// ScreenshotWithConfig renders the visible screen (including any history
// view offset) to an RGBA image. Box-drawing, block-element, and braille
// cells flagged by the emulator are painted geometrically from their
// descriptors rather than from the font.
func (t *Terminal) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()

	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	metrics := face.Metrics()
	cellW := cfg.CellWidth
	if cellW <= 0 {
		if adv, ok := face.GlyphAdvance('M'); ok {
			cellW = adv.Ceil()
		} else {
			cellW = 7
		}
	}
	cellH := cfg.CellHeight
	if cellH <= 0 {
		cellH = metrics.Height.Ceil()
	}
	ascent := metrics.Ascent.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, t.cols*cellW, t.rows*cellH))
	reverse := t.modes&ModeReverseVideo != 0

	showCursor := t.cursor.Visible && t.histOffset == 0
	if cfg.ShowCursor != nil {
		showCursor = showCursor && *cfg.ShowCursor
	}

	drawer := &font.Drawer{Dst: img, Face: face}

	for row := 0; row < t.rows; row++ {
		line := t.visibleLineLocked(row)
		if line == nil {
			continue
		}
		for col := 0; col < t.cols && col < len(line); col++ {
			cell := &line[col]
			if cell.IsWideSpacer() {
				continue
			}

			fg := t.resolveColorLocked(cell.Fg)
			bg := t.resolveColorLocked(cell.Bg)
			if cell.HasFlag(CellFlagReverse) != reverse {
				fg, bg = bg, fg
			}
			if cell.HasFlag(CellFlagHidden) {
				fg = bg
			}
			if showCursor && row == t.cursor.Y && col == t.cursor.X {
				fg, bg = bg, t.resolveColorLocked(ColorCursor)
			}

			w := cellW * cell.Width()
			rect := image.Rect(col*cellW, row*cellH, col*cellW+w, (row+1)*cellH)
			draw.Draw(img, rect, image.NewUniform(bg), image.Point{}, draw.Src)

			if cell.Char == 0 || cell.Char == ' ' {
				continue
			}

			if cell.HasFlag(CellFlagBoxDraw) {
				desc := BoxDescriptor(cell.Char)
				if cell.HasFlag(CellFlagBold) && boxCategory(desc) == BoxLines {
					desc |= BoxBold
				}
				drawBoxCell(img, rect, desc, fg)
				continue
			}

			drawer.Src = image.NewUniform(fg)
			drawer.Dot = fixed.P(col*cellW, row*cellH+ascent)
			drawer.DrawString(string(cell.Char))

			if cell.HasFlag(CellFlagUnderline) {
				uy := row*cellH + ascent + 1
				fillRect(img, image.Rect(rect.Min.X, uy, rect.Max.X, uy+1), fg)
			}
			if cell.HasFlag(CellFlagStruck) {
				sy := row*cellH + cellH/2
				fillRect(img, image.Rect(rect.Min.X, sy, rect.Max.X, sy+1), fg)
			}
		}
	}

	return img
}

// WriteScreenshotPNG renders the screen and writes it as PNG.
func (t *Terminal) WriteScreenshotPNG(w io.Writer) error {
	return png.Encode(w, t.Screenshot())
}

// SaveScreenshotPNG renders the screen and saves it as a PNG file.
func (t *Terminal) SaveScreenshotPNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteScreenshotPNG(f)
}

// --- Geometric drawing of box descriptors ---

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawBoxCell paints one cell from its box descriptor. The drawing rules
// are the renderer half of the descriptor contract: side bits select line
// segments from the cell center to each edge, block categories fill eighths
// of the cell, quadrants fill cell quarters, shades alpha-blend the
// foreground, and braille descriptors place a 2x4 dot grid.
func drawBoxCell(img *image.RGBA, r image.Rectangle, desc uint16, fg color.RGBA) {
	switch boxCategory(desc) {
	case BoxLines, BoxArc:
		drawBoxLines(img, r, desc, fg)
	case BoxBlockDn:
		n := int(desc & 0xF)
		top := r.Max.Y - r.Dy()*n/8
		fillRect(img, image.Rect(r.Min.X, top, r.Max.X, r.Max.Y), fg)
	case BoxBlockUp:
		n := int(desc & 0xF)
		fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+r.Dy()*n/8), fg)
	case BoxBlockLf:
		n := int(desc & 0xF)
		fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+r.Dx()*n/8, r.Max.Y), fg)
	case BoxBlockRt:
		n := int(desc & 0xF)
		fillRect(img, image.Rect(r.Max.X-r.Dx()*n/8, r.Min.Y, r.Max.X, r.Max.Y), fg)
	case BoxQuadrant:
		cx := r.Min.X + r.Dx()/2
		cy := r.Min.Y + r.Dy()/2
		if desc&boxQuadTL != 0 {
			fillRect(img, image.Rect(r.Min.X, r.Min.Y, cx, cy), fg)
		}
		if desc&boxQuadTR != 0 {
			fillRect(img, image.Rect(cx, r.Min.Y, r.Max.X, cy), fg)
		}
		if desc&boxQuadBL != 0 {
			fillRect(img, image.Rect(r.Min.X, cy, cx, r.Max.Y), fg)
		}
		if desc&boxQuadBR != 0 {
			fillRect(img, image.Rect(cx, cy, r.Max.X, r.Max.Y), fg)
		}
	case BoxShade:
		alpha := uint32(desc&0x3) * 64
		shaded := image.NewUniform(color.RGBA{
			R: uint8(uint32(fg.R) * alpha / 256),
			G: uint8(uint32(fg.G) * alpha / 256),
			B: uint8(uint32(fg.B) * alpha / 256),
			A: uint8(alpha),
		})
		draw.Draw(img, r, shaded, image.Point{}, draw.Over)
	case BoxBraille:
		drawBraille(img, r, byte(desc), fg)
	}
}

// drawBoxLines paints the side segments of a line descriptor. Light sides
// are a single centered stroke, double sides two parallel strokes, and
// heavy sides (light + double) one thick stroke.
func drawBoxLines(img *image.RGBA, r image.Rectangle, desc uint16, fg color.RGBA) {
	thick := r.Dy() / 8
	if thick < 1 {
		thick = 1
	}
	if desc&BoxBold != 0 {
		thick++
	}
	cx := r.Min.X + r.Dx()/2
	cy := r.Min.Y + r.Dy()/2
	gap := thick + 1

	// Horizontal strokes for one side: from the cell edge to just past the
	// center so joints are gapless.
	hseg := func(x0, x1, y, t int) {
		fillRect(img, image.Rect(x0, y-t/2, x1, y-t/2+t), fg)
	}
	vseg := func(y0, y1, x, t int) {
		fillRect(img, image.Rect(x-t/2, y0, x-t/2+t, y1), fg)
	}

	paintSide := func(light, double bool, draw1 func(t, off int)) {
		switch {
		case light && double: // heavy
			draw1(thick*2, 0)
		case double:
			draw1(thick, -gap)
			draw1(thick, gap)
		case light:
			draw1(thick, 0)
		}
	}

	paintSide(desc&boxL != 0, desc&boxL2 != 0, func(t, off int) {
		hseg(r.Min.X, cx+t, cy+off, t)
	})
	paintSide(desc&boxR != 0, desc&boxR2 != 0, func(t, off int) {
		hseg(cx-t, r.Max.X, cy+off, t)
	})
	paintSide(desc&boxU != 0, desc&boxU2 != 0, func(t, off int) {
		vseg(r.Min.Y, cy+t, cx+off, t)
	})
	paintSide(desc&boxD != 0, desc&boxD2 != 0, func(t, off int) {
		vseg(cy-t, r.Max.Y, cx+off, t)
	})
}

// drawBraille places the 2x4 dot grid encoded in the descriptor's low byte.
// Bits 0..2 and 6 are the left column top to bottom, bits 3..5 and 7 the
// right column.
func drawBraille(img *image.RGBA, r image.Rectangle, pattern byte, fg color.RGBA) {
	dotW := maxInt(r.Dx()/4, 1)
	dotH := maxInt(r.Dy()/8, 1)

	dot := func(col, row int) {
		x := r.Min.X + r.Dx()*(1+2*col)/4 - dotW/2
		y := r.Min.Y + r.Dy()*(1+2*row)/8 - dotH/2
		fillRect(img, image.Rect(x, y, x+dotW, y+dotH), fg)
	}

	positions := [8][2]int{
		{0, 0}, {0, 1}, {0, 2}, // dots 1-3
		{1, 0}, {1, 1}, {1, 2}, // dots 4-6
		{0, 3}, {1, 3}, // dots 7-8
	}
	for bit, pos := range positions {
		if pattern&(1<<bit) != 0 {
			dot(pos[0], pos[1])
		}
	}
}
