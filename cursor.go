package vterm

// CursorStyle determines how the cursor is rendered (DECSCUSR).
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Cursor tracks the current position, style, and pending-wrap state
// (0-based coordinates, X is the column).
type Cursor struct {
	X       int
	Y       int
	Style   CursorStyle
	Visible bool
	// WrapNext is set when the cursor sits past the last written column:
	// the next printable wraps to the following line before being written.
	WrapNext bool
}

// NewCursor creates a cursor at (0, 0) with blinking block style, visible.
func NewCursor() *Cursor {
	return &Cursor{
		Style:   CursorStyleBlinkingBlock,
		Visible: true,
	}
}

// CellTemplate defines the attributes applied to newly written characters.
// Modified by SGR escape sequences.
type CellTemplate struct {
	Cell
}

// NewCellTemplate creates a template with default attributes.
func NewCellTemplate() CellTemplate {
	return CellTemplate{Cell: NewCell()}
}

// SavedCursor snapshots everything DECSC captures: position, attribute
// template, origin mode, charset state, scroll region, and cursor style.
// Two slots exist, one per screen.
type SavedCursor struct {
	X             int
	Y             int
	Template      CellTemplate
	Origin        bool
	Charsets      [4]Charset
	ActiveCharset int
	ScrollTop     int
	ScrollBottom  int
	Style         CursorStyle
	valid         bool
}

// Charset selects a character encoding variant for one of the G0..G3 slots.
type Charset int

const (
	CharsetASCII Charset = iota
	// CharsetGraphic0 is the VT100 special graphics (line drawing) set.
	CharsetGraphic0
	CharsetUK
	CharsetMulti
	CharsetGerman
)

// CharsetIndex selects one of the four designation slots.
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// graphic0 maps the printable range 0x41..0x7E to the VT100 special
// graphics glyphs. Zero entries pass through unchanged.
var graphic0 = [62]rune{
	'↑', '↓', '→', '←', '█', '▚', '☃', // A - G
	0, 0, 0, 0, 0, 0, 0, 0, // H - O
	0, 0, 0, 0, 0, 0, 0, 0, // P - W
	0, 0, 0, 0, 0, 0, 0, ' ', // X - _
	'◆', '▒', '␉', '␌', '␍', '␊', '°', '±', // ` - g
	'␤', '␋', '┘', '┐', '┌', '└', '┼', '⎺', // h - o
	'⎻', '─', '⎼', '⎽', '├', '┤', '┴', '┬', // p - w
	'│', '≤', '≥', 'π', '≠', '£', '·', // x - ~
}

// translateCharset maps a printable through the active charset.
func translateCharset(cs Charset, r rune) rune {
	switch cs {
	case CharsetGraphic0:
		if r >= 'A' && r <= '~' {
			if g := graphic0[r-'A']; g != 0 {
				return g
			}
		}
	case CharsetUK:
		if r == '#' {
			return '£'
		}
	case CharsetGerman:
		switch r {
		case '@':
			return '§'
		case '[':
			return 'Ä'
		case '\\':
			return 'Ö'
		case ']':
			return 'Ü'
		case '{':
			return 'ä'
		case '|':
			return 'ö'
		case '}':
			return 'ü'
		case '~':
			return 'ß'
		}
	}
	return r
}
