package vterm

import (
	"encoding/base64"
	"image/color"
	"strconv"
	"strings"
)

// Handler receives the decoded terminal actions. Terminal implements it; a
// custom implementation (or a wrapper around Terminal) can be used to
// intercept or record actions.
type Handler interface {
	// Printables and C0/C1 controls.
	Input(r rune)
	Bell()
	Backspace()
	Tab(n int)
	CarriageReturn()
	LineFeed()
	Index()
	NextLine()
	ReverseIndex()
	HorizontalTabSet()
	Substitute()

	// Cursor movement.
	Goto(row, col int)
	GotoLine(row int)
	GotoCol(col int)
	MoveUp(n int)
	MoveDown(n int)
	MoveForward(n int)
	MoveBackward(n int)
	MoveUpCr(n int)
	MoveDownCr(n int)
	MoveForwardTabs(n int)
	MoveBackwardTabs(n int)

	// Editing.
	InsertBlank(n int)
	InsertBlankLines(n int)
	DeleteChars(n int)
	DeleteLines(n int)
	EraseChars(n int)
	ClearLine(mode LineClearMode)
	ClearScreen(mode ClearMode)
	ClearTabs(mode TabClearMode)
	ScrollUp(n int)
	ScrollDown(n int)
	Repeat(n int)

	// Modes and attributes.
	SetMode(mode TerminalMode)
	UnsetMode(mode TerminalMode)
	SetCharAttribute(attr CharAttribute)
	SetScrollingRegion(top, bottom int)
	SetCursorStyle(style CursorStyle)
	SetKeypadApplicationMode()
	UnsetKeypadApplicationMode()
	SaveCursorPosition()
	RestoreCursorPosition()
	Decaln()
	ResetState()

	// Charsets.
	ConfigureCharset(index CharsetIndex, charset Charset)
	SetActiveCharset(n int)
	SingleShift(n int)

	// Reports.
	DeviceStatus(n int)
	IdentifyTerminal(marker byte)
	MediaCopy(n int)

	// OSC sinks.
	SetTitle(title string)
	PushTitle()
	PopTitle()
	SetColor(index int, c color.RGBA)
	ResetColor(index int)
	SetDynamicColor(code int, c color.RGBA)
	ReportDynamicColor(code int, terminator string)
	ResetDynamicColor(code int)
	SetHyperlink(h *Hyperlink)
	ClipboardStore(clipboard byte, data []byte)
	ClipboardLoad(clipboard byte, terminator string)

	// String sequence passthrough.
	DeviceControlReceived(data []byte)
	ApplicationCommandReceived(data []byte)
	PrivacyMessageReceived(data []byte)
	StartOfStringReceived(data []byte)
}

// LineClearMode selects which part of the line EL erases.
type LineClearMode int

const (
	LineClearRight LineClearMode = iota
	LineClearLeft
	LineClearAll
)

// ClearMode selects which part of the display ED erases.
type ClearMode int

const (
	ClearBelow ClearMode = iota
	ClearAbove
	ClearAll
	ClearSaved
)

// TabClearMode selects which tab stops TBC removes.
type TabClearMode int

const (
	TabClearCurrent TabClearMode = iota
	TabClearAll    TabClearMode = 3
)

// AttrKind identifies one SGR action.
type AttrKind int

const (
	AttrReset AttrKind = iota
	AttrBold
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStruck
	AttrCancelBoldFaint
	AttrCancelItalic
	AttrCancelUnderline
	AttrCancelBlink
	AttrCancelReverse
	AttrCancelHidden
	AttrCancelStruck
	AttrForeground
	AttrBackground
	AttrUnderlineColor
)

// CharAttribute is one decoded SGR action. Color is set for the color
// kinds; Underline carries the style for AttrUnderline.
type CharAttribute struct {
	Kind      AttrKind
	Color     Color
	Underline UnderlineStyle
}

// decoderState is the tagged parser state.
type decoderState int

const (
	stateGround decoderState = iota
	stateEscape
	stateCSI
	stateString
	stateCharset
	stateTest
	stateUTF8Select
)

// Decoder limits.
const (
	maxCSIRaw    = 512
	maxCSIParams = 32
	maxSubParams = 16
	maxSTRArgs   = 16
)

// Decoder is the byte-driven escape sequence state machine. It implements
// io.Writer; partial sequences are carried across Write calls.
type Decoder struct {
	handler Handler
	state   decoderState
	utf8    bool

	// Streaming UTF-8 assembly.
	pending [4]byte
	pendLen int
	pendCap int

	// CSI accumulator.
	csiRaw []byte

	// String sequence accumulator.
	strType byte
	strBuf  []byte

	// Charset designation target (G0..G3).
	charsetTarget CharsetIndex
}

// NewDecoder creates a decoder dispatching into the given handler. UTF-8
// input is assumed until an ESC % @ sequence selects Latin-1.
func NewDecoder(handler Handler) *Decoder {
	return &Decoder{
		handler: handler,
		utf8:    true,
		csiRaw:  make([]byte, 0, maxCSIRaw),
	}
}

// Write feeds raw bytes through the state machine. It never fails; the
// returned error is always nil. Implements io.Writer.
func (d *Decoder) Write(data []byte) (int, error) {
	for _, b := range data {
		d.writeByte(b)
	}
	return len(data), nil
}

// writeByte assembles UTF-8 sequences and forwards completed code points.
func (d *Decoder) writeByte(b byte) {
	if !d.utf8 {
		d.advance(rune(b))
		return
	}

	if d.pendLen > 0 {
		if b&0xC0 == 0x80 {
			d.pending[d.pendLen] = b
			d.pendLen++
			if d.pendLen == d.pendCap {
				r, _, err := DecodeRune(d.pending[:d.pendLen])
				held := d.pendLen
				d.pendLen = 0
				if err != nil {
					// Advance one byte; the held continuation bytes are
					// reprocessed and each substitutes U+FFFD as well.
					d.advance(RuneError)
					for _, c := range d.pending[1:held] {
						d.writeByte(c)
					}
				} else {
					d.advance(r)
				}
			}
			return
		}
		// Truncated sequence: substitute for the lead byte, then reprocess
		// the held continuation bytes and the new byte.
		held := d.pendLen
		d.pendLen = 0
		d.advance(RuneError)
		for _, c := range d.pending[1:held] {
			d.writeByte(c)
		}
	}

	n := utf8SeqLen(b)
	switch n {
	case 0:
		d.advance(RuneError)
	case 1:
		d.advance(rune(b))
	default:
		d.pending[0] = b
		d.pendLen = 1
		d.pendCap = n
	}
}

// advance classifies a single code point and moves the state machine.
func (d *Decoder) advance(r rune) {
	if d.state == stateString {
		d.advanceString(r)
		return
	}

	if IsControl(r) {
		d.control(r)
		return
	}

	switch d.state {
	case stateCSI:
		d.advanceCSI(r)
	case stateEscape:
		d.advanceEscape(r)
	case stateCharset:
		d.handler.ConfigureCharset(d.charsetTarget, charsetFor(byte(r)))
		d.state = stateGround
	case stateTest:
		if r == '8' {
			d.handler.Decaln()
		}
		d.state = stateGround
	case stateUTF8Select:
		switch r {
		case 'G':
			d.utf8 = true
		case '@':
			d.utf8 = false
		}
		d.state = stateGround
	default:
		d.handler.Input(r)
	}
}

// control dispatches C0 and C1 controls. Controls execute even while a CSI
// sequence is being collected; ESC aborts the collection.
func (d *Decoder) control(r rune) {
	switch r {
	case 0x07:
		d.handler.Bell()
	case 0x08:
		d.handler.Backspace()
	case 0x09:
		d.handler.Tab(1)
	case 0x0A, 0x0B, 0x0C:
		d.handler.LineFeed()
	case 0x0D:
		d.handler.CarriageReturn()
	case 0x0E:
		d.handler.SetActiveCharset(1)
	case 0x0F:
		d.handler.SetActiveCharset(0)
	case 0x18, 0x1A: // CAN, SUB abort any sequence in progress
		if r == 0x1A {
			d.handler.Substitute()
		}
		d.state = stateGround
	case 0x1B:
		d.resetCSI()
		d.state = stateEscape
	case 0x84:
		d.handler.Index()
	case 0x85:
		d.handler.NextLine()
	case 0x88:
		d.handler.HorizontalTabSet()
	case 0x8D:
		d.handler.ReverseIndex()
	case 0x8E:
		d.handler.SingleShift(2)
	case 0x8F:
		d.handler.SingleShift(3)
	case 0x90:
		d.startString('P')
	case 0x98:
		d.startString('X')
	case 0x9B:
		d.resetCSI()
		d.state = stateCSI
	case 0x9D:
		d.startString(']')
	case 0x9E:
		d.startString('^')
	case 0x9F:
		d.startString('_')
	}
	// Remaining controls are ignored.
}

func (d *Decoder) resetCSI() {
	d.csiRaw = d.csiRaw[:0]
}

func (d *Decoder) startString(typ byte) {
	d.strType = typ
	d.strBuf = d.strBuf[:0]
	d.state = stateString
}

// advanceEscape handles the byte after ESC.
func (d *Decoder) advanceEscape(r rune) {
	d.state = stateGround
	switch r {
	case '[':
		d.state = stateCSI
	case ']':
		d.startString(']')
	case 'P':
		d.startString('P')
	case '^':
		d.startString('^')
	case '_':
		d.startString('_')
	case 'k':
		d.startString('k')
	case '(', ')', '*', '+':
		d.charsetTarget = CharsetIndex(r - '(')
		d.state = stateCharset
	case '#':
		d.state = stateTest
	case '%':
		d.state = stateUTF8Select
	case '7':
		d.handler.SaveCursorPosition()
	case '8':
		d.handler.RestoreCursorPosition()
	case 'n':
		d.handler.SetActiveCharset(2)
	case 'o':
		d.handler.SetActiveCharset(3)
	case 'D':
		d.handler.Index()
	case 'E':
		d.handler.NextLine()
	case 'H':
		d.handler.HorizontalTabSet()
	case 'M':
		d.handler.ReverseIndex()
	case 'Z':
		d.handler.IdentifyTerminal(0)
	case 'c':
		d.utf8 = true
		d.handler.ResetState()
	case '=':
		d.handler.SetKeypadApplicationMode()
	case '>':
		d.handler.UnsetKeypadApplicationMode()
	case '\\':
		// String terminator with no string open.
	}
	// Unknown escapes fall through to ground.
}

// advanceCSI collects CSI bytes until a final byte arrives.
func (d *Decoder) advanceCSI(r rune) {
	if r > 0x7E {
		return
	}
	b := byte(r)

	if len(d.csiRaw) >= maxCSIRaw-1 {
		// Sequence overflow: drop it and resume in ground state.
		d.resetCSI()
		d.state = stateGround
		return
	}
	d.csiRaw = append(d.csiRaw, b)

	if b >= 0x40 && b <= 0x7E {
		seq, ok := parseCSI(d.csiRaw)
		d.resetCSI()
		d.state = stateGround
		if ok {
			d.dispatchCSI(seq)
		}
	}
}

// advanceString collects a DCS/OSC/PM/APC/SOS payload until a terminator.
func (d *Decoder) advanceString(r rune) {
	switch {
	case r == 0x07 || r == 0x9C:
		term := "\x1b\\"
		if r == 0x07 {
			term = "\a"
		}
		d.state = stateGround
		d.dispatchString(term)
	case r == 0x1B:
		// ESC ends the string; the expected trailing '\' is handled as a
		// bare string terminator in the escape state.
		d.state = stateEscape
		d.resetCSI()
		d.dispatchString("\x1b\\")
	case r == 0x18 || r == 0x1A:
		d.state = stateGround
	case IsC1(r):
		d.state = stateGround
		d.dispatchString("\x1b\\")
		d.control(r)
	default:
		d.strBuf = EncodeRune(d.strBuf, r)
	}
}

// --- CSI parsing ---

type csiParam struct {
	value int
	subs  []int
}

type csiSequence struct {
	private byte
	inter   byte
	final   byte
	params  []csiParam
}

// arg returns parameter i, or def when absent or zero.
func (s *csiSequence) arg(i, def int) int {
	if i >= len(s.params) || s.params[i].value == 0 {
		return def
	}
	return s.params[i].value
}

// argOrZero returns parameter i with no default substitution.
func (s *csiSequence) argOrZero(i int) int {
	if i >= len(s.params) {
		return 0
	}
	return s.params[i].value
}

// parseCSI splits the raw sequence into private marker, parameters with
// sub-parameters, intermediate byte, and final byte.
func parseCSI(raw []byte) (csiSequence, bool) {
	var seq csiSequence
	if len(raw) == 0 {
		return seq, false
	}

	seq.final = raw[len(raw)-1]
	if seq.final < 0x40 || seq.final > 0x7E {
		return seq, false
	}
	raw = raw[:len(raw)-1]

	if len(raw) > 0 {
		switch raw[0] {
		case '?', '>', '=', '!':
			seq.private = raw[0]
			raw = raw[1:]
		}
	}
	if len(raw) > 0 && raw[len(raw)-1] >= 0x20 && raw[len(raw)-1] <= 0x2F {
		seq.inter = raw[len(raw)-1]
		raw = raw[:len(raw)-1]
	}

	if len(raw) == 0 {
		return seq, true
	}

	for _, field := range strings.SplitN(string(raw), ";", maxCSIParams+1) {
		if len(seq.params) >= maxCSIParams {
			break
		}
		var p csiParam
		if sub := strings.Split(field, ":"); len(sub) > 1 {
			p.value = atoiDefault(sub[0], 0)
			for _, s := range sub[1:] {
				if len(p.subs) >= maxSubParams {
					break
				}
				p.subs = append(p.subs, atoiDefault(s, 0))
			}
		} else {
			p.value = atoiDefault(field, 0)
		}
		seq.params = append(seq.params, p)
	}
	return seq, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// dispatchCSI routes a parsed sequence to the handler.
func (d *Decoder) dispatchCSI(seq csiSequence) {
	h := d.handler

	switch seq.final {
	case '@':
		h.InsertBlank(seq.arg(0, 1))
	case 'A':
		h.MoveUp(seq.arg(0, 1))
	case 'B', 'e':
		h.MoveDown(seq.arg(0, 1))
	case 'C', 'a':
		h.MoveForward(seq.arg(0, 1))
	case 'D':
		h.MoveBackward(seq.arg(0, 1))
	case 'E':
		h.MoveDownCr(seq.arg(0, 1))
	case 'F':
		h.MoveUpCr(seq.arg(0, 1))
	case 'G', '`':
		h.GotoCol(seq.arg(0, 1) - 1)
	case 'H', 'f':
		h.Goto(seq.arg(0, 1)-1, seq.arg(1, 1)-1)
	case 'I':
		h.MoveForwardTabs(seq.arg(0, 1))
	case 'J':
		h.ClearScreen(ClearMode(seq.argOrZero(0)))
	case 'K':
		h.ClearLine(LineClearMode(seq.argOrZero(0)))
	case 'L':
		h.InsertBlankLines(seq.arg(0, 1))
	case 'M':
		h.DeleteLines(seq.arg(0, 1))
	case 'P':
		h.DeleteChars(seq.arg(0, 1))
	case 'S':
		if seq.private == '?' {
			return // Sixel/ReGIS queries not supported
		}
		h.ScrollUp(seq.arg(0, 1))
	case 'T':
		h.ScrollDown(seq.arg(0, 1))
	case 'X':
		h.EraseChars(seq.arg(0, 1))
	case 'Z':
		h.MoveBackwardTabs(seq.arg(0, 1))
	case 'b':
		h.Repeat(seq.arg(0, 1))
	case 'c':
		if seq.argOrZero(0) == 0 {
			h.IdentifyTerminal(seq.private)
		}
	case 'd':
		h.GotoLine(seq.arg(0, 1) - 1)
	case 'g':
		h.ClearTabs(TabClearMode(seq.argOrZero(0)))
	case 'h':
		d.dispatchModes(seq, true)
	case 'i':
		h.MediaCopy(seq.argOrZero(0))
	case 'l':
		d.dispatchModes(seq, false)
	case 'm':
		if seq.private != 0 {
			return // xterm modifyOtherKeys and friends
		}
		for _, attr := range parseSGR(seq.params) {
			h.SetCharAttribute(attr)
		}
	case 'n':
		h.DeviceStatus(seq.argOrZero(0))
	case 'q':
		if seq.inter == ' ' {
			if style, ok := cursorStyleFor(seq.argOrZero(0)); ok {
				h.SetCursorStyle(style)
			}
		}
	case 'r':
		if seq.private == 0 {
			h.SetScrollingRegion(seq.argOrZero(0), seq.argOrZero(1))
		}
	case 's':
		h.SaveCursorPosition()
	case 't':
		switch seq.argOrZero(0) {
		case 22:
			h.PushTitle()
		case 23:
			h.PopTitle()
		}
	case 'u':
		h.RestoreCursorPosition()
	}
}

// dispatchModes maps SM/RM parameters onto TerminalMode values.
func (d *Decoder) dispatchModes(seq csiSequence, set bool) {
	for i := range seq.params {
		n := seq.params[i].value
		var mode TerminalMode
		if seq.private == '?' {
			switch n {
			case 1:
				mode = ModeCursorKeys
			case 5:
				mode = ModeReverseVideo
			case 6:
				mode = ModeOrigin
			case 7:
				mode = ModeLineWrap
			case 25:
				mode = ModeShowCursor
			case 47, 1047:
				mode = ModeAltScreen
			case 1000:
				mode = ModeReportMouseClicks
			case 1002:
				mode = ModeReportCellMouseMotion
			case 1003:
				mode = ModeReportAllMouseMotion
			case 1004:
				mode = ModeReportFocusInOut
			case 1006:
				mode = ModeSGRMouse
			case 1048:
				if set {
					d.handler.SaveCursorPosition()
				} else {
					d.handler.RestoreCursorPosition()
				}
				continue
			case 1049:
				mode = ModeSwapScreenAndSetRestoreCursor
			case 2004:
				mode = ModeBracketedPaste
			case 2026:
				mode = ModeSynchronizedOutput
			default:
				continue
			}
		} else if seq.private != 0 {
			continue
		} else {
			switch n {
			case 2:
				mode = ModeKeyboardLock
			case 4:
				mode = ModeInsert
			case 12:
				mode = ModeEcho
			case 20:
				mode = ModeLineFeedNewLine
			default:
				continue
			}
		}
		if set {
			d.handler.SetMode(mode)
		} else {
			d.handler.UnsetMode(mode)
		}
	}
}

func cursorStyleFor(n int) (CursorStyle, bool) {
	switch n {
	case 0, 1:
		return CursorStyleBlinkingBlock, true
	case 2:
		return CursorStyleSteadyBlock, true
	case 3:
		return CursorStyleBlinkingUnderline, true
	case 4:
		return CursorStyleSteadyUnderline, true
	case 5:
		return CursorStyleBlinkingBar, true
	case 6:
		return CursorStyleSteadyBar, true
	}
	return 0, false
}

func charsetFor(b byte) Charset {
	switch b {
	case '0':
		return CharsetGraphic0
	case 'A':
		return CharsetUK
	case 'K':
		return CharsetGerman
	case '5', 'C':
		return CharsetMulti
	default:
		return CharsetASCII
	}
}

// parseSGR converts an SGR parameter list into attribute actions.
func parseSGR(params []csiParam) []CharAttribute {
	if len(params) == 0 {
		return []CharAttribute{{Kind: AttrReset}}
	}

	var attrs []CharAttribute
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch p.value {
		case 0:
			attrs = append(attrs, CharAttribute{Kind: AttrReset})
		case 1:
			attrs = append(attrs, CharAttribute{Kind: AttrBold})
		case 2:
			attrs = append(attrs, CharAttribute{Kind: AttrFaint})
		case 3:
			attrs = append(attrs, CharAttribute{Kind: AttrItalic})
		case 4:
			style := UnderlineStraight
			if len(p.subs) > 0 {
				switch p.subs[0] {
				case 0:
					attrs = append(attrs, CharAttribute{Kind: AttrCancelUnderline})
					continue
				case 1:
					style = UnderlineStraight
				case 2:
					style = UnderlineDouble
				case 3:
					style = UnderlineCurly
				case 4:
					style = UnderlineDotted
				case 5:
					style = UnderlineDashed
				default:
					continue
				}
			}
			attrs = append(attrs, CharAttribute{Kind: AttrUnderline, Underline: style})
		case 5, 6:
			attrs = append(attrs, CharAttribute{Kind: AttrBlink})
		case 7:
			attrs = append(attrs, CharAttribute{Kind: AttrReverse})
		case 8:
			attrs = append(attrs, CharAttribute{Kind: AttrHidden})
		case 9:
			attrs = append(attrs, CharAttribute{Kind: AttrStruck})
		case 21:
			attrs = append(attrs, CharAttribute{Kind: AttrUnderline, Underline: UnderlineDouble})
		case 22:
			attrs = append(attrs, CharAttribute{Kind: AttrCancelBoldFaint})
		case 23:
			attrs = append(attrs, CharAttribute{Kind: AttrCancelItalic})
		case 24:
			attrs = append(attrs, CharAttribute{Kind: AttrCancelUnderline})
		case 25:
			attrs = append(attrs, CharAttribute{Kind: AttrCancelBlink})
		case 27:
			attrs = append(attrs, CharAttribute{Kind: AttrCancelReverse})
		case 28:
			attrs = append(attrs, CharAttribute{Kind: AttrCancelHidden})
		case 29:
			attrs = append(attrs, CharAttribute{Kind: AttrCancelStruck})
		case 30, 31, 32, 33, 34, 35, 36, 37:
			attrs = append(attrs, CharAttribute{Kind: AttrForeground, Color: Color(p.value - 30)})
		case 38:
			c, skip, ok := parseExtendedColor(params, i)
			if !ok {
				return attrs
			}
			attrs = append(attrs, CharAttribute{Kind: AttrForeground, Color: c})
			i += skip
		case 39:
			attrs = append(attrs, CharAttribute{Kind: AttrForeground, Color: ColorForeground})
		case 40, 41, 42, 43, 44, 45, 46, 47:
			attrs = append(attrs, CharAttribute{Kind: AttrBackground, Color: Color(p.value - 40)})
		case 48:
			c, skip, ok := parseExtendedColor(params, i)
			if !ok {
				return attrs
			}
			attrs = append(attrs, CharAttribute{Kind: AttrBackground, Color: c})
			i += skip
		case 49:
			attrs = append(attrs, CharAttribute{Kind: AttrBackground, Color: ColorBackground})
		case 58:
			c, skip, ok := parseExtendedColor(params, i)
			if !ok {
				return attrs
			}
			attrs = append(attrs, CharAttribute{Kind: AttrUnderlineColor, Color: c})
			i += skip
		case 59:
			attrs = append(attrs, CharAttribute{Kind: AttrUnderlineColor, Color: ColorForeground})
		case 90, 91, 92, 93, 94, 95, 96, 97:
			attrs = append(attrs, CharAttribute{Kind: AttrForeground, Color: Color(p.value - 90 + 8)})
		case 100, 101, 102, 103, 104, 105, 106, 107:
			attrs = append(attrs, CharAttribute{Kind: AttrBackground, Color: Color(p.value - 100 + 8)})
		}
	}
	return attrs
}

// parseExtendedColor reads the 38/48/58 forms: colon sub-parameters on the
// same position, or the following semicolon parameters. It returns the
// color, how many extra semicolon parameters were consumed, and validity.
func parseExtendedColor(params []csiParam, i int) (Color, int, bool) {
	p := params[i]
	if len(p.subs) > 0 {
		switch p.subs[0] {
		case 5:
			if len(p.subs) >= 2 {
				return paletteColor(p.subs[1])
			}
		case 2:
			// 2:r:g:b or 2:colorspace:r:g:b.
			if len(p.subs) == 4 {
				return rgbColor(p.subs[1], p.subs[2], p.subs[3])
			}
			if len(p.subs) >= 5 {
				return rgbColor(p.subs[2], p.subs[3], p.subs[4])
			}
		}
		return 0, 0, false
	}

	if i+1 >= len(params) {
		return 0, 0, false
	}
	switch params[i+1].value {
	case 5:
		if i+2 < len(params) {
			c, _, ok := paletteColor(params[i+2].value)
			return c, 2, ok
		}
	case 2:
		if i+4 < len(params) {
			c, _, ok := rgbColor(params[i+2].value, params[i+3].value, params[i+4].value)
			return c, 4, ok
		}
	}
	return 0, 0, false
}

func paletteColor(idx int) (Color, int, bool) {
	if idx < 0 || idx > 255 {
		return 0, 0, false
	}
	return Color(idx), 0, true
}

func rgbColor(r, g, b int) (Color, int, bool) {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return 0, 0, false
	}
	return RGB(uint8(r), uint8(g), uint8(b)), 0, true
}

// --- String sequence dispatch ---

// dispatchString routes a completed DCS/OSC/PM/APC/SOS payload.
func (d *Decoder) dispatchString(terminator string) {
	payload := d.strBuf
	switch d.strType {
	case ']':
		d.dispatchOSC(payload, terminator)
	case 'k':
		d.handler.SetTitle(string(payload))
	case 'P':
		d.handler.DeviceControlReceived(append([]byte(nil), payload...))
	case '^':
		d.handler.PrivacyMessageReceived(append([]byte(nil), payload...))
	case '_':
		d.handler.ApplicationCommandReceived(append([]byte(nil), payload...))
	case 'X':
		d.handler.StartOfStringReceived(append([]byte(nil), payload...))
	}
	d.strBuf = d.strBuf[:0]
}

// dispatchOSC interprets an OSC payload.
func (d *Decoder) dispatchOSC(payload []byte, terminator string) {
	args := strings.SplitN(string(payload), ";", maxSTRArgs)
	if len(args) == 0 {
		return
	}
	cmd, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}
	h := d.handler

	switch cmd {
	case 0, 1, 2:
		if len(args) >= 2 {
			h.SetTitle(strings.Join(args[1:], ";"))
		}
	case 4:
		// Pairs of index;spec.
		for i := 1; i+1 < len(args); i += 2 {
			idx, err := strconv.Atoi(args[i])
			if err != nil || idx < 0 || idx > 255 {
				continue
			}
			if c, ok := parseColorSpec(args[i+1], nil); ok {
				h.SetColor(idx, c)
			}
		}
	case 8:
		if len(args) >= 3 {
			link := parseHyperlink(args[1], strings.Join(args[2:], ";"))
			h.SetHyperlink(link)
		}
	case 10, 11, 12:
		if len(args) >= 2 {
			if args[1] == "?" {
				h.ReportDynamicColor(cmd, terminator)
			} else if c, ok := parseColorSpec(args[1], nil); ok {
				h.SetDynamicColor(cmd, c)
			}
		}
	case 52:
		if len(args) >= 3 {
			clipboard := byte('c')
			if args[1] != "" {
				clipboard = args[1][0]
			}
			if args[2] == "?" {
				h.ClipboardLoad(clipboard, terminator)
			} else if data, err := base64.StdEncoding.DecodeString(args[2]); err == nil {
				h.ClipboardStore(clipboard, data)
			}
		}
	case 104:
		if len(args) < 2 {
			h.ResetColor(-1)
			return
		}
		for _, a := range args[1:] {
			if idx, err := strconv.Atoi(a); err == nil {
				h.ResetColor(idx)
			}
		}
	case 110, 111, 112:
		h.ResetDynamicColor(cmd - 100)
	}
}

func parseHyperlink(params, uri string) *Hyperlink {
	if uri == "" {
		return nil
	}
	link := &Hyperlink{URI: uri}
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			link.ID = kv[3:]
		}
	}
	return link
}
