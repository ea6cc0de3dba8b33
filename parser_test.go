package vterm

import (
	"image/color"
	"strings"
	"testing"
)

// recordingHandler captures decoder dispatches for parser-level tests.
type recordingHandler struct {
	calls  []string
	inputs []rune
}

func (h *recordingHandler) record(name string) { h.calls = append(h.calls, name) }

func (h *recordingHandler) Input(r rune) { h.inputs = append(h.inputs, r); h.record("Input") }
func (h *recordingHandler) Bell()        { h.record("Bell") }
func (h *recordingHandler) Backspace()   { h.record("Backspace") }
func (h *recordingHandler) Tab(n int)    { h.record("Tab") }
func (h *recordingHandler) CarriageReturn() {
	h.record("CarriageReturn")
}
func (h *recordingHandler) LineFeed()                  { h.record("LineFeed") }
func (h *recordingHandler) Index()                     { h.record("Index") }
func (h *recordingHandler) NextLine()                  { h.record("NextLine") }
func (h *recordingHandler) ReverseIndex()              { h.record("ReverseIndex") }
func (h *recordingHandler) HorizontalTabSet()          { h.record("HorizontalTabSet") }
func (h *recordingHandler) Substitute()                { h.record("Substitute") }
func (h *recordingHandler) Goto(row, col int)          { h.record("Goto") }
func (h *recordingHandler) GotoLine(row int)           { h.record("GotoLine") }
func (h *recordingHandler) GotoCol(col int)            { h.record("GotoCol") }
func (h *recordingHandler) MoveUp(n int)               { h.record("MoveUp") }
func (h *recordingHandler) MoveDown(n int)             { h.record("MoveDown") }
func (h *recordingHandler) MoveForward(n int)          { h.record("MoveForward") }
func (h *recordingHandler) MoveBackward(n int)         { h.record("MoveBackward") }
func (h *recordingHandler) MoveUpCr(n int)             { h.record("MoveUpCr") }
func (h *recordingHandler) MoveDownCr(n int)           { h.record("MoveDownCr") }
func (h *recordingHandler) MoveForwardTabs(n int)      { h.record("MoveForwardTabs") }
func (h *recordingHandler) MoveBackwardTabs(n int)     { h.record("MoveBackwardTabs") }
func (h *recordingHandler) InsertBlank(n int)          { h.record("InsertBlank") }
func (h *recordingHandler) InsertBlankLines(n int)     { h.record("InsertBlankLines") }
func (h *recordingHandler) DeleteChars(n int)          { h.record("DeleteChars") }
func (h *recordingHandler) DeleteLines(n int)          { h.record("DeleteLines") }
func (h *recordingHandler) EraseChars(n int)           { h.record("EraseChars") }
func (h *recordingHandler) ClearLine(LineClearMode)    { h.record("ClearLine") }
func (h *recordingHandler) ClearScreen(ClearMode)      { h.record("ClearScreen") }
func (h *recordingHandler) ClearTabs(TabClearMode)     { h.record("ClearTabs") }
func (h *recordingHandler) ScrollUp(n int)             { h.record("ScrollUp") }
func (h *recordingHandler) ScrollDown(n int)           { h.record("ScrollDown") }
func (h *recordingHandler) Repeat(n int)               { h.record("Repeat") }
func (h *recordingHandler) SetMode(TerminalMode)       { h.record("SetMode") }
func (h *recordingHandler) UnsetMode(TerminalMode)     { h.record("UnsetMode") }
func (h *recordingHandler) SetCharAttribute(CharAttribute) {
	h.record("SetCharAttribute")
}
func (h *recordingHandler) SetScrollingRegion(top, bottom int) {
	h.record("SetScrollingRegion")
}
func (h *recordingHandler) SetCursorStyle(CursorStyle)  { h.record("SetCursorStyle") }
func (h *recordingHandler) SetKeypadApplicationMode()   { h.record("SetKeypadApplicationMode") }
func (h *recordingHandler) UnsetKeypadApplicationMode() { h.record("UnsetKeypadApplicationMode") }
func (h *recordingHandler) SaveCursorPosition()         { h.record("SaveCursorPosition") }
func (h *recordingHandler) RestoreCursorPosition()      { h.record("RestoreCursorPosition") }
func (h *recordingHandler) Decaln()                     { h.record("Decaln") }
func (h *recordingHandler) ResetState()                 { h.record("ResetState") }
func (h *recordingHandler) ConfigureCharset(CharsetIndex, Charset) {
	h.record("ConfigureCharset")
}
func (h *recordingHandler) SetActiveCharset(n int)         { h.record("SetActiveCharset") }
func (h *recordingHandler) SingleShift(n int)              { h.record("SingleShift") }
func (h *recordingHandler) DeviceStatus(n int)             { h.record("DeviceStatus") }
func (h *recordingHandler) IdentifyTerminal(marker byte)   { h.record("IdentifyTerminal") }
func (h *recordingHandler) MediaCopy(n int)                { h.record("MediaCopy") }
func (h *recordingHandler) SetTitle(title string)          { h.record("SetTitle:" + title) }
func (h *recordingHandler) PushTitle()                     { h.record("PushTitle") }
func (h *recordingHandler) PopTitle()                      { h.record("PopTitle") }
func (h *recordingHandler) SetColor(int, color.RGBA)       { h.record("SetColor") }
func (h *recordingHandler) ResetColor(int)                 { h.record("ResetColor") }
func (h *recordingHandler) SetDynamicColor(int, color.RGBA) {
	h.record("SetDynamicColor")
}
func (h *recordingHandler) ReportDynamicColor(int, string) { h.record("ReportDynamicColor") }
func (h *recordingHandler) ResetDynamicColor(int)          { h.record("ResetDynamicColor") }
func (h *recordingHandler) SetHyperlink(*Hyperlink)        { h.record("SetHyperlink") }
func (h *recordingHandler) ClipboardStore(byte, []byte)    { h.record("ClipboardStore") }
func (h *recordingHandler) ClipboardLoad(byte, string)     { h.record("ClipboardLoad") }
func (h *recordingHandler) DeviceControlReceived(data []byte) {
	h.record("DCS:" + string(data))
}
func (h *recordingHandler) ApplicationCommandReceived(data []byte) {
	h.record("APC:" + string(data))
}
func (h *recordingHandler) PrivacyMessageReceived(data []byte) {
	h.record("PM:" + string(data))
}
func (h *recordingHandler) StartOfStringReceived(data []byte) {
	h.record("SOS:" + string(data))
}

var _ Handler = (*recordingHandler)(nil)

func (h *recordingHandler) last() string {
	if len(h.calls) == 0 {
		return ""
	}
	return h.calls[len(h.calls)-1]
}

func TestDecoderSplitSequence(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	// The CSI state survives across Write boundaries.
	d.Write([]byte("\x1b["))
	d.Write([]byte("3"))
	d.Write([]byte("1m"))

	if h.last() != "SetCharAttribute" {
		t.Errorf("expected SGR dispatch, got %q", h.last())
	}
}

func TestDecoderSplitUTF8(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	d.Write([]byte{0xe6})
	d.Write([]byte{0xb5})
	d.Write([]byte{0x8b})

	if len(h.inputs) != 1 || h.inputs[0] != '测' {
		t.Errorf("expected split-write U+6D4B, got %v", h.inputs)
	}
}

func TestDecoderCSIOverflow(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	d.Write([]byte("\x1b["))
	d.Write([]byte(strings.Repeat("1;", 600)))
	d.Write([]byte("m"))
	d.Write([]byte("x"))

	for _, call := range h.calls {
		if call == "SetCharAttribute" {
			t.Fatal("overflowed sequence must be discarded")
		}
	}
	if len(h.inputs) == 0 || h.inputs[len(h.inputs)-1] != 'x' {
		t.Error("decoder should resume in ground state after overflow")
	}
}

func TestDecoderOSCTerminators(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bel", "\x1b]2;via bel\x07", "SetTitle:via bel"},
		{"st", "\x1b]2;via st\x1b\\", "SetTitle:via st"},
		{"c1 st", "\x1b]2;via c1\xc2\x9c", "SetTitle:via c1"},
		{"esc k", "\x1bkold style\x1b\\", "SetTitle:old style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordingHandler{}
			d := NewDecoder(h)
			d.Write([]byte(tt.in))
			found := false
			for _, c := range h.calls {
				if c == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q among %v", tt.want, h.calls)
			}
		})
	}
}

func TestDecoderStringPassthrough(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	d.Write([]byte("\x1bPdcs-data\x1b\\"))
	d.Write([]byte("\x1b_apc-data\x1b\\"))
	d.Write([]byte("\x1b^pm-data\x1b\\"))

	want := []string{"DCS:dcs-data", "APC:apc-data", "PM:pm-data"}
	for _, w := range want {
		found := false
		for _, c := range h.calls {
			if c == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %q in %v", w, h.calls)
		}
	}
}

func TestDecoderControlsInsideCSI(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	// A backspace in the middle of a CSI executes immediately.
	d.Write([]byte("\x1b[1\x08;2H"))

	sawBackspace := false
	sawGoto := false
	for _, c := range h.calls {
		if c == "Backspace" {
			sawBackspace = true
		}
		if c == "Goto" {
			sawGoto = true
		}
	}
	if !sawBackspace {
		t.Error("C0 inside CSI should execute")
	}
	if !sawGoto {
		t.Error("CSI should still complete")
	}
}

func TestDecoderCANAbortsSequence(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	d.Write([]byte("\x1b[12\x18m"))

	for _, c := range h.calls {
		if c == "SetCharAttribute" {
			t.Fatal("CAN should abort the CSI sequence")
		}
	}
	if len(h.inputs) != 1 || h.inputs[0] != 'm' {
		t.Errorf("the final byte should print as ground text, got %v", h.inputs)
	}
}

func TestParseCSI(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		private byte
		inter   byte
		final   byte
		params  []int
	}{
		{"bare", "H", 0, 0, 'H', nil},
		{"params", "1;2H", 0, 0, 'H', []int{1, 2}},
		{"empty params", ";5H", 0, 0, 'H', []int{0, 5}},
		{"private", "?25h", '?', 0, 'h', []int{25}},
		{"gt", ">c", '>', 0, 'c', nil},
		{"intermediate", "2 q", 0, ' ', 'q', []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, ok := parseCSI([]byte(tt.raw))
			if !ok {
				t.Fatal("parse failed")
			}
			if seq.private != tt.private || seq.inter != tt.inter || seq.final != tt.final {
				t.Errorf("got private=%q inter=%q final=%q", seq.private, seq.inter, seq.final)
			}
			if len(seq.params) != len(tt.params) {
				t.Fatalf("expected %d params, got %d", len(tt.params), len(seq.params))
			}
			for i, want := range tt.params {
				if seq.params[i].value != want {
					t.Errorf("param %d: expected %d, got %d", i, want, seq.params[i].value)
				}
			}
		})
	}
}

func TestParseCSISubParams(t *testing.T) {
	seq, ok := parseCSI([]byte("4:3m"))
	if !ok {
		t.Fatal("parse failed")
	}
	if len(seq.params) != 1 || seq.params[0].value != 4 {
		t.Fatalf("unexpected params: %+v", seq.params)
	}
	if len(seq.params[0].subs) != 1 || seq.params[0].subs[0] != 3 {
		t.Errorf("expected sub-parameter [3], got %v", seq.params[0].subs)
	}
}

func TestParseCSIParamLimit(t *testing.T) {
	raw := strings.Repeat("1;", 50) + "m"
	seq, ok := parseCSI([]byte(raw))
	if !ok {
		t.Fatal("parse failed")
	}
	if len(seq.params) > maxCSIParams {
		t.Errorf("params should be capped at %d, got %d", maxCSIParams, len(seq.params))
	}
}

func TestParseSGRDefaults(t *testing.T) {
	attrs := parseSGR(nil)
	if len(attrs) != 1 || attrs[0].Kind != AttrReset {
		t.Errorf("empty SGR should reset, got %+v", attrs)
	}
}

func TestParseSGRTruncatedExtendedColor(t *testing.T) {
	seq, _ := parseCSI([]byte("38;5m"))
	attrs := parseSGR(seq.params)
	for _, a := range attrs {
		if a.Kind == AttrForeground {
			t.Error("truncated 38;5 must not produce a color")
		}
	}
}

func TestDecoderLatin1Mode(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	d.Write([]byte("\x1b%@"))
	d.Write([]byte{0xe9}) // é in Latin-1
	if len(h.inputs) != 1 || h.inputs[0] != 0xe9 {
		t.Errorf("expected Latin-1 passthrough, got %v", h.inputs)
	}

	d.Write([]byte("\x1b%G"))
	d.Write([]byte{0xc3, 0xa9}) // é in UTF-8
	if len(h.inputs) != 2 || h.inputs[1] != 0xe9 {
		t.Errorf("expected UTF-8 decoding restored, got %v", h.inputs)
	}
}

func TestDecoderKeypadModes(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	d.Write([]byte("\x1b="))
	if h.last() != "SetKeypadApplicationMode" {
		t.Errorf("expected keypad application mode, got %q", h.last())
	}
	d.Write([]byte("\x1b>"))
	if h.last() != "UnsetKeypadApplicationMode" {
		t.Errorf("expected keypad numeric mode, got %q", h.last())
	}
}

func TestDecoderSingleShift(t *testing.T) {
	h := &recordingHandler{}
	d := NewDecoder(h)

	d.Write([]byte{0xc2, 0x8e}) // SS2 via UTF-8 C1
	if h.last() != "SingleShift" {
		t.Errorf("expected SingleShift, got %q", h.last())
	}
}
