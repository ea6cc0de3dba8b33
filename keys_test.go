package vterm

import (
	"bytes"
	"testing"
)

func TestEncodeKeyArrows(t *testing.T) {
	term := New(WithSize(24, 80))

	if got := term.EncodeKey(KeyUp, 0); !bytes.Equal(got, []byte("\x1b[A")) {
		t.Errorf("normal up: got %q", got)
	}

	term.WriteString("\x1b[?1h")
	if got := term.EncodeKey(KeyUp, 0); !bytes.Equal(got, []byte("\x1bOA")) {
		t.Errorf("application up: got %q", got)
	}

	if got := term.EncodeKey(KeyLeft, ModCtrl); !bytes.Equal(got, []byte("\x1b[1;5D")) {
		t.Errorf("ctrl-left: got %q", got)
	}
	if got := term.EncodeKey(KeyDown, ModShift|ModAlt); !bytes.Equal(got, []byte("\x1b[1;4B")) {
		t.Errorf("shift-alt-down: got %q", got)
	}
}

func TestEncodeKeyNavigation(t *testing.T) {
	term := New(WithSize(24, 80))

	tests := []struct {
		key  Key
		mods Modifiers
		want string
	}{
		{KeyHome, 0, "\x1b[H"},
		{KeyEnd, 0, "\x1b[F"},
		{KeyHome, ModAlt, "\x1b[1;3H"},
		{KeyHome, ModCtrl, "\x1b[1;5H"},
		{KeyEnd, ModCtrl, "\x1b[1;5F"},
		{KeyPageUp, 0, "\x1b[5~"},
		{KeyPageDown, 0, "\x1b[6~"},
		{KeyPageUp, ModShift, "\x1b[5;2~"},
		{KeyDelete, 0, "\x1b[3~"},
		{KeyDelete, ModCtrl, "\x1b[3;5~"},
	}

	for _, tt := range tests {
		if got := term.EncodeKey(tt.key, tt.mods); string(got) != tt.want {
			t.Errorf("key %d mods %d: got %q, want %q", tt.key, tt.mods, got, tt.want)
		}
	}
}

func TestEncodeKeyFunctionKeys(t *testing.T) {
	term := New(WithSize(24, 80))

	tests := []struct {
		key  Key
		mods Modifiers
		want string
	}{
		{KeyF1, 0, "\x1bOP"},
		{KeyF4, 0, "\x1bOS"},
		{KeyF1, ModShift, "\x1b[1;2P"},
		{KeyF5, 0, "\x1b[15~"},
		{KeyF6, 0, "\x1b[17~"},
		{KeyF10, 0, "\x1b[21~"},
		{KeyF11, 0, "\x1b[23~"},
		{KeyF12, 0, "\x1b[24~"},
		{KeyF5, ModCtrl, "\x1b[15;5~"},
	}

	for _, tt := range tests {
		if got := term.EncodeKey(tt.key, tt.mods); string(got) != tt.want {
			t.Errorf("key %d: got %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEncodeKeyBasics(t *testing.T) {
	term := New(WithSize(24, 80))

	if got := term.EncodeKey(KeyReturn, 0); string(got) != "\r" {
		t.Errorf("return: got %q", got)
	}
	if got := term.EncodeKey(KeyReturn, ModAlt); string(got) != "\x1b\r" {
		t.Errorf("alt-return: got %q", got)
	}
	if got := term.EncodeKey(KeyBackspace, 0); string(got) != "\x7f" {
		t.Errorf("backspace: got %q", got)
	}
	if got := term.EncodeKey(KeyBackspace, ModCtrl); string(got) != "\x08" {
		t.Errorf("ctrl-backspace: got %q", got)
	}
	if got := term.EncodeKey(KeyTab, 0); string(got) != "\t" {
		t.Errorf("tab: got %q", got)
	}
	if got := term.EncodeKey(KeyTab, ModShift); string(got) != "\x1b[Z" {
		t.Errorf("shift-tab: got %q", got)
	}
}

func TestEncodeKeypad(t *testing.T) {
	term := New(WithSize(24, 80))

	if got := term.EncodeKey(KeyKP5, 0); string(got) != "5" {
		t.Errorf("numeric keypad: got %q", got)
	}
	if got := term.EncodeKey(KeyKPDivide, 0); string(got) != "/" {
		t.Errorf("numeric divide: got %q", got)
	}

	term.WriteString("\x1b=")
	if got := term.EncodeKey(KeyKP0, 0); string(got) != "\x1bOp" {
		t.Errorf("application kp0: got %q", got)
	}
	if got := term.EncodeKey(KeyKP9, 0); string(got) != "\x1bOy" {
		t.Errorf("application kp9: got %q", got)
	}
	if got := term.EncodeKey(KeyKPMultiply, 0); string(got) != "\x1bOj" {
		t.Errorf("application multiply: got %q", got)
	}
	if got := term.EncodeKey(KeyKPDivide, 0); string(got) != "\x1bOo" {
		t.Errorf("application divide: got %q", got)
	}

	term.WriteString("\x1b>")
	if got := term.EncodeKey(KeyKP0, 0); string(got) != "0" {
		t.Errorf("back to numeric: got %q", got)
	}
}

func TestEncodeRuneKey(t *testing.T) {
	term := New(WithSize(24, 80))

	if got := term.EncodeRuneKey('a', 0); string(got) != "a" {
		t.Errorf("plain: got %q", got)
	}
	if got := term.EncodeRuneKey('c', ModCtrl); !bytes.Equal(got, []byte{0x03}) {
		t.Errorf("ctrl-c: got %q", got)
	}
	if got := term.EncodeRuneKey('x', ModAlt); string(got) != "\x1bx" {
		t.Errorf("alt-x: got %q", got)
	}
	if got := term.EncodeRuneKey('é', 0); string(got) != "é" {
		t.Errorf("unicode: got %q", got)
	}
}

func TestEncodePaste(t *testing.T) {
	term := New(WithSize(24, 80))

	data := []byte("pasted")
	if got := term.EncodePaste(data); !bytes.Equal(got, data) {
		t.Errorf("unbracketed paste should pass through, got %q", got)
	}

	term.WriteString("\x1b[?2004h")
	want := "\x1b[200~pasted\x1b[201~"
	if got := term.EncodePaste(data); string(got) != want {
		t.Errorf("bracketed paste: got %q, want %q", got, want)
	}
}

func TestEncodeMouse(t *testing.T) {
	term := New(WithSize(24, 80))

	if got := term.EncodeMouse(MouseLeft, true, 0, 0, 0); got != nil {
		t.Errorf("no reporting mode: expected nil, got %q", got)
	}

	term.WriteString("\x1b[?1000h")
	got := term.EncodeMouse(MouseLeft, true, 4, 2, 0)
	want := []byte{0x1b, '[', 'M', 32, 32 + 5, 32 + 3}
	if !bytes.Equal(got, want) {
		t.Errorf("x10 press: got % x, want % x", got, want)
	}

	got = term.EncodeMouse(MouseLeft, false, 4, 2, 0)
	want = []byte{0x1b, '[', 'M', 32 + 3, 32 + 5, 32 + 3}
	if !bytes.Equal(got, want) {
		t.Errorf("x10 release: got % x, want % x", got, want)
	}

	if got := term.EncodeMouse(MouseLeft, true, 500, 2, 0); got != nil {
		t.Errorf("x10 past 222 should be suppressed, got %q", got)
	}
	if got := term.EncodeMouse(MouseWheelUp, false, 0, 0, 0); got != nil {
		t.Errorf("wheel release should be suppressed, got %q", got)
	}

	term.WriteString("\x1b[?1006h")
	if got := term.EncodeMouse(MouseLeft, true, 4, 2, 0); string(got) != "\x1b[<0;5;3M" {
		t.Errorf("sgr press: got %q", got)
	}
	if got := term.EncodeMouse(MouseLeft, false, 4, 2, 0); string(got) != "\x1b[<0;5;3m" {
		t.Errorf("sgr release: got %q", got)
	}
	if got := term.EncodeMouse(MouseWheelDown, true, 0, 0, ModCtrl); string(got) != "\x1b[<81;1;1M" {
		t.Errorf("ctrl-wheel: got %q", got)
	}
	if got := term.EncodeMouse(MouseRight, true, 0, 0, ModShift); string(got) != "\x1b[<6;1;1M" {
		t.Errorf("shift-right: got %q", got)
	}
}

func TestEncodeFocus(t *testing.T) {
	term := New(WithSize(24, 80))

	if got := term.EncodeFocus(true); got != nil {
		t.Errorf("focus reporting off: expected nil, got %q", got)
	}
	term.WriteString("\x1b[?1004h")
	if got := term.EncodeFocus(true); string(got) != "\x1b[I" {
		t.Errorf("focus in: got %q", got)
	}
	if got := term.EncodeFocus(false); string(got) != "\x1b[O" {
		t.Errorf("focus out: got %q", got)
	}
}
