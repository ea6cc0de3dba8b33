package vterm

import "fmt"

// Key identifies a non-printable key for outbound encoding.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyReturn
	KeyBackspace
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	// Keypad keys, encoded specially in application keypad mode.
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPMultiply
	KeyKPAdd
	KeyKPComma
	KeyKPSubtract
	KeyKPDecimal
	KeyKPDivide
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// xtermModifier encodes modifiers the CSI way: 1 + shift + 2*alt + 4*ctrl.
func xtermModifier(mods Modifiers) int {
	m := 1
	if mods&ModShift != 0 {
		m++
	}
	if mods&ModAlt != 0 {
		m += 2
	}
	if mods&ModCtrl != 0 {
		m += 4
	}
	return m
}

// EncodeKey translates a key press into the byte sequence to send to the
// child process, honoring application cursor and keypad modes. A nil
// return means the key has no encoding.
func (t *Terminal) EncodeKey(key Key, mods Modifiers) []byte {
	t.mu.RLock()
	appCursor := t.modes&ModeCursorKeys != 0
	appKeypad := t.modes&ModeKeypadApplication != 0
	t.mu.RUnlock()

	mod := xtermModifier(mods)

	switch key {
	case KeyUp, KeyDown, KeyRight, KeyLeft:
		final := byte('A' + (key - KeyUp))
		if mod > 1 {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, final))
		}
		if appCursor {
			return []byte{0x1b, 'O', final}
		}
		return []byte{0x1b, '[', final}

	case KeyHome, KeyEnd:
		final := byte('H')
		if key == KeyEnd {
			final = 'F'
		}
		if mod > 1 {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, final))
		}
		return []byte{0x1b, '[', final}

	case KeyPageUp, KeyPageDown, KeyDelete:
		base := map[Key]int{KeyPageUp: 5, KeyPageDown: 6, KeyDelete: 3}[key]
		if mod > 1 {
			return []byte(fmt.Sprintf("\x1b[%d;%d~", base, mod))
		}
		return []byte(fmt.Sprintf("\x1b[%d~", base))

	case KeyReturn:
		if mods&ModAlt != 0 {
			return []byte{0x1b, '\r'}
		}
		return []byte{'\r'}

	case KeyBackspace:
		if mods&ModCtrl != 0 {
			return []byte{0x08}
		}
		return []byte{0x7f}

	case KeyTab:
		if mods&ModShift != 0 {
			return []byte{0x1b, '[', 'Z'}
		}
		return []byte{'\t'}

	case KeyF1, KeyF2, KeyF3, KeyF4:
		final := byte('P' + (key - KeyF1))
		if mod > 1 {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, final))
		}
		return []byte{0x1b, 'O', final}

	case KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		base := [...]int{15, 17, 18, 19, 20, 21, 23, 24}[key-KeyF5]
		if mod > 1 {
			return []byte(fmt.Sprintf("\x1b[%d;%d~", base, mod))
		}
		return []byte(fmt.Sprintf("\x1b[%d~", base))
	}

	if key >= KeyKP0 && key <= KeyKPDivide {
		if appKeypad {
			// DEC application keypad: digits map to p..y, operators to
			// j..o.
			var final byte
			if key <= KeyKP9 {
				final = byte('p' + (key - KeyKP0))
			} else {
				final = byte('j' + (key - KeyKPMultiply))
			}
			return []byte{0x1b, 'O', final}
		}
		numeric := map[Key]byte{
			KeyKP0: '0', KeyKP1: '1', KeyKP2: '2', KeyKP3: '3',
			KeyKP4: '4', KeyKP5: '5', KeyKP6: '6', KeyKP7: '7',
			KeyKP8: '8', KeyKP9: '9',
			KeyKPMultiply: '*', KeyKPAdd: '+', KeyKPComma: ',',
			KeyKPSubtract: '-', KeyKPDecimal: '.', KeyKPDivide: '/',
		}
		return []byte{numeric[key]}
	}

	return nil
}

// EncodeRuneKey translates a printable key press: Ctrl folds to the low
// five bits, Alt prefixes ESC.
func (t *Terminal) EncodeRuneKey(r rune, mods Modifiers) []byte {
	var out []byte
	if mods&ModAlt != 0 {
		out = append(out, 0x1b)
	}
	if mods&ModCtrl != 0 && r < 0x80 {
		return append(out, byte(r)&0x1f)
	}
	return EncodeRune(out, r)
}

// EncodePaste frames pasted bytes for the child. With bracketed paste mode
// active the data is wrapped in ESC[200~ / ESC[201~.
func (t *Terminal) EncodePaste(data []byte) []byte {
	t.mu.RLock()
	bracketed := t.modes&ModeBracketedPaste != 0
	t.mu.RUnlock()

	if !bracketed {
		return data
	}
	out := make([]byte, 0, len(data)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, data...)
	out = append(out, "\x1b[201~"...)
	return out
}

// MouseButton identifies a pointer button for report encoding.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// EncodeMouse produces a mouse report for a button event at cell (x, y),
// 0-based, or nil when reporting is off or suppressed. The encoding (X10 or
// SGR) follows the active modes; wheel releases are never reported and X10
// reports are dropped for coordinates past 222.
func (t *Terminal) EncodeMouse(btn MouseButton, press bool, x, y int, mods Modifiers) []byte {
	t.mu.RLock()
	reporting := t.modes&(ModeReportMouseClicks|ModeReportCellMouseMotion|ModeReportAllMouseMotion) != 0
	sgr := t.modes&ModeSGRMouse != 0
	t.mu.RUnlock()

	if !reporting {
		return nil
	}
	if !press && (btn == MouseWheelUp || btn == MouseWheelDown) {
		return nil
	}

	code := 0
	switch btn {
	case MouseLeft:
		code = 0
	case MouseMiddle:
		code = 1
	case MouseRight:
		code = 2
	case MouseWheelUp:
		code = 64
	case MouseWheelDown:
		code = 65
	}
	if mods&ModShift != 0 {
		code += 4
	}
	if mods&ModAlt != 0 {
		code += 8
	}
	if mods&ModCtrl != 0 {
		code += 16
	}

	if sgr {
		final := byte('M')
		if !press {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, x+1, y+1, final))
	}

	if x > 222 || y > 222 {
		return nil
	}
	if !press {
		code = (code &^ 0x3) | 3
	}
	return []byte{0x1b, '[', 'M', byte(32 + code), byte(32 + x + 1), byte(32 + y + 1)}
}

// EncodeFocus produces a focus in/out report when focus reporting is on.
func (t *Terminal) EncodeFocus(in bool) []byte {
	t.mu.RLock()
	reporting := t.modes&ModeReportFocusInOut != 0
	t.mu.RUnlock()

	if !reporting {
		return nil
	}
	if in {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}
