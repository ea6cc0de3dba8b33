package vterm

import (
	"encoding/base64"
	"fmt"
	"image/color"
)

// This file implements the Handler contract on Terminal: the operations the
// escape sequence decoder dispatches into.

// writeResponse writes a reply back via the response provider if set.
func (t *Terminal) writeResponse(data []byte) {
	t.mu.RLock()
	provider := t.responseProvider
	t.mu.RUnlock()

	if provider != nil {
		provider.Write(data)
	}
}

func (t *Terminal) writeResponseString(s string) {
	t.writeResponse([]byte(s))
}

// --- Cursor movement ---

// moveToLocked positions the cursor absolutely, honoring origin mode, and
// clears the pending-wrap state. The old and new cursor rows are marked
// dirty so the renderer repaints the cursor cell.
func (t *Terminal) moveToLocked(x, y int) {
	minY, maxY := 0, t.rows-1
	if t.modes&ModeOrigin != 0 {
		y += t.scrollTop
		minY, maxY = t.scrollTop, t.scrollBottom
	}
	t.activeBuffer.MarkDirty(t.cursor.Y)
	t.cursor.X = clamp(x, 0, t.cols-1)
	t.cursor.Y = clamp(y, minY, maxY)
	t.cursor.WrapNext = false
	t.activeBuffer.MarkDirty(t.cursor.Y)
}

// moveCursorLocked adjusts the cursor by signed deltas, clamped to the full
// screen regardless of origin mode.
func (t *Terminal) moveCursorLocked(dx, dy int) {
	t.activeBuffer.MarkDirty(t.cursor.Y)
	t.cursor.X = clamp(t.cursor.X+dx, 0, t.cols-1)
	t.cursor.Y = clamp(t.cursor.Y+dy, 0, t.rows-1)
	t.cursor.WrapNext = false
	t.activeBuffer.MarkDirty(t.cursor.Y)
}

// Goto moves the cursor to (row, col).
func (t *Terminal) Goto(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveToLocked(col, row)
}

// GotoLine moves the cursor to the given row, keeping the column.
func (t *Terminal) GotoLine(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveToLocked(t.cursor.X, row)
}

// GotoCol moves the cursor to the given column, keeping the row.
func (t *Terminal) GotoCol(col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.MarkDirty(t.cursor.Y)
	t.cursor.X = clamp(col, 0, t.cols-1)
	t.cursor.WrapNext = false
}

// MoveUp moves the cursor up n rows, stopping at the top.
func (t *Terminal) MoveUp(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveCursorLocked(0, -n)
}

// MoveDown moves the cursor down n rows, stopping at the bottom.
func (t *Terminal) MoveDown(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveCursorLocked(0, n)
}

// MoveForward moves the cursor right n columns.
func (t *Terminal) MoveForward(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveCursorLocked(n, 0)
}

// MoveBackward moves the cursor left n columns.
func (t *Terminal) MoveBackward(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveCursorLocked(-n, 0)
}

// MoveDownCr moves the cursor down n rows and to column 0.
func (t *Terminal) MoveDownCr(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveCursorLocked(0, n)
	t.cursor.X = 0
}

// MoveUpCr moves the cursor up n rows and to column 0.
func (t *Terminal) MoveUpCr(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveCursorLocked(0, -n)
	t.cursor.X = 0
}

// Backspace moves the cursor one column left, stopping at column 0.
func (t *Terminal) Backspace() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveCursorLocked(-1, 0)
}

// CarriageReturn moves the cursor to column 0 of the current row.
func (t *Terminal) CarriageReturn() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.X = 0
	t.cursor.WrapNext = false
}

// Tab advances the cursor to the next n tab stops.
func (t *Terminal) Tab(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i++ {
		t.cursor.X = t.activeBuffer.NextTabStop(t.cursor.X)
	}
	t.cursor.WrapNext = false
}

// MoveForwardTabs advances the cursor to the next n tab stops.
func (t *Terminal) MoveForwardTabs(n int) {
	t.Tab(n)
}

// MoveBackwardTabs moves the cursor back to the previous n tab stops.
func (t *Terminal) MoveBackwardTabs(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i++ {
		t.cursor.X = t.activeBuffer.PrevTabStop(t.cursor.X)
	}
	t.cursor.WrapNext = false
}

// --- Line feeds and scrolling ---

// newlineLocked advances the cursor one line, scrolling the region when the
// cursor sits on its bottom row. firstCol additionally returns the cursor
// to column 0.
func (t *Terminal) newlineLocked(firstCol bool) {
	switch {
	case t.cursor.Y == t.scrollBottom:
		t.scrollUpLocked(t.scrollTop, 1)
	case t.modes&ModeOrigin != 0:
		if t.cursor.Y < t.scrollBottom {
			t.cursor.Y++
		}
	default:
		if t.cursor.Y < t.rows-1 {
			t.cursor.Y++
		}
	}
	if firstCol {
		t.cursor.X = 0
	}
	t.activeBuffer.MarkDirty(t.cursor.Y)
}

// scrollUpLocked rotates the region [origin, scrollBottom] up by n. Rows
// leaving the top of the primary screen enter the scrollback ring.
func (t *Terminal) scrollUpLocked(origin, n int) {
	t.activeBuffer.ScrollUp(origin, t.scrollBottom, n, t.template.Cell)
	if t.histOffset > 0 {
		t.scrollHistoryLocked(t.histOffset)
	}
}

func (t *Terminal) scrollDownLocked(origin, n int) {
	t.activeBuffer.ScrollDown(origin, t.scrollBottom, n, t.template.Cell)
}

// LineFeed moves the cursor down one row, scrolling at the region bottom.
// With ModeLineFeedNewLine set it also returns to column 0.
func (t *Terminal) LineFeed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.WrapNext = false
	t.newlineLocked(t.modes&ModeLineFeedNewLine != 0)
}

// Index moves the cursor down one row without a carriage return (IND).
func (t *Terminal) Index() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.WrapNext = false
	t.newlineLocked(false)
}

// NextLine moves the cursor down one row and to column 0 (NEL).
func (t *Terminal) NextLine() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.WrapNext = false
	t.newlineLocked(true)
}

// ReverseIndex moves the cursor up one row, scrolling the region down when
// the cursor sits on its top row (RI).
func (t *Terminal) ReverseIndex() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.WrapNext = false
	if t.cursor.Y == t.scrollTop {
		t.scrollDownLocked(t.scrollTop, 1)
	} else if t.cursor.Y > 0 {
		t.cursor.Y--
	}
	t.activeBuffer.MarkDirty(t.cursor.Y)
}

// ScrollUp shifts the scroll region up n lines (SU).
func (t *Terminal) ScrollUp(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollUpLocked(t.scrollTop, n)
}

// ScrollDown shifts the scroll region down n lines (SD).
func (t *Terminal) ScrollDown(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollDownLocked(t.scrollTop, n)
}

// --- Writing ---

// Input writes a printable character at the cursor, handling charset
// translation, pending wrap, wide character pairs, insert mode, and the
// box-drawing hint.
func (t *Terminal) Input(r rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputLocked(r)
}

func (t *Terminal) inputLocked(r rune) {
	idx := t.activeCharset
	if t.singleShift >= 0 {
		idx = t.singleShift
		t.singleShift = -1
	}
	if idx >= 0 && idx < 4 {
		r = translateCharset(t.charsets[idx], r)
	}

	w := RuneWidth(r)
	if w == 0 {
		// Combining marks are not composed onto the previous cell.
		return
	}

	buf := t.activeBuffer
	wrap := t.modes&ModeLineWrap != 0

	if t.cursor.WrapNext {
		t.cursor.WrapNext = false
		if wrap {
			if c := buf.Cell(t.cursor.Y, t.cols-1); c != nil {
				c.SetFlag(CellFlagWrap)
			}
			t.newlineLocked(true)
		}
	}

	if t.cursor.X+w > t.cols {
		if wrap {
			if c := buf.Cell(t.cursor.Y, t.cols-1); c != nil {
				c.SetFlag(CellFlagWrap)
			}
			t.newlineLocked(true)
		} else {
			t.cursor.X = t.cols - w
		}
	}

	if t.modes&ModeInsert != 0 {
		buf.InsertBlanks(t.cursor.Y, t.cursor.X, w, t.template.Cell)
	}

	x, y := t.cursor.X, t.cursor.Y
	buf.ClearWide(y, x)
	cell := buf.Cell(y, x)
	if cell == nil {
		return
	}

	*cell = t.template.Cell
	cell.Char = r
	cell.Hyperlink = t.currentHyperlink
	if t.currentHyperlink != nil {
		cell.SetFlag(CellFlagURLHint)
	}
	if cell.HasFlag(CellFlagUnderline) &&
		(cell.UnderlineStyle != UnderlineStraight || cell.UnderlineColor != ColorForeground) {
		cell.SetFlag(CellFlagDirtyUnderline)
	}
	if t.cfg.BoxDrawing && BoxDescriptor(r) != 0 {
		cell.SetFlag(CellFlagBoxDraw)
	}

	if w == 2 {
		cell.SetFlag(CellFlagWide)
		if x+1 < t.cols {
			buf.ClearWide(y, x+1)
			spacer := buf.Cell(y, x+1)
			*spacer = t.template.Cell
			spacer.Char = 0
			spacer.SetFlag(CellFlagWideSpacer)
		}
	}

	if t.cursor.X+w < t.cols {
		t.cursor.X += w
	} else {
		t.cursor.WrapNext = true
	}

	buf.MarkDirty(y)
	t.lastInput = r
}

// Repeat writes the last printable character n more times (REP).
func (t *Terminal) Repeat(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastInput == 0 {
		return
	}
	if max := t.rows * t.cols; n > max {
		n = max
	}
	r := t.lastInput
	for i := 0; i < n; i++ {
		t.inputLocked(r)
	}
}

// Substitute handles SUB; the aborted sequence is already discarded.
func (t *Terminal) Substitute() {}

// --- Erasing and editing ---

// InsertBlank inserts n blank cells at the cursor, shifting the rest of the
// line right (ICH).
func (t *Terminal) InsertBlank(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.InsertBlanks(t.cursor.Y, t.cursor.X, n, t.template.Cell)
}

// DeleteChars removes n cells at the cursor, shifting the rest of the line
// left (DCH).
func (t *Terminal) DeleteChars(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.DeleteChars(t.cursor.Y, t.cursor.X, n, t.template.Cell)
}

// EraseChars blanks n cells at the cursor without shifting (ECH).
func (t *Terminal) EraseChars(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 1 {
		n = 1
	}
	t.activeBuffer.ClearRegion(t.cursor.X, t.cursor.Y, t.cursor.X+n-1, t.cursor.Y, t.template.Cell)
}

// InsertBlankLines inserts n blank lines at the cursor (IL). A no-op when
// the cursor is outside the scroll region.
func (t *Terminal) InsertBlankLines(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cursor.Y >= t.scrollTop && t.cursor.Y <= t.scrollBottom {
		t.scrollDownLocked(t.cursor.Y, n)
	}
}

// DeleteLines removes n lines at the cursor (DL). A no-op when the cursor
// is outside the scroll region.
func (t *Terminal) DeleteLines(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cursor.Y >= t.scrollTop && t.cursor.Y <= t.scrollBottom {
		// Deleting inside the region never feeds scrollback.
		storage := t.activeBuffer.ScrollbackProvider()
		t.activeBuffer.SetScrollbackProvider(NoopScrollback{})
		t.activeBuffer.DeleteLines(t.cursor.Y, n, t.scrollBottom, t.template.Cell)
		t.activeBuffer.SetScrollbackProvider(storage)
	}
}

// ClearLine erases parts of the cursor row (EL).
func (t *Terminal) ClearLine(mode LineClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case LineClearRight:
		t.activeBuffer.ClearRegion(t.cursor.X, t.cursor.Y, t.cols-1, t.cursor.Y, t.template.Cell)
	case LineClearLeft:
		t.activeBuffer.ClearRegion(0, t.cursor.Y, t.cursor.X, t.cursor.Y, t.template.Cell)
	case LineClearAll:
		t.activeBuffer.ClearRow(t.cursor.Y, t.template.Cell)
	}
}

// ClearScreen erases parts of the display (ED); mode 3 clears scrollback.
func (t *Terminal) ClearScreen(mode ClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf := t.activeBuffer
	switch mode {
	case ClearBelow:
		buf.ClearRegion(t.cursor.X, t.cursor.Y, t.cols-1, t.cursor.Y, t.template.Cell)
		if t.cursor.Y < t.rows-1 {
			buf.ClearRegion(0, t.cursor.Y+1, t.cols-1, t.rows-1, t.template.Cell)
		}
	case ClearAbove:
		if t.cursor.Y > 0 {
			buf.ClearRegion(0, 0, t.cols-1, t.cursor.Y-1, t.template.Cell)
		}
		buf.ClearRegion(0, t.cursor.Y, t.cursor.X, t.cursor.Y, t.template.Cell)
	case ClearAll:
		buf.ClearRegion(0, 0, t.cols-1, t.rows-1, t.template.Cell)
	case ClearSaved:
		t.primaryBuffer.ClearScrollback()
		t.scrollHistoryLocked(0)
	}
}

// ClearTabs removes tab stops (TBC).
func (t *Terminal) ClearTabs(mode TabClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case TabClearCurrent:
		t.activeBuffer.ClearTabStop(t.cursor.X)
	case TabClearAll:
		t.activeBuffer.ClearAllTabStops()
	}
}

// HorizontalTabSet enables a tab stop at the cursor column (HTS).
func (t *Terminal) HorizontalTabSet() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.SetTabStop(t.cursor.X)
}

// Decaln fills the screen with 'E' and homes the cursor (DECALN).
func (t *Terminal) Decaln() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.FillWithE(t.template.Cell)
	t.cursor.X, t.cursor.Y = 0, 0
	t.cursor.WrapNext = false
}

// --- Modes ---

// SetMode enables a terminal mode.
func (t *Terminal) SetMode(mode TerminalMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setModeLocked(mode, true)
}

// UnsetMode disables a terminal mode.
func (t *Terminal) UnsetMode(mode TerminalMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setModeLocked(mode, false)
}

func (t *Terminal) setModeLocked(mode TerminalMode, set bool) {
	switch mode {
	case ModeOrigin:
		if set {
			t.modes |= mode
		} else {
			t.modes &^= mode
		}
		t.moveToLocked(0, 0)
		return
	case ModeShowCursor:
		t.cursor.Visible = set
		t.activeBuffer.MarkDirty(t.cursor.Y)
	case ModeReverseVideo:
		t.activeBuffer.MarkAllDirty()
	case ModeAltScreen:
		t.enterAltScreenLocked(set, false)
	case ModeSwapScreenAndSetRestoreCursor:
		t.enterAltScreenLocked(set, true)
	}

	if set {
		t.modes |= mode
	} else {
		t.modes &^= mode
	}
}

// enterAltScreenLocked switches between the primary and alternate screens.
// withCursor additionally saves/restores the cursor (mode 1049 semantics);
// the alternate screen is cleared on entry either way.
func (t *Terminal) enterAltScreenLocked(enter, withCursor bool) {
	if enter {
		if t.activeBuffer == t.alternateBuffer {
			return
		}
		if withCursor {
			t.saveCursorLocked()
		}
		t.activeBuffer = t.alternateBuffer
		t.activeBuffer.ClearRegion(0, 0, t.cols-1, t.rows-1, t.template.Cell)
		t.scrollHistoryLocked(0)
	} else {
		if t.activeBuffer == t.primaryBuffer {
			return
		}
		t.activeBuffer = t.primaryBuffer
		if withCursor {
			t.restoreCursorLocked()
		}
	}
	t.activeBuffer.MarkAllDirty()
}

// SetKeypadApplicationMode selects application keypad encoding (DECKPAM).
func (t *Terminal) SetKeypadApplicationMode() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modes |= ModeKeypadApplication
}

// UnsetKeypadApplicationMode selects numeric keypad encoding (DECKPNM).
func (t *Terminal) UnsetKeypadApplicationMode() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modes &^= ModeKeypadApplication
}

// --- Attributes ---

// SetCharAttribute applies one SGR action to the attribute template.
func (t *Terminal) SetCharAttribute(attr CharAttribute) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tpl := &t.template
	switch attr.Kind {
	case AttrReset:
		t.template = NewCellTemplate()
	case AttrBold:
		tpl.SetFlag(CellFlagBold)
	case AttrFaint:
		tpl.SetFlag(CellFlagFaint)
	case AttrItalic:
		tpl.SetFlag(CellFlagItalic)
	case AttrUnderline:
		tpl.SetFlag(CellFlagUnderline)
		tpl.UnderlineStyle = attr.Underline
	case AttrBlink:
		tpl.SetFlag(CellFlagBlink)
	case AttrReverse:
		tpl.SetFlag(CellFlagReverse)
	case AttrHidden:
		tpl.SetFlag(CellFlagHidden)
	case AttrStruck:
		tpl.SetFlag(CellFlagStruck)
	case AttrCancelBoldFaint:
		tpl.ClearFlag(CellFlagBold | CellFlagFaint)
	case AttrCancelItalic:
		tpl.ClearFlag(CellFlagItalic)
	case AttrCancelUnderline:
		tpl.ClearFlag(CellFlagUnderline)
		tpl.UnderlineStyle = UnderlineStraight
	case AttrCancelBlink:
		tpl.ClearFlag(CellFlagBlink)
	case AttrCancelReverse:
		tpl.ClearFlag(CellFlagReverse)
	case AttrCancelHidden:
		tpl.ClearFlag(CellFlagHidden)
	case AttrCancelStruck:
		tpl.ClearFlag(CellFlagStruck)
	case AttrForeground:
		tpl.Fg = attr.Color
	case AttrBackground:
		tpl.Bg = attr.Color
	case AttrUnderlineColor:
		tpl.UnderlineColor = attr.Color
	}
}

// SetCursorStyle changes the cursor rendering style (DECSCUSR).
func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor.Style = style
	t.activeBuffer.MarkDirty(t.cursor.Y)
}

// --- Save/restore cursor ---

// savedSlotLocked returns the save slot for the active screen.
func (t *Terminal) savedSlotLocked() *SavedCursor {
	if t.activeBuffer == t.alternateBuffer {
		return &t.savedCursors[1]
	}
	return &t.savedCursors[0]
}

func (t *Terminal) saveCursorLocked() {
	*t.savedSlotLocked() = SavedCursor{
		X:             t.cursor.X,
		Y:             t.cursor.Y,
		Template:      t.template,
		Origin:        t.modes&ModeOrigin != 0,
		Charsets:      t.charsets,
		ActiveCharset: t.activeCharset,
		ScrollTop:     t.scrollTop,
		ScrollBottom:  t.scrollBottom,
		Style:         t.cursor.Style,
		valid:         true,
	}
}

func (t *Terminal) restoreCursorLocked() {
	saved := t.savedSlotLocked()
	if !saved.valid {
		// Nothing saved yet: restore the power-up state.
		t.cursor.X, t.cursor.Y = 0, 0
		t.cursor.WrapNext = false
		t.template = NewCellTemplate()
		return
	}
	t.cursor.X = clamp(saved.X, 0, t.cols-1)
	t.cursor.Y = clamp(saved.Y, 0, t.rows-1)
	t.cursor.WrapNext = false
	t.cursor.Style = saved.Style
	t.template = saved.Template
	t.charsets = saved.Charsets
	t.activeCharset = saved.ActiveCharset
	t.scrollTop = clamp(saved.ScrollTop, 0, t.rows-1)
	t.scrollBottom = clamp(saved.ScrollBottom, t.scrollTop, t.rows-1)
	if saved.Origin {
		t.modes |= ModeOrigin
	} else {
		t.modes &^= ModeOrigin
	}
	t.activeBuffer.MarkDirty(t.cursor.Y)
}

// SaveCursorPosition snapshots the cursor state into the active screen's
// save slot (DECSC).
func (t *Terminal) SaveCursorPosition() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saveCursorLocked()
}

// RestoreCursorPosition restores the cursor state from the active screen's
// save slot (DECRC).
func (t *Terminal) RestoreCursorPosition() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.restoreCursorLocked()
}

// --- Scroll region ---

// SetScrollingRegion sets the vertical margins from 1-based DECSTBM
// parameters (0 selects the default) and homes the cursor.
func (t *Terminal) SetScrollingRegion(top, bottom int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if top < 1 {
		top = 1
	}
	if bottom < 1 || bottom > t.rows {
		bottom = t.rows
	}
	top = clamp(top, 1, t.rows)
	if top >= bottom {
		t.scrollTop = 0
		t.scrollBottom = t.rows - 1
	} else {
		t.scrollTop = top - 1
		t.scrollBottom = bottom - 1
	}
	t.moveToLocked(0, 0)
}

// --- Charsets ---

// ConfigureCharset assigns a charset to one of the G0..G3 slots.
func (t *Terminal) ConfigureCharset(index CharsetIndex, charset Charset) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index >= CharsetIndexG0 && index <= CharsetIndexG3 {
		t.charsets[index] = charset
	}
}

// SetActiveCharset selects which slot translates printables (SI/SO/LS2/LS3).
func (t *Terminal) SetActiveCharset(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n >= 0 && n < 4 {
		t.activeCharset = n
	}
}

// SingleShift routes only the next printable through G2 or G3 (SS2/SS3).
func (t *Terminal) SingleShift(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n == 2 || n == 3 {
		t.singleShift = n
	}
}

// --- Reports ---

// DeviceStatus answers DSR queries: 5 reports OK, 6 reports the cursor
// position (1-based, origin-relative in origin mode).
func (t *Terminal) DeviceStatus(n int) {
	t.mu.RLock()
	row := t.cursor.Y
	col := t.cursor.X
	if t.modes&ModeOrigin != 0 {
		row -= t.scrollTop
	}
	t.mu.RUnlock()

	switch n {
	case 5:
		t.writeResponseString("\x1b[0n")
	case 6:
		t.writeResponseString(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1))
	}
}

// IdentifyTerminal answers DA queries. The marker distinguishes the
// secondary form (CSI > c) from the primary (CSI c / ESC Z).
func (t *Terminal) IdentifyTerminal(marker byte) {
	switch marker {
	case '>':
		t.writeResponseString("\x1b[>1;100;0c")
	case 0:
		t.writeResponseString("\x1b[?6c")
	}
}

// MediaCopy tracks the printer controller state (MC 4/5). No printer is
// attached; the flag is readable through PrinterOn.
func (t *Terminal) MediaCopy(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch n {
	case 4:
		t.printerOn = false
	case 5:
		t.printerOn = true
	}
}

// PrinterOn returns true while the printer controller is engaged.
func (t *Terminal) PrinterOn() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.printerOn
}

// --- Bell, title, hyperlinks ---

// Bell forwards the BEL notification to the bell provider.
func (t *Terminal) Bell() {
	t.mu.RLock()
	provider := t.bellProvider
	t.mu.RUnlock()
	if provider != nil {
		provider.Ring()
	}
}

// SetTitle updates the window title and flags it dirty (OSC 0/1/2).
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	t.titleDirty = true
	provider := t.titleProvider
	t.mu.Unlock()
	if provider != nil {
		provider.SetTitle(title)
	}
}

// PushTitle saves the current title onto the title stack.
func (t *Terminal) PushTitle() {
	t.mu.Lock()
	t.titleStack = append(t.titleStack, t.title)
	provider := t.titleProvider
	t.mu.Unlock()
	if provider != nil {
		provider.PushTitle()
	}
}

// PopTitle restores the most recently pushed title.
func (t *Terminal) PopTitle() {
	t.mu.Lock()
	if n := len(t.titleStack); n > 0 {
		t.title = t.titleStack[n-1]
		t.titleStack = t.titleStack[:n-1]
		t.titleDirty = true
	}
	provider := t.titleProvider
	t.mu.Unlock()
	if provider != nil {
		provider.PopTitle()
	}
}

// SetHyperlink starts or ends a hyperlink run (OSC 8). Cells written while
// a link is active carry it.
func (t *Terminal) SetHyperlink(h *Hyperlink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentHyperlink = h
}

// --- Colors ---

// SetColor overrides a palette entry (OSC 4).
func (t *Terminal) SetColor(index int, c color.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.palette.Set(index, c)
	t.activeBuffer.MarkAllDirty()
}

// ResetColor restores a palette entry, or the whole palette when index is
// negative (OSC 104).
func (t *Terminal) ResetColor(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 {
		t.palette.ResetAll()
	} else {
		t.palette.Reset(index)
	}
	t.activeBuffer.MarkAllDirty()
}

// SetDynamicColor sets the default foreground (10), background (11), or
// cursor (12) color.
func (t *Terminal) SetDynamicColor(code int, c color.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch code {
	case 10:
		t.defaultFg = c
	case 11:
		t.defaultBg = c
	case 12:
		t.defaultCursor = c
	default:
		return
	}
	t.activeBuffer.MarkAllDirty()
}

// ReportDynamicColor answers an OSC 10/11/12 "?" query with the current
// color value.
func (t *Terminal) ReportDynamicColor(code int, terminator string) {
	t.mu.RLock()
	var c color.RGBA
	switch code {
	case 10:
		c = t.defaultFg
	case 11:
		c = t.defaultBg
	case 12:
		c = t.defaultCursor
	default:
		t.mu.RUnlock()
		return
	}
	t.mu.RUnlock()

	t.writeResponseString(fmt.Sprintf("\x1b]%d;%s%s", code, formatColorResponse(c), terminator))
}

// ResetDynamicColor restores a default color from the configuration
// (OSC 110/111/112).
func (t *Terminal) ResetDynamicColor(code int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch code {
	case 10:
		t.defaultFg = t.cfg.foreground()
	case 11:
		t.defaultBg = t.cfg.background()
	case 12:
		t.defaultCursor = t.cfg.cursorColor()
	default:
		return
	}
	t.activeBuffer.MarkAllDirty()
}

// --- Clipboard ---

// ClipboardStore writes data to the clipboard provider (OSC 52 set).
func (t *Terminal) ClipboardStore(clipboard byte, data []byte) {
	t.mu.RLock()
	provider := t.clipboardProvider
	t.mu.RUnlock()
	if provider != nil {
		provider.Write(clipboard, data)
	}
}

// ClipboardLoad answers an OSC 52 query with the provider's content,
// base64-encoded.
func (t *Terminal) ClipboardLoad(clipboard byte, terminator string) {
	t.mu.RLock()
	provider := t.clipboardProvider
	t.mu.RUnlock()
	if provider == nil {
		return
	}
	content := provider.Read(clipboard)
	if content == "" {
		return
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	t.writeResponseString("\x1b]52;" + string(clipboard) + ";" + encoded + terminator)
}

// --- String sequence passthrough ---

// DeviceControlReceived forwards a DCS payload to the configured provider.
func (t *Terminal) DeviceControlReceived(data []byte) {
	if t.dcsProvider != nil {
		t.dcsProvider.Receive(data)
	}
}

// ApplicationCommandReceived forwards an APC payload.
func (t *Terminal) ApplicationCommandReceived(data []byte) {
	if t.apcProvider != nil {
		t.apcProvider.Receive(data)
	}
}

// PrivacyMessageReceived forwards a PM payload.
func (t *Terminal) PrivacyMessageReceived(data []byte) {
	if t.pmProvider != nil {
		t.pmProvider.Receive(data)
	}
}

// StartOfStringReceived forwards a SOS payload.
func (t *Terminal) StartOfStringReceived(data []byte) {
	if t.sosProvider != nil {
		t.sosProvider.Receive(data)
	}
}

// --- Full reset ---

// ResetState returns the terminal to its power-up state: both screens
// cleared, cursor homed, default attributes, modes, charsets, palette, and
// scroll region (RIS).
func (t *Terminal) ResetState() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.primaryBuffer.ClearRegion(0, 0, t.cols-1, t.rows-1, NewCellTemplate().Cell)
	t.alternateBuffer.ClearRegion(0, 0, t.cols-1, t.rows-1, NewCellTemplate().Cell)
	t.activeBuffer = t.primaryBuffer

	t.cursor.X, t.cursor.Y = 0, 0
	t.cursor.WrapNext = false
	t.cursor.Visible = true
	t.cursor.Style = t.cfg.cursorStyle()

	t.template = NewCellTemplate()
	t.scrollTop = 0
	t.scrollBottom = t.rows - 1
	t.modes = defaultModes
	t.charsets = [4]Charset{}
	t.activeCharset = 0
	t.singleShift = -1
	t.savedCursors = [2]SavedCursor{}
	t.currentHyperlink = nil
	t.lastInput = 0
	t.printerOn = false
	t.histOffset = 0

	t.palette.ResetAll()
	t.defaultFg = t.cfg.foreground()
	t.defaultBg = t.cfg.background()
	t.defaultCursor = t.cfg.cursorColor()

	t.sel.reset()
	t.primaryBuffer.MarkAllDirty()
	t.alternateBuffer.MarkAllDirty()
}
