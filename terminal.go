package vterm

import (
	"errors"
	"image/color"
	"sync"
)

// ErrResizeBelowMinimum is returned when a resize requests fewer than one
// row or column. The terminal state is left unchanged.
var ErrResizeBelowMinimum = errors.New("vterm: resize below minimum dimensions")

// TerminalMode is a bitmask of terminal behavior flags. Multiple modes can
// be active simultaneously.
type TerminalMode uint32

const (
	// ModeCursorKeys enables application cursor key mode (DECCKM).
	ModeCursorKeys TerminalMode = 1 << iota
	// ModeKeyboardLock disables keyboard input (KAM).
	ModeKeyboardLock
	// ModeEcho disables local echo when set (SRM; the set/reset sense is
	// inverted: SM 12 turns echo off).
	ModeEcho
	// ModeInsert shifts characters right instead of overwriting (IRM).
	ModeInsert
	// ModeLineFeedNewLine makes line feed also move to column 0 (LNM).
	ModeLineFeedNewLine
	// ModeOrigin makes cursor addressing relative to the scroll region
	// (DECOM).
	ModeOrigin
	// ModeLineWrap enables automatic wrapping at the last column (DECAWM).
	ModeLineWrap
	// ModeReverseVideo swaps default foreground/background (DECSCNM).
	ModeReverseVideo
	// ModeShowCursor makes the cursor visible (DECTCEM).
	ModeShowCursor
	// ModeReportMouseClicks enables mouse press/release reporting.
	ModeReportMouseClicks
	// ModeReportCellMouseMotion enables cell-based motion reporting.
	ModeReportCellMouseMotion
	// ModeReportAllMouseMotion enables reporting of all mouse motion.
	ModeReportAllMouseMotion
	// ModeReportFocusInOut enables focus in/out reporting.
	ModeReportFocusInOut
	// ModeSGRMouse selects the SGR mouse report encoding.
	ModeSGRMouse
	// ModeAltScreen switches to the alternate screen (modes 47/1047).
	ModeAltScreen
	// ModeSwapScreenAndSetRestoreCursor saves the cursor, clears the
	// alternate screen, and switches to it; unsetting swaps back and
	// restores (mode 1049).
	ModeSwapScreenAndSetRestoreCursor
	// ModeBracketedPaste frames pasted text with ESC[200~ / ESC[201~.
	ModeBracketedPaste
	// ModeSynchronizedOutput asks the renderer to coalesce frames until
	// the flag clears (mode 2026).
	ModeSynchronizedOutput
	// ModeKeypadApplication selects application keypad encoding (DECKPAM).
	ModeKeypadApplication
)

// defaultModes is the state after power-up and full reset.
const defaultModes = ModeLineWrap | ModeShowCursor

// Terminal emulates a VT220-compatible terminal without a display. It
// maintains two buffers: primary (with scrollback) and alternate (no
// scrollback). The active buffer switches when entering or leaving
// alternate screen mode. All operations are thread-safe via internal
// locking; provider callbacks run synchronously and must not re-enter.
type Terminal struct {
	mu sync.RWMutex

	cfg *Config

	// Dimensions
	rows int
	cols int

	// Buffers
	primaryBuffer   *Buffer
	alternateBuffer *Buffer
	activeBuffer    *Buffer

	// Cursor and attributes
	cursor       *Cursor
	template     CellTemplate
	savedCursors [2]SavedCursor // primary, alternate

	// Charsets
	charsets      [4]Charset
	activeCharset int
	singleShift   int // pending SS2/SS3 slot, -1 when none

	// Scrolling region, inclusive bounds
	scrollTop    int
	scrollBottom int

	// Modes
	modes TerminalMode

	// History view offset: number of scrollback lines scrolled into view.
	histOffset int

	// Title
	title      string
	titleDirty bool
	titleStack []string

	// Colors
	palette       *Palette
	defaultFg     color.RGBA
	defaultBg     color.RGBA
	defaultCursor color.RGBA

	// Current hyperlink applied to written cells (OSC 8)
	currentHyperlink *Hyperlink

	// Last written printable, for REP
	lastInput rune

	// Printer controller state (MC 4/5)
	printerOn bool

	// Selection
	sel selectionState

	// Internal escape sequence decoder
	decoder *Decoder

	// Providers for external data/actions
	responseProvider  ResponseProvider
	bellProvider      BellProvider
	titleProvider     TitleProvider
	clipboardProvider ClipboardProvider
	dcsProvider       DCSProvider
	apcProvider       APCProvider
	pmProvider        PMProvider
	sosProvider       SOSProvider
}

// Ensure Terminal implements the decoder's Handler contract.
var _ Handler = (*Terminal)(nil)

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithConfig supplies the full configuration object. Options applied after
// this one override individual values.
func WithConfig(cfg *Config) Option {
	return func(t *Terminal) {
		if cfg != nil {
			t.cfg = cfg
		}
	}
}

// WithSize sets the terminal dimensions. Values <= 0 keep the configured
// defaults.
func WithSize(rows, cols int) Option {
	return func(t *Terminal) {
		if rows > 0 {
			t.rows = rows
		}
		if cols > 0 {
			t.cols = cols
		}
	}
}

// WithResponse sets the writer for terminal responses (cursor position
// reports, device attributes). If nil, responses are discarded.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) {
		t.responseProvider = p
	}
}

// WithBell sets the handler for bell events. Defaults to a no-op.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) {
		t.bellProvider = p
	}
}

// WithTitle sets the handler for window title changes. Defaults to a no-op.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// WithClipboard sets the handler for clipboard operations (OSC 52).
// Defaults to a no-op.
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) {
		t.clipboardProvider = p
	}
}

// WithDCS sets the handler for Device Control String payloads.
func WithDCS(p DCSProvider) Option {
	return func(t *Terminal) {
		t.dcsProvider = p
	}
}

// WithAPC sets the handler for Application Program Command payloads.
func WithAPC(p APCProvider) Option {
	return func(t *Terminal) {
		t.apcProvider = p
	}
}

// WithPM sets the handler for Privacy Message payloads.
func WithPM(p PMProvider) Option {
	return func(t *Terminal) {
		t.pmProvider = p
	}
}

// WithSOS sets the handler for Start of String payloads.
func WithSOS(p SOSProvider) Option {
	return func(t *Terminal) {
		t.sosProvider = p
	}
}

// New creates a terminal with the given options. Defaults come from
// DefaultConfig: 24x80, 1000 lines of scrollback, line wrap and cursor
// visible.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		cfg:               DefaultConfig(),
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		clipboardProvider: NoopClipboard{},
		dcsProvider:       NoopDCS{},
		apcProvider:       NoopAPC{},
		pmProvider:        NoopPM{},
		sosProvider:       NoopSOS{},
		singleShift:       -1,
	}

	for _, opt := range opts {
		opt(t)
	}
	if t.rows <= 0 {
		t.rows = t.cfg.Rows
	}
	if t.cols <= 0 {
		t.cols = t.cfg.Cols
	}
	if t.rows <= 0 {
		t.rows = 24
	}
	if t.cols <= 0 {
		t.cols = 80
	}

	t.primaryBuffer = NewBufferWithStorage(t.rows, t.cols, t.cfg.TabInterval,
		NewRingScrollback(t.cfg.Scrollback, t.cols))
	t.alternateBuffer = NewBuffer(t.rows, t.cols, t.cfg.TabInterval)
	t.activeBuffer = t.primaryBuffer

	t.cursor = NewCursor()
	t.cursor.Style = t.cfg.cursorStyle()
	t.template = NewCellTemplate()

	t.scrollTop = 0
	t.scrollBottom = t.rows - 1
	t.modes = defaultModes

	t.palette = NewPalette(t.cfg.baseColors())
	t.defaultFg = t.cfg.foreground()
	t.defaultBg = t.cfg.background()
	t.defaultCursor = t.cfg.cursorColor()

	t.sel.reset()

	t.decoder = NewDecoder(t)
	return t
}

// Write processes raw bytes, parsing escape sequences and updating the
// terminal state. Implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	return t.decoder.Write(data)
}

// WriteString converts the string to bytes and calls Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// --- Accessors ---

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns the cell at (row, col) in the active buffer, or nil if out
// of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.Cell(row, col)
}

// CursorPos returns the current cursor position as (row, col), 0-based.
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Y, t.cursor.X
}

// CursorVisible returns true if the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Visible
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Style
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// TitleDirty returns true if the title changed since the last
// ClearTitleDirty. Renderers poll this and apply the new title.
func (t *Terminal) TitleDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.titleDirty
}

// ClearTitleDirty acknowledges a title change.
func (t *Terminal) ClearTitleDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.titleDirty = false
}

// HasMode returns true if the specified mode flag is enabled.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&mode != 0
}

// IsAlternateScreen returns true if the alternate buffer is active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer == t.alternateBuffer
}

// ScrollRegion returns the scrolling boundaries (0-based, both inclusive).
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollTop, t.scrollBottom
}

// Palette returns the terminal's color palette.
func (t *Terminal) Palette() *Palette {
	return t.palette
}

// ResolveColor maps a color key to a concrete RGBA value using the palette
// and the current default colors.
func (t *Terminal) ResolveColor(c Color) color.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolveColorLocked(c)
}

func (t *Terminal) resolveColorLocked(c Color) color.RGBA {
	if c.IsRGB() {
		r, g, b := c.RGBValues()
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	switch c {
	case ColorForeground:
		return t.defaultFg
	case ColorBackground:
		return t.defaultBg
	case ColorCursor:
		return t.defaultCursor
	case ColorReverseCursor:
		return t.defaultBg
	}
	return t.palette.Color(int(c))
}

// --- Dirty tracking ---

// HasDirty returns true if any row of the active buffer changed since the
// last ClearDirty call.
func (t *Terminal) HasDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.HasDirty()
}

// IsRowDirty returns true if the given row changed.
func (t *Terminal) IsRowDirty(row int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.IsDirty(row)
}

// ClearDirty marks all rows clean.
func (t *Terminal) ClearDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for row := 0; row < t.rows; row++ {
		t.activeBuffer.ClearDirty(row)
	}
}

// --- Scrollback and history view ---

// ScrollbackLen returns the number of lines in scrollback (primary only).
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackLen()
}

// ScrollbackLine returns a scrollback line, where 0 is the oldest.
func (t *Terminal) ScrollbackLine(index int) []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackLine(index)
}

// ClearScrollback removes all stored scrollback lines.
func (t *Terminal) ClearScrollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primaryBuffer.ClearScrollback()
	t.histOffset = 0
}

// HistoryOffset returns how many scrollback lines are scrolled into view.
func (t *Terminal) HistoryOffset() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.histOffset
}

// ScrollHistoryUp shifts the view n lines toward older history, clamped to
// the scrollback length. Any change marks the whole screen dirty.
func (t *Terminal) ScrollHistoryUp(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollHistoryLocked(t.histOffset + n)
}

// ScrollHistoryDown shifts the view n lines back toward the live screen.
func (t *Terminal) ScrollHistoryDown(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollHistoryLocked(t.histOffset - n)
}

func (t *Terminal) scrollHistoryLocked(offset int) {
	if t.activeBuffer == t.alternateBuffer {
		offset = 0
	}
	offset = clamp(offset, 0, t.primaryBuffer.ScrollbackLen())
	if offset != t.histOffset {
		t.histOffset = offset
		t.activeBuffer.MarkAllDirty()
	}
}

// VisibleLine returns the cells of displayed row y, accounting for the
// history view offset: scrolled-back rows come from the scrollback ring,
// the rest from the live screen. Renderer and selection share this
// translation.
func (t *Terminal) VisibleLine(y int) []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visibleLineLocked(y)
}

func (t *Terminal) visibleLineLocked(y int) []Cell {
	if y < 0 || y >= t.rows {
		return nil
	}
	if y < t.histOffset {
		sb := t.primaryBuffer.ScrollbackLen()
		return t.primaryBuffer.ScrollbackLine(sb - t.histOffset + y)
	}
	return t.activeBuffer.Row(y - t.histOffset)
}

// scrollbackVisibleLen returns the history length that participates in the
// virtual buffer: zero while the alternate screen is active.
func (t *Terminal) scrollbackVisibleLen() int {
	if t.activeBuffer == t.alternateBuffer {
		return 0
	}
	return t.primaryBuffer.ScrollbackLen()
}

// absLine returns a row of the virtual buffer scrollback ∪ screen, where
// y=0 is the oldest scrollback line.
func (t *Terminal) absLine(y int) []Cell {
	sb := t.scrollbackVisibleLen()
	if y < 0 {
		return nil
	}
	if y < sb {
		return t.primaryBuffer.ScrollbackLine(y)
	}
	return t.activeBuffer.Row(y - sb)
}

// --- Resize ---

// Resize changes the terminal dimensions. If the cursor row would fall
// outside the new height, the primary screen is shifted up and the shifted
// rows are dropped. Scrollback lines are blanked on column changes (no
// reflow). The scroll region resets to the full screen, the cursor is
// clamped, and everything is marked dirty. Dimensions < 1 are rejected.
func (t *Terminal) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return ErrResizeBelowMinimum
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if shift := t.cursor.Y - (rows - 1); shift > 0 {
		// Drop the shifted-off rows without feeding scrollback.
		storage := t.primaryBuffer.ScrollbackProvider()
		t.primaryBuffer.SetScrollbackProvider(NoopScrollback{})
		t.primaryBuffer.ScrollUp(0, t.rows-1, shift, t.template.Cell)
		t.primaryBuffer.SetScrollbackProvider(storage)
		t.cursor.Y -= shift
	}

	colsChanged := cols != t.cols
	t.rows = rows
	t.cols = cols
	t.primaryBuffer.Resize(rows, cols)
	t.alternateBuffer.Resize(rows, cols)

	if colsChanged {
		if r, ok := t.primaryBuffer.ScrollbackProvider().(ColumnResizer); ok {
			r.ResizeColumns(cols)
		}
	}

	t.scrollTop = 0
	t.scrollBottom = rows - 1
	t.cursor.X = clamp(t.cursor.X, 0, cols-1)
	t.cursor.Y = clamp(t.cursor.Y, 0, rows-1)
	t.cursor.WrapNext = false
	t.histOffset = clamp(t.histOffset, 0, t.primaryBuffer.ScrollbackLen())

	t.primaryBuffer.MarkAllDirty()
	t.alternateBuffer.MarkAllDirty()
	return nil
}

// --- Content helpers ---

// LineContent returns the text of a screen row with trailing blanks
// trimmed.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.LineContent(row)
}

// String returns the visible screen content as a newline-separated string
// with trailing empty lines omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lastNonEmpty := -1
	lines := make([]string, t.rows)
	for row := 0; row < t.rows; row++ {
		lines[row] = t.activeBuffer.LineContent(row)
		if lines[row] != "" {
			lastNonEmpty = row
		}
	}
	if lastNonEmpty < 0 {
		return ""
	}

	out := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

// Search finds all occurrences of pattern in the visible screen content and
// returns the position of the first character of each match.
func (t *Terminal) Search(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}

	var matches []Position
	want := []rune(pattern)
	for row := 0; row < t.rows; row++ {
		line := []rune(t.activeBuffer.LineContent(row))
		for col := 0; col+len(want) <= len(line); col++ {
			found := true
			for i, r := range want {
				if line[col+i] != r {
					found = false
					break
				}
			}
			if found {
				matches = append(matches, Position{Row: row, Col: col})
			}
		}
	}
	return matches
}

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int
	Col int
}

// Before returns true if this position comes before other in reading order.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Equal returns true if both row and column match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}
