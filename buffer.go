package vterm

// Buffer stores a 2D grid of cells with per-row dirty tracking, tab stops,
// and optional scrollback storage for lines scrolled off the top.
//
// Rows are held behind a row-pointer slice so vertical scrolling is a
// pointer rotation, not a cell copy. The scroll region bottom used by
// ScrollUp/ScrollDown is inclusive.
type Buffer struct {
	rows        int
	cols        int
	cells       [][]Cell
	dirty       []bool
	tabStop     []bool
	tabInterval int
	scrollback  ScrollbackProvider
}

// NewBuffer creates a buffer with the given dimensions and no scrollback.
func NewBuffer(rows, cols, tabInterval int) *Buffer {
	return NewBufferWithStorage(rows, cols, tabInterval, NoopScrollback{})
}

// NewBufferWithStorage creates a buffer with custom scrollback storage.
func NewBufferWithStorage(rows, cols, tabInterval int, storage ScrollbackProvider) *Buffer {
	if tabInterval <= 0 {
		tabInterval = 8
	}
	b := &Buffer{
		rows:        rows,
		cols:        cols,
		cells:       make([][]Cell, rows),
		dirty:       make([]bool, rows),
		tabInterval: tabInterval,
		scrollback:  storage,
	}
	for i := range b.cells {
		b.cells[i] = newRow(cols)
		b.dirty[i] = true
	}
	b.resetTabStops()
	return b
}

func newRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

func (b *Buffer) resetTabStops() {
	b.tabStop = make([]bool, b.cols)
	for i := 0; i < b.cols; i += b.tabInterval {
		b.tabStop[i] = true
	}
}

// Rows returns the buffer height in character rows.
func (b *Buffer) Rows() int {
	return b.rows
}

// Cols returns the buffer width in character columns.
func (b *Buffer) Cols() int {
	return b.cols
}

// Cell returns a pointer to the cell at (row, col), or nil if out of bounds.
func (b *Buffer) Cell(row, col int) *Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil
	}
	return &b.cells[row][col]
}

// Row returns the cell slice for a row, or nil if out of bounds.
func (b *Buffer) Row(row int) []Cell {
	if row < 0 || row >= b.rows {
		return nil
	}
	return b.cells[row]
}

// --- Dirty tracking (per row) ---

// MarkDirty flags a row as needing redraw.
func (b *Buffer) MarkDirty(row int) {
	if row >= 0 && row < b.rows {
		b.dirty[row] = true
	}
}

// MarkDirtyRange flags rows a..b inclusive.
func (b *Buffer) MarkDirtyRange(a, c int) {
	if a > c {
		a, c = c, a
	}
	for row := a; row <= c; row++ {
		b.MarkDirty(row)
	}
}

// MarkAllDirty flags every row.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
}

// ClearDirty unflags a row.
func (b *Buffer) ClearDirty(row int) {
	if row >= 0 && row < b.rows {
		b.dirty[row] = false
	}
}

// IsDirty returns true if the row was modified since its last ClearDirty.
func (b *Buffer) IsDirty(row int) bool {
	return row >= 0 && row < b.rows && b.dirty[row]
}

// HasDirty returns true if any row is flagged.
func (b *Buffer) HasDirty() bool {
	for _, d := range b.dirty {
		if d {
			return true
		}
	}
	return false
}

// --- Wide characters ---

// ClearWide repairs the wide/spacer pair around (row, col) ahead of a write
// landing there. A write onto the leading half blanks the trailing spacer; a
// write onto the spacer blanks the leading half.
func (b *Buffer) ClearWide(row, col int) {
	c := b.Cell(row, col)
	if c == nil {
		return
	}
	if c.HasFlag(CellFlagWide) {
		if next := b.Cell(row, col+1); next != nil && next.HasFlag(CellFlagWideSpacer) {
			next.Char = ' '
			next.ClearFlag(CellFlagWideSpacer)
		}
	}
	if c.HasFlag(CellFlagWideSpacer) {
		if prev := b.Cell(row, col-1); prev != nil && prev.HasFlag(CellFlagWide) {
			prev.Char = ' '
			prev.ClearFlag(CellFlagWide)
		}
		c.Char = ' '
		c.ClearFlag(CellFlagWideSpacer)
	}
}

// --- Clearing ---

// blankCell derives the fill cell used by erase operations: a space keeping
// the template's colors with all attributes dropped.
func blankCell(tpl Cell) Cell {
	c := NewCell()
	c.Fg = tpl.Fg
	c.Bg = tpl.Bg
	return c
}

// ClearRegion fills the inclusive rectangle (x1, y1)..(x2, y2) with blank
// cells carrying the template's colors, and marks the covered rows dirty.
func (b *Buffer) ClearRegion(x1, y1, x2, y2 int, tpl Cell) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	x1 = clamp(x1, 0, b.cols-1)
	x2 = clamp(x2, 0, b.cols-1)
	y1 = clamp(y1, 0, b.rows-1)
	y2 = clamp(y2, 0, b.rows-1)

	fill := blankCell(tpl)
	for row := y1; row <= y2; row++ {
		b.ClearWide(row, x1)
		b.ClearWide(row, x2)
		for col := x1; col <= x2; col++ {
			b.cells[row][col] = fill
		}
		b.dirty[row] = true
	}
}

// ClearRow blanks an entire row.
func (b *Buffer) ClearRow(row int, tpl Cell) {
	b.ClearRegion(0, row, b.cols-1, row, tpl)
}

// FillWithE fills every cell with 'E' (DECALN alignment pattern).
func (b *Buffer) FillWithE(tpl Cell) {
	fill := blankCell(tpl)
	fill.Char = 'E'
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col] = fill
		}
		b.dirty[row] = true
	}
}

// --- Scrolling ---

// ScrollUp rotates rows up by n within [top, bot] (bot inclusive). When top
// is 0 the departing rows are pushed to the scrollback storage. Rows exposed
// at the bottom are blanked with the template's colors.
func (b *Buffer) ScrollUp(top, bot, n int, tpl Cell) {
	if top < 0 {
		top = 0
	}
	if bot > b.rows-1 {
		bot = b.rows - 1
	}
	if n <= 0 || top > bot {
		return
	}
	if n > bot-top+1 {
		n = bot - top + 1
	}

	if top == 0 {
		for i := 0; i < n; i++ {
			b.scrollback.Push(b.cells[i])
		}
	}

	fill := blankCell(tpl)
	departing := make([][]Cell, n)
	copy(departing, b.cells[top:top+n])

	for row := top; row+n <= bot; row++ {
		b.cells[row] = b.cells[row+n]
	}
	for i, row := 0, bot-n+1; row <= bot; i, row = i+1, row+1 {
		line := departing[i]
		for col := range line {
			line[col] = fill
		}
		b.cells[row] = line
	}
	b.MarkDirtyRange(top, bot)
}

// ScrollDown rotates rows down by n within [top, bot] (bot inclusive). Rows
// exposed at the top are blanked with the template's colors.
func (b *Buffer) ScrollDown(top, bot, n int, tpl Cell) {
	if top < 0 {
		top = 0
	}
	if bot > b.rows-1 {
		bot = b.rows - 1
	}
	if n <= 0 || top > bot {
		return
	}
	if n > bot-top+1 {
		n = bot - top + 1
	}

	fill := blankCell(tpl)
	departing := make([][]Cell, n)
	copy(departing, b.cells[bot-n+1:bot+1])

	for row := bot; row-n >= top; row-- {
		b.cells[row] = b.cells[row-n]
	}
	for i, row := 0, top; row < top+n; i, row = i+1, row+1 {
		line := departing[i]
		for col := range line {
			line[col] = fill
		}
		b.cells[row] = line
	}
	b.MarkDirtyRange(top, bot)
}

// InsertLines inserts n blank lines at row, shifting lines down within the
// region ending at bot (inclusive).
func (b *Buffer) InsertLines(row, n, bot int, tpl Cell) {
	if row < 0 || row > bot || n <= 0 {
		return
	}
	b.ScrollDown(row, bot, n, tpl)
}

// DeleteLines removes n lines at row, shifting lines up within the region
// ending at bot (inclusive).
func (b *Buffer) DeleteLines(row, n, bot int, tpl Cell) {
	if row < 0 || row > bot || n <= 0 {
		return
	}
	b.ScrollUp(row, bot, n, tpl)
}

// InsertBlanks inserts n blank cells at (row, col), shifting the remainder
// of the line right. Characters pushed past the last column are lost.
func (b *Buffer) InsertBlanks(row, col, n int, tpl Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}
	if n > b.cols-col {
		n = b.cols - col
	}

	b.ClearWide(row, col)
	line := b.cells[row]
	copy(line[col+n:], line[col:b.cols-n])
	fill := blankCell(tpl)
	for c := col; c < col+n; c++ {
		line[c] = fill
	}
	// A spacer shifted into the first column after the gap has lost its
	// leading half.
	if col+n < b.cols && line[col+n].HasFlag(CellFlagWideSpacer) {
		line[col+n].Char = ' '
		line[col+n].ClearFlag(CellFlagWideSpacer)
	}
	// A wide cell shifted against the right edge has lost its spacer.
	if line[b.cols-1].HasFlag(CellFlagWide) {
		line[b.cols-1].Char = ' '
		line[b.cols-1].ClearFlag(CellFlagWide)
	}
	b.dirty[row] = true
}

// DeleteChars removes n cells at (row, col), shifting the remainder of the
// line left and blanking the tail.
func (b *Buffer) DeleteChars(row, col, n int, tpl Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}
	if n > b.cols-col {
		n = b.cols - col
	}

	b.ClearWide(row, col)
	b.ClearWide(row, col+n-1)
	line := b.cells[row]
	copy(line[col:], line[col+n:])
	fill := blankCell(tpl)
	for c := b.cols - n; c < b.cols; c++ {
		line[c] = fill
	}
	if line[col].HasFlag(CellFlagWideSpacer) {
		line[col].Char = ' '
		line[col].ClearFlag(CellFlagWideSpacer)
	}
	b.dirty[row] = true
}

// --- Tab stops ---

// SetTabStop enables a tab stop at the column.
func (b *Buffer) SetTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = true
	}
}

// ClearTabStop disables the tab stop at the column.
func (b *Buffer) ClearTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = false
	}
}

// ClearAllTabStops disables every tab stop.
func (b *Buffer) ClearAllTabStops() {
	for i := range b.tabStop {
		b.tabStop[i] = false
	}
}

// NextTabStop returns the column of the next tab stop after col, or the
// last column if none remains.
func (b *Buffer) NextTabStop(col int) int {
	for c := col + 1; c < b.cols; c++ {
		if b.tabStop[c] {
			return c
		}
	}
	return b.cols - 1
}

// PrevTabStop returns the column of the previous tab stop before col, or 0.
func (b *Buffer) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if b.tabStop[c] {
			return c
		}
	}
	return 0
}

// --- Resize ---

// Resize changes the buffer dimensions, keeping content at the top-left.
// Rows grow by appending blanks and shrink by truncation; the tab stop
// bitmap is rebuilt at the default interval and every row is marked dirty.
func (b *Buffer) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	cells := make([][]Cell, rows)
	for i := range cells {
		if i < b.rows {
			old := b.cells[i]
			if cols == b.cols {
				cells[i] = old
				continue
			}
			row := newRow(cols)
			copy(row, old)
			// Truncation may cut a wide pair in half.
			if row[cols-1].HasFlag(CellFlagWide) {
				row[cols-1].Char = ' '
				row[cols-1].ClearFlag(CellFlagWide)
			}
			if row[0].HasFlag(CellFlagWideSpacer) {
				row[0].Char = ' '
				row[0].ClearFlag(CellFlagWideSpacer)
			}
			cells[i] = row
		} else {
			cells[i] = newRow(cols)
		}
	}

	b.cells = cells
	b.rows = rows
	b.cols = cols
	b.dirty = make([]bool, rows)
	b.MarkAllDirty()
	b.resetTabStops()
}

// --- Scrollback passthrough ---

// ScrollbackLen returns the number of lines stored in scrollback.
func (b *Buffer) ScrollbackLen() int {
	return b.scrollback.Len()
}

// ScrollbackLine returns a scrollback line, where 0 is the oldest.
func (b *Buffer) ScrollbackLine(index int) []Cell {
	return b.scrollback.Line(index)
}

// ClearScrollback removes all stored scrollback lines.
func (b *Buffer) ClearScrollback() {
	b.scrollback.Clear()
}

// SetScrollbackProvider replaces the scrollback storage.
func (b *Buffer) SetScrollbackProvider(storage ScrollbackProvider) {
	if storage == nil {
		storage = NoopScrollback{}
	}
	b.scrollback = storage
}

// ScrollbackProvider returns the current scrollback storage.
func (b *Buffer) ScrollbackProvider() ScrollbackProvider {
	return b.scrollback
}

// --- Content helpers ---

// LineContent returns the text of a row with trailing blanks trimmed. Wide
// character spacers are skipped.
func (b *Buffer) LineContent(row int) string {
	if row < 0 || row >= b.rows {
		return ""
	}
	return lineText(b.cells[row])
}

func lineText(line []Cell) string {
	last := -1
	for col := len(line) - 1; col >= 0; col-- {
		c := &line[col]
		if c.Char != ' ' && c.Char != 0 && !c.IsWideSpacer() {
			last = col
			break
		}
	}
	if last < 0 {
		return ""
	}

	runes := make([]rune, 0, last+1)
	for col := 0; col <= last; col++ {
		c := &line[col]
		if c.IsWideSpacer() {
			continue
		}
		if c.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, c.Char)
		}
	}
	return string(runes)
}

// clamp ensures the value is within the given range.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
