package vterm

// ScrollbackProvider stores lines scrolled off the top of the primary
// buffer. Implementations can use in-memory storage, disk, a database, etc.
type ScrollbackProvider interface {
	// Push appends a line to scrollback. Oldest lines are dropped once
	// MaxLines is exceeded.
	Push(line []Cell)
	// Len returns the current number of stored lines.
	Len() int
	// Line returns the line at index, where 0 is the oldest line. Returns
	// nil if out of range.
	Line(index int) []Cell
	// Clear removes all stored lines.
	Clear()
	// SetMaxLines sets the maximum capacity, trimming oldest lines if
	// needed.
	SetMaxLines(max int)
	// MaxLines returns the current maximum capacity.
	MaxLines() int
}

// ColumnResizer is implemented by scrollback storages that can adjust their
// stored line width. After a column change the stored contents are blanked;
// line reflow is not attempted.
type ColumnResizer interface {
	ResizeColumns(cols int)
}

// NoopScrollback discards all scrollback lines. Used by the alternate
// buffer, which never contributes to history.
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell)      {}
func (NoopScrollback) Len() int              { return 0 }
func (NoopScrollback) Line(index int) []Cell { return nil }
func (NoopScrollback) Clear()                {}
func (NoopScrollback) SetMaxLines(max int)   {}
func (NoopScrollback) MaxLines() int         { return 0 }

var _ ScrollbackProvider = NoopScrollback{}

// RingScrollback keeps history in a fixed-capacity ring. Lines are written
// once on scroll-out and overwritten when the ring wraps.
type RingScrollback struct {
	lines [][]Cell
	cols  int
	write int
	count int
}

// NewRingScrollback creates a ring holding up to max lines of the given
// width.
func NewRingScrollback(max, cols int) *RingScrollback {
	if max < 0 {
		max = 0
	}
	return &RingScrollback{
		lines: make([][]Cell, max),
		cols:  cols,
	}
}

// Push copies the line into the ring, overwriting the oldest entry once the
// ring is full.
func (s *RingScrollback) Push(line []Cell) {
	if len(s.lines) == 0 {
		return
	}
	stored := make([]Cell, s.cols)
	for i := range stored {
		if i < len(line) {
			stored[i] = line[i]
		} else {
			stored[i] = NewCell()
		}
	}
	s.lines[s.write] = stored
	s.write = (s.write + 1) % len(s.lines)
	if s.count < len(s.lines) {
		s.count++
	}
}

// Len returns the number of stored lines.
func (s *RingScrollback) Len() int {
	return s.count
}

// Line returns the stored line at index, oldest first.
func (s *RingScrollback) Line(index int) []Cell {
	if index < 0 || index >= s.count {
		return nil
	}
	cap := len(s.lines)
	i := (s.write - s.count + index + 2*cap) % cap
	return s.lines[i]
}

// Clear drops all stored lines.
func (s *RingScrollback) Clear() {
	for i := range s.lines {
		s.lines[i] = nil
	}
	s.write = 0
	s.count = 0
}

// SetMaxLines changes the ring capacity, keeping the newest lines.
func (s *RingScrollback) SetMaxLines(max int) {
	if max < 0 {
		max = 0
	}
	if max == len(s.lines) {
		return
	}
	kept := s.count
	if kept > max {
		kept = max
	}
	lines := make([][]Cell, max)
	for i := 0; i < kept; i++ {
		lines[i] = s.Line(s.count - kept + i)
	}
	s.lines = lines
	s.count = kept
	s.write = kept % maxInt(max, 1)
	if max == 0 {
		s.write = 0
	}
}

// MaxLines returns the ring capacity.
func (s *RingScrollback) MaxLines() int {
	return len(s.lines)
}

// ResizeColumns reallocates every stored line to the new width and blanks
// its contents.
func (s *RingScrollback) ResizeColumns(cols int) {
	if cols == s.cols {
		return
	}
	s.cols = cols
	for i := range s.lines {
		if s.lines[i] == nil {
			continue
		}
		line := make([]Cell, cols)
		for j := range line {
			line[j] = NewCell()
		}
		s.lines[i] = line
	}
}

var (
	_ ScrollbackProvider = (*RingScrollback)(nil)
	_ ColumnResizer      = (*RingScrollback)(nil)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
