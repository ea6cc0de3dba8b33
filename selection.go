package vterm

import "strings"

// SelectionType selects how the range between the endpoints is shaped.
type SelectionType int

const (
	// SelectionRegular is a text-stream range bounded at the upper-left
	// and lower-right corners.
	SelectionRegular SelectionType = iota
	// SelectionRectangular is a block range.
	SelectionRectangular
)

// SelectionSnap expands the endpoints after normalization.
type SelectionSnap int

const (
	SnapNone SelectionSnap = iota
	// SnapWord expands to delimiter boundaries.
	SnapWord
	// SnapLine expands to full lines, following soft wraps.
	SnapLine
)

type selectionMode int

const (
	selIdle selectionMode = iota
	// selEmpty: a click was registered but no drag has arrived yet.
	selEmpty
	selReady
)

// selPoint is a position in the virtual buffer: y=0 is the oldest
// scrollback line, the live screen follows.
type selPoint struct {
	x int
	y int
}

// selMaxval marks "no valid range yet" in the normalized begin point.
const selMaxval = int(^uint(0) >> 1)

type selectionState struct {
	mode selectionMode
	typ  SelectionType
	snap SelectionSnap

	// Original begin/end in the order the user produced them.
	ob selPoint
	oe selPoint
	// Normalized and snapped range, nb <= ne.
	nb selPoint
	ne selPoint
}

func (s *selectionState) reset() {
	s.mode = selIdle
	s.nb.x = selMaxval
}

// --- Terminal selection API ---

// StartSelection registers a selection click at the given visible
// coordinates with the requested snapping behavior.
func (t *Terminal) StartSelection(col, row int, snap SelectionSnap) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.visibleToAbsLocked(col, row)
	t.sel.mode = selEmpty
	t.sel.snap = snap
	t.sel.ob = p
	t.sel.oe = p
	t.sel.nb.x = selMaxval
	t.activeBuffer.MarkAllDirty()
}

// ExtendSelection moves the selection end to the given visible coordinates.
// done marks the end of the drag; a click that never dragged and has no
// snapping clears the selection.
func (t *Terminal) ExtendSelection(col, row int, typ SelectionType, done bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sel.mode == selIdle {
		return
	}
	if done && t.sel.mode == selEmpty && t.sel.snap == SnapNone {
		t.sel.reset()
		return
	}

	t.sel.oe = t.visibleToAbsLocked(col, row)
	t.sel.typ = typ
	if done {
		t.sel.mode = selReady
	} else if t.sel.mode == selEmpty {
		t.sel.mode = selReady
	}
	t.normalizeSelectionLocked()
	t.activeBuffer.MarkAllDirty()
}

// ClearSelection discards the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sel.mode != selIdle {
		t.sel.reset()
		t.activeBuffer.MarkAllDirty()
	}
}

// HasSelection returns true if a selection range is available.
func (t *Terminal) HasSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sel.mode != selIdle && t.sel.nb.x != selMaxval
}

// IsSelected reports whether the cell at the given visible coordinates is
// inside the selection.
func (t *Terminal) IsSelected(col, row int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.sel.mode == selIdle || t.sel.nb.x == selMaxval {
		return false
	}
	p := t.visibleToAbsLocked(col, row)
	nb, ne := t.sel.nb, t.sel.ne

	if p.y < nb.y || p.y > ne.y {
		return false
	}
	if t.sel.typ == SelectionRectangular {
		return p.x >= nb.x && p.x <= ne.x
	}
	if p.y == nb.y && p.x < nb.x {
		return false
	}
	if p.y == ne.y && p.x > ne.x {
		return false
	}
	return true
}

// SelectedText extracts the selected content as UTF-8 text. Trailing blanks
// are trimmed per row; rows joined by a soft wrap carry no line break.
func (t *Terminal) SelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.sel.mode == selIdle || t.sel.nb.x == selMaxval {
		return ""
	}

	nb, ne := t.sel.nb, t.sel.ne
	var out []byte

	for y := nb.y; y <= ne.y; y++ {
		line := t.absLine(y)
		if line == nil {
			continue
		}

		x1, x2 := 0, t.cols-1
		if t.sel.typ == SelectionRectangular {
			x1, x2 = nb.x, ne.x
		} else {
			if y == nb.y {
				x1 = nb.x
			}
			if y == ne.y {
				x2 = ne.x
			}
		}
		x2 = clamp(x2, 0, len(line)-1)
		x1 = clamp(x1, 0, len(line)-1)

		// Trim trailing blanks from the row range.
		last := x1 - 1
		for x := x2; x >= x1; x-- {
			c := &line[x]
			if !c.IsWideSpacer() && c.Char != ' ' && c.Char != 0 {
				last = x
				break
			}
		}
		for x := x1; x <= last; x++ {
			c := &line[x]
			if c.IsWideSpacer() {
				continue
			}
			if c.Char == 0 {
				out = append(out, ' ')
			} else {
				out = EncodeRune(out, c.Char)
			}
		}

		if y < ne.y {
			wrapped := t.sel.typ == SelectionRegular &&
				len(line) > 0 && line[len(line)-1].HasFlag(CellFlagWrap)
			if !wrapped {
				out = append(out, '\n')
			}
		}
	}
	return string(out)
}

// visibleToAbsLocked converts visible coordinates (affected by the history
// view offset) into virtual buffer coordinates.
func (t *Terminal) visibleToAbsLocked(col, row int) selPoint {
	col = clamp(col, 0, t.cols-1)
	row = clamp(row, 0, t.rows-1)
	base := t.scrollbackVisibleLen() - t.histOffset
	return selPoint{x: col, y: base + row}
}

// maxAbsY returns the largest valid virtual buffer row.
func (t *Terminal) maxAbsY() int {
	return t.scrollbackVisibleLen() + t.rows - 1
}

// normalizeSelectionLocked orders the endpoints and applies snapping.
func (t *Terminal) normalizeSelectionLocked() {
	s := &t.sel
	ob, oe := s.ob, s.oe

	if s.typ == SelectionRegular && ob.y != oe.y {
		// Text stream: upper-left and lower-right corners.
		if ob.y < oe.y {
			s.nb.x, s.ne.x = ob.x, oe.x
		} else {
			s.nb.x, s.ne.x = oe.x, ob.x
		}
	} else {
		s.nb.x = minInt(ob.x, oe.x)
		s.ne.x = maxInt(ob.x, oe.x)
	}
	s.nb.y = minInt(ob.y, oe.y)
	s.ne.y = maxInt(ob.y, oe.y)

	switch s.snap {
	case SnapWord:
		s.nb = t.snapWordLocked(s.nb, -1)
		s.ne = t.snapWordLocked(s.ne, +1)
	case SnapLine:
		s.nb = t.snapLineLocked(s.nb, -1)
		s.ne = t.snapLineLocked(s.ne, +1)
	}
}

// isWordDelimiter classifies a cell character against the configured
// delimiter set; blanks always delimit.
func (t *Terminal) isWordDelimiter(r rune) bool {
	return r == 0 || r == ' ' || strings.ContainsRune(t.cfg.WordDelimiters, r)
}

// cellAtAbs returns the cell at a virtual buffer position, or nil.
func (t *Terminal) cellAtAbs(p selPoint) *Cell {
	line := t.absLine(p.y)
	if line == nil || p.x < 0 || p.x >= len(line) {
		return nil
	}
	return &line[p.x]
}

// snapWordLocked expands an endpoint in the given direction while the
// delimiter classification of adjacent cells matches the anchor cell, and
// across soft-wrapped line boundaries.
func (t *Terminal) snapWordLocked(p selPoint, direction int) selPoint {
	prev := t.cellAtAbs(p)
	if prev == nil {
		return p
	}
	delim := t.isWordDelimiter(prev.Char)

	for {
		next := selPoint{x: p.x + direction, y: p.y}
		if next.x < 0 || next.x > t.cols-1 {
			// Only cross the line boundary over a soft wrap.
			next.y += direction
			if next.y < 0 || next.y > t.maxAbsY() {
				break
			}
			next.x = (next.x + t.cols) % t.cols
			checkY := p.y
			if direction < 0 {
				checkY = next.y
			}
			line := t.absLine(checkY)
			if line == nil || !line[len(line)-1].HasFlag(CellFlagWrap) {
				break
			}
		}

		c := t.cellAtAbs(next)
		if c == nil {
			break
		}
		if !c.IsWideSpacer() {
			if t.isWordDelimiter(c.Char) != delim {
				break
			}
			if delim && c.Char != prev.Char {
				break
			}
		}

		p = next
		if !c.IsWideSpacer() {
			prev = c
		}
	}
	return p
}

// snapLineLocked forces an endpoint to the line edge and follows soft wraps
// to cover the whole logical line.
func (t *Terminal) snapLineLocked(p selPoint, direction int) selPoint {
	if direction < 0 {
		p.x = 0
		for p.y > 0 {
			above := t.absLine(p.y - 1)
			if above == nil || !above[len(above)-1].HasFlag(CellFlagWrap) {
				break
			}
			p.y--
		}
	} else {
		p.x = t.cols - 1
		for p.y < t.maxAbsY() {
			line := t.absLine(p.y)
			if line == nil || !line[len(line)-1].HasFlag(CellFlagWrap) {
				break
			}
			p.y++
		}
	}
	return p
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
