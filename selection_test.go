package vterm

import "testing"

func TestSelectionBasic(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("hello world")

	term.StartSelection(0, 0, SnapNone)
	term.ExtendSelection(4, 0, SelectionRegular, true)

	if !term.HasSelection() {
		t.Fatal("expected an active selection")
	}
	if got := term.SelectedText(); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
	if !term.IsSelected(0, 0) || !term.IsSelected(4, 0) {
		t.Error("range endpoints should be selected")
	}
	if term.IsSelected(5, 0) {
		t.Error("cell past the end should not be selected")
	}
}

func TestSelectionClickWithoutDragClears(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("hello")

	term.StartSelection(2, 0, SnapNone)
	term.ExtendSelection(2, 0, SelectionRegular, true)

	if term.HasSelection() {
		t.Error("a bare click should not leave a selection")
	}
}

func TestSelectionWordSnap(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("hello world test")

	term.StartSelection(2, 0, SnapWord)
	term.ExtendSelection(2, 0, SelectionRegular, true)

	if got := term.SelectedText(); got != "hello" {
		t.Errorf("expected word 'hello', got %q", got)
	}

	term.StartSelection(8, 0, SnapWord)
	term.ExtendSelection(8, 0, SelectionRegular, true)
	if got := term.SelectedText(); got != "world" {
		t.Errorf("expected word 'world', got %q", got)
	}
}

func TestSelectionWordSnapDelimiters(t *testing.T) {
	term := New(WithSize(3, 30))
	term.WriteString(`foo(bar,baz)`)

	term.StartSelection(5, 0, SnapWord)
	term.ExtendSelection(5, 0, SelectionRegular, true)
	if got := term.SelectedText(); got != "bar" {
		t.Errorf("expected 'bar' bounded by delimiters, got %q", got)
	}
}

func TestSelectionLineSnap(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("first line\r\nsecond")

	term.StartSelection(4, 0, SnapLine)
	term.ExtendSelection(4, 0, SelectionRegular, true)

	if got := term.SelectedText(); got != "first line" {
		t.Errorf("expected the whole line, got %q", got)
	}
}

func TestSelectionMultiRowRegular(t *testing.T) {
	term := New(WithSize(4, 10))
	term.WriteString("aaaa\r\nbbbb\r\ncccc")

	term.StartSelection(2, 0, SnapNone)
	term.ExtendSelection(1, 2, SelectionRegular, true)

	if got := term.SelectedText(); got != "aa\nbbbb\ncc" {
		t.Errorf("expected stream selection, got %q", got)
	}
	// The stream covers full middle rows even outside the x corners.
	if !term.IsSelected(9, 1) {
		t.Error("middle rows should be fully selected")
	}
}

func TestSelectionBackwardDrag(t *testing.T) {
	term := New(WithSize(4, 10))
	term.WriteString("aaaa\r\nbbbb")

	term.StartSelection(2, 1, SnapNone)
	term.ExtendSelection(1, 0, SelectionRegular, true)

	if got := term.SelectedText(); got != "aaa\nbbb" {
		t.Errorf("backward drag should normalize, got %q", got)
	}
}

func TestSelectionRectangular(t *testing.T) {
	term := New(WithSize(4, 10))
	term.WriteString("abcdef\r\nghijkl\r\nmnopqr")

	term.StartSelection(1, 0, SnapNone)
	term.ExtendSelection(3, 2, SelectionRectangular, true)

	if got := term.SelectedText(); got != "bcd\nhij\nnop" {
		t.Errorf("expected rectangular block, got %q", got)
	}
	if term.IsSelected(0, 1) || term.IsSelected(4, 1) {
		t.Error("cells outside the rectangle must not be selected")
	}
}

func TestSelectionWrappedLineJoins(t *testing.T) {
	term := New(WithSize(3, 5))
	term.WriteString("abcdefgh") // wraps onto the second row

	term.StartSelection(0, 0, SnapNone)
	term.ExtendSelection(2, 1, SelectionRegular, true)

	if got := term.SelectedText(); got != "abcdefgh" {
		t.Errorf("soft wrap should join rows without a newline, got %q", got)
	}
}

func TestSelectionWordSnapAcrossWrap(t *testing.T) {
	term := New(WithSize(3, 5))
	term.WriteString("xx yyzzz") // "yyzzz" starts on row 0 and wraps

	term.StartSelection(4, 0, SnapWord)
	term.ExtendSelection(4, 0, SelectionRegular, true)

	if got := term.SelectedText(); got != "yyzzz" {
		t.Errorf("word snap should follow the wrap, got %q", got)
	}
}

func TestSelectionOverScrollback(t *testing.T) {
	term := New(WithSize(2, 10))
	term.WriteString("old\r\nmid\r\nnew\r\nend")
	// Screen: new, end; scrollback: old, mid.

	term.ScrollHistoryUp(2)
	term.StartSelection(0, 0, SnapNone)
	term.ExtendSelection(2, 1, SelectionRegular, true)

	if got := term.SelectedText(); got != "old\nmid" {
		t.Errorf("selection should read scrollback rows, got %q", got)
	}

	// The selection is anchored to content, not the viewport.
	term.ScrollHistoryDown(2)
	if got := term.SelectedText(); got != "old\nmid" {
		t.Errorf("selection should survive view scrolling, got %q", got)
	}
}

func TestSelectionClear(t *testing.T) {
	term := New(WithSize(3, 20))
	term.WriteString("hello")

	term.StartSelection(0, 0, SnapNone)
	term.ExtendSelection(4, 0, SelectionRegular, true)
	term.ClearSelection()

	if term.HasSelection() {
		t.Error("expected no selection after clear")
	}
	if term.SelectedText() != "" {
		t.Error("expected empty text after clear")
	}
	if term.IsSelected(0, 0) {
		t.Error("expected nothing selected after clear")
	}
}

func TestSelectionNormalizationInvariant(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("0123456789")

	points := []struct{ c1, r1, c2, r2 int }{
		{0, 0, 9, 4}, {9, 4, 0, 0}, {5, 2, 5, 2}, {9, 0, 0, 4},
	}
	for _, p := range points {
		term.StartSelection(p.c1, p.r1, SnapNone)
		term.ExtendSelection(p.c2, p.r2, SelectionRegular, true)
		nb, ne := term.sel.nb, term.sel.ne
		if nb.y > ne.y || (nb.y == ne.y && nb.x > ne.x) {
			t.Errorf("normalization violated for %+v: nb=%+v ne=%+v", p, nb, ne)
		}
	}
}

func TestSelectionTrimsTrailingBlanks(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("ab\r\ncd")

	term.StartSelection(0, 0, SnapNone)
	term.ExtendSelection(9, 1, SelectionRegular, true)

	if got := term.SelectedText(); got != "ab\ncd" {
		t.Errorf("trailing blanks should be trimmed, got %q", got)
	}
}
