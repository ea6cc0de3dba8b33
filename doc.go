// Package vterm provides a headless VT100/VT220-compatible terminal
// emulator core: the escape sequence state machine, the screen model with
// scrollback, and a text selection engine.
//
// The package emulates a terminal without any display, making it suitable
// for:
//   - Building terminal emulator frontends (the renderer stays outside)
//   - Testing terminal applications without a GUI
//   - Terminal multiplexers, recorders, and screen scraping
//
// # Quick Start
//
// Create a terminal and write escape sequences to it:
//
//	term := vterm.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: the emulator; owns the screen state and implements the
//     [Handler] operations the decoder dispatches into
//   - [Decoder]: the byte-driven escape sequence state machine
//   - [Buffer]: a grid of cells with dirty rows, tab stops, and scrollback
//   - [Cell]: one character with colors and attribute flags
//   - [Palette]: the 256-color table with OSC 4/104 overrides
//
// Terminal implements [io.Writer], so child process output can be piped in
// directly:
//
//	term := vterm.New(
//	    vterm.WithSize(24, 80),
//	    vterm.WithResponse(ptyWriter), // DA/DSR replies go back here
//	)
//	cmd.Stdout = term
//
// Because the decoder dispatches through the [Handler] interface, a wrapper
// around Terminal can observe or override individual operations before
// forwarding them.
//
// # Dual Buffers and Scrollback
//
// Terminal maintains a primary buffer whose scrolled-off lines feed a
// fixed-capacity history ring, and an alternate buffer (used by full-screen
// programs, switched with modes 47/1047/1049) that never does. The history
// view is scrolled with [Terminal.ScrollHistoryUp]; [Terminal.VisibleLine]
// translates displayed rows to the right source, and the selection engine
// uses the same translation.
//
// # Selection
//
// Pointer-driven selection with word and line snapping operates over the
// virtual buffer of scrollback plus screen:
//
//	term.StartSelection(2, 0, vterm.SnapWord)
//	term.ExtendSelection(2, 0, vterm.SelectionRegular, true)
//	text := term.SelectedText()
//
// # Wide Characters
//
// Double-width characters occupy a leading cell and a spacer cell; every
// grid mutation keeps the pair consistent. The wrap flag on the last cell
// of a row records soft wraps so selections can reassemble logical lines.
package vterm
