package vterm

import "io"

// ResponseProvider receives terminal replies (cursor position reports,
// device attributes) destined for the child process. Typically the PTY
// writer.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell events triggered by BEL (0x07).
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0/1/2) and the xterm
// title stack (CSI 22/23 t).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
	// PushTitle saves the current title to the stack.
	PushTitle()
	// PopTitle restores the title from the stack.
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- Clipboard Provider ---

// ClipboardProvider handles clipboard transfer requested via OSC 52. The
// actual transport (X selections, Wayland, OS pasteboard) lives outside the
// core.
type ClipboardProvider interface {
	// Read returns content from the clipboard ('c') or primary ('p')
	// selection.
	Read(clipboard byte) string
	// Write stores content to the given selection.
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- String sequence providers ---

// DCSProvider handles Device Control String payloads.
type DCSProvider interface {
	Receive(data []byte)
}

// NoopDCS ignores all DCS sequences.
type NoopDCS struct{}

func (NoopDCS) Receive(data []byte) {}

// APCProvider handles Application Program Command payloads.
type APCProvider interface {
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// PMProvider handles Privacy Message payloads.
type PMProvider interface {
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// SOSProvider handles Start of String payloads.
type SOSProvider interface {
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

// Ensure implementations satisfy their interfaces.
var (
	_ ResponseProvider  = NoopResponse{}
	_ BellProvider      = NoopBell{}
	_ TitleProvider     = NoopTitle{}
	_ ClipboardProvider = NoopClipboard{}
	_ DCSProvider       = NoopDCS{}
	_ APCProvider       = NoopAPC{}
	_ PMProvider        = NoopPM{}
	_ SOSProvider       = NoopSOS{}
)
