package stream

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/protocol"
)

// FrameMsg is a Bubble Tea message carrying one inbound frame.
type FrameMsg struct {
	Frame protocol.Frame
}

// ClosedMsg is a Bubble Tea message sent once the frame channel is closed.
type ClosedMsg struct {
	Err error
}

// FrameSource is the read side of a socket connection.
type FrameSource interface {
	Frames() <-chan protocol.Frame
	Err() error
}

// WaitForFrame blocks on the next frame. The caller re-issues the command
// after handling each FrameMsg so frames are applied one at a time on the
// event loop.
func WaitForFrame(src FrameSource) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-src.Frames()
		if !ok {
			return ClosedMsg{Err: src.Err()}
		}
		return FrameMsg{Frame: frame}
	}
}
