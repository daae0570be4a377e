package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/stream"
)

func (m chatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.source != nil {
		cmds = append(cmds, stream.WaitForFrame(m.source))
	}
	return tea.Batch(cmds...)
}
