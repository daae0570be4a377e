package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/process"
	"github.com/killallgit/tadabbur/pkg/protocol"
	"github.com/killallgit/tadabbur/pkg/stream"
	"github.com/killallgit/tadabbur/pkg/tui/chat/status"
)

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.statusBar, cmd = m.statusBar.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case stream.FrameMsg:
		return m.handleFrame(msg.Frame)

	case stream.ClosedMsg:
		m.connClosed = true
		logger.Warn("Connection closed: %v", msg.Err)
		var cmd tea.Cmd
		m.statusBar, cmd = m.statusBar.Update(status.StopStreamingMsg{})
		return m, cmd

	default:
		var cmds []tea.Cmd
		var cmd tea.Cmd

		m.statusBar, cmd = m.statusBar.Update(msg)
		cmds = append(cmds, cmd)

		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)

		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}
}

// handleFrame applies one inbound frame and re-arms the frame reader.
func (m chatModel) handleFrame(f protocol.Frame) (tea.Model, tea.Cmd) {
	res := m.controller.HandleFrame(f)
	cmds := []tea.Cmd{stream.WaitForFrame(m.source)}

	if !res.Recognized {
		return m, tea.Batch(cmds...)
	}

	if res.Notice != "" {
		m.notice = res.Notice
	}
	m.textarea.Placeholder = m.controller.Profile().Placeholder

	var cmd tea.Cmd
	switch {
	case res.Completed:
		m.statusBar, cmd = m.statusBar.Update(status.StopStreamingMsg{})
	case m.controller.Loading():
		m.statusBar, cmd = m.statusBar.Update(status.StatusUpdateMsg{
			Status: m.controller.LoadingText(),
			State:  process.FromKind(res.Kind),
		})
	}
	cmds = append(cmds, cmd)

	if res.Kind == protocol.KindChatHistory {
		m.clampHistoryCursor()
	}

	if res.Kind == protocol.KindSessionInit && m.controller.ServerModel() != "" {
		m.statusBar, _ = m.statusBar.Update(status.SetModelMsg{Model: m.controller.ServerModel()})
	}

	if res.LogChanged || res.Completed {
		m.updateViewportContent()
	}
	return m, tea.Batch(cmds...)
}
