package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/controllers"
	"github.com/killallgit/tadabbur/pkg/process"
	"github.com/killallgit/tadabbur/pkg/tui/chat/status"
)

func handleKeyMsg(m chatModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEscape {
		m.numEscPress = 0
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyCtrlH:
		m.toggleHistory()
		return m, nil

	case tea.KeyCtrlN:
		m.resetFeedback()
		if _, err := m.controller.NewChat(); err != nil {
			m.err = err
		}
		m.updateViewportContent()
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.showHistory {
		return handleHistoryKey(m, msg)
	}

	switch msg.Type {
	case tea.KeyEscape:
		m.numEscPress++
		if m.numEscPress == 2 {
			m.textarea.Reset()
			m.resetFeedback()
			m.numEscPress = 0
			m.resizeTextArea()
			return m, nil
		}
	case tea.KeyEnter:
		if msg.Alt {
			// Alt+Enter adds a newline
			break
		}
		if m.textarea.Value() != "" {
			return m.submit()
		}
		return m, nil
	}

	// Let the textarea handle the key
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.resizeTextArea()

	return m, cmd
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	m.resetFeedback()
	action, err := m.controller.HandleInput(m.textarea.Value())
	m.err = err
	if action == controllers.ActionNone {
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Placeholder = m.controller.Profile().Placeholder
	m.resizeTextArea()

	var cmd tea.Cmd
	switch action {
	case controllers.ActionSent:
		if err != nil {
			break
		}
		m.statusBar, cmd = m.statusBar.Update(status.StartStreamingMsg{State: process.StateSending})
	case controllers.ActionModelSelected:
		m.statusBar, _ = m.statusBar.Update(status.SetModelMsg{Model: m.controller.Model()})
	case controllers.ActionShowHistory:
		m.openHistory()
		return m, nil
	case controllers.ActionNewChat, controllers.ActionResumed:
		m.statusBar, _ = m.statusBar.Update(status.StopStreamingMsg{})
	}

	m.updateViewportContent()
	return m, cmd
}

func (m *chatModel) resetFeedback() {
	m.err = nil
	m.notice = ""
	m.controller.ClearError()
}

func (m *chatModel) resizeTextArea() {
	newHeight := m.calculateTextAreaHeight()
	if m.textarea.Height() != newHeight {
		m.textarea.SetHeight(newHeight)
		m.updateViewportHeight()
	}
}
