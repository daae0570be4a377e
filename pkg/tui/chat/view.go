package chat

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m chatModel) View() string {
	body := m.viewport.View()
	if m.showHistory {
		body = lipgloss.NewStyle().
			Height(m.viewport.Height).
			MaxHeight(m.viewport.Height).
			Render(m.renderHistory())
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		body,
		m.feedbackLine(),
		m.statusBar.View(),
		m.textarea.View(),
	)
}

// feedbackLine shows the most pressing of connection state, errors and
// notices on a single line.
func (m chatModel) feedbackLine() string {
	switch {
	case m.connClosed:
		return m.styles.ErrorMessage.Render("connection closed")
	case m.err != nil:
		return m.styles.ErrorMessage.Render(m.err.Error())
	case m.controller.LastError() != nil:
		return m.styles.ErrorMessage.Render(m.controller.LastError().Error())
	case m.notice != "":
		return m.styles.Notice.Render(m.notice)
	default:
		return m.styles.Help.Render("enter send • alt+enter newline • ctrl+n new chat • ctrl+h history • ctrl+c quit")
	}
}
